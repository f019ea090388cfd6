package workflow

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTemplate is returned by [Registry.Get] when no template with
	// the requested type exists in the catalog.
	ErrUnknownTemplate = errors.New("unknown component template")

	// ErrDuplicateTemplate is returned by [NewRegistry] when two catalog
	// entries share a type identifier. Template types must be unique.
	ErrDuplicateTemplate = errors.New("duplicate template type")

	// ErrInvalidTemplate is returned by [NewRegistry] for entries with an
	// empty type identifier.
	ErrInvalidTemplate = errors.New("template type must not be empty")
)

// Registry is a read-only catalog of component templates. It is built once
// and never mutated afterwards, so it is safe for concurrent reads.
//
// The host application decides the catalog contents: [DefaultCatalog]
// provides the standard palette, and catalogs can be loaded from TOML files
// with [LoadCatalog].
type Registry struct {
	templates []ComponentTemplate
	byType    map[string]ComponentTemplate
}

// NewRegistry builds a registry from a catalog slice. Catalog order is
// preserved by [Registry.List]. Returns ErrInvalidTemplate or
// ErrDuplicateTemplate for malformed catalogs.
func NewRegistry(templates []ComponentTemplate) (*Registry, error) {
	r := &Registry{
		templates: make([]ComponentTemplate, len(templates)),
		byType:    make(map[string]ComponentTemplate, len(templates)),
	}
	copy(r.templates, templates)
	for _, t := range r.templates {
		if t.Type == "" {
			return nil, ErrInvalidTemplate
		}
		if _, exists := r.byType[t.Type]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTemplate, t.Type)
		}
		r.byType[t.Type] = t
	}
	return r, nil
}

// List returns all templates in catalog order.
// The returned slice is a copy; the templates themselves are shared values
// and must be treated as read-only.
func (r *Registry) List() []ComponentTemplate {
	out := make([]ComponentTemplate, len(r.templates))
	copy(out, r.templates)
	return out
}

// Get returns the template with the given type identifier.
// Returns ErrUnknownTemplate if no such template exists.
func (r *Registry) Get(templateType string) (ComponentTemplate, error) {
	t, ok := r.byType[templateType]
	if !ok {
		return ComponentTemplate{}, fmt.Errorf("%w: %s", ErrUnknownTemplate, templateType)
	}
	return t, nil
}

// Len returns the number of templates in the catalog.
func (r *Registry) Len() int { return len(r.templates) }

// DefaultCatalog returns the standard component palette: six templates
// covering data acquisition, transformation, storage, and delivery.
func DefaultCatalog() []ComponentTemplate {
	return []ComponentTemplate{
		{
			Type:     "scraper",
			Name:     "Web Scraper",
			Category: "input",
			Outputs:  []PortSpec{{Name: "data", DataKind: "data"}},
			Defaults: Config{
				"url":       StringValue(""),
				"method":    StringValue("auto"),
				"selectors": StructuredValue(map[string]any{}),
			},
		},
		{
			Type:     "api_connector",
			Name:     "API Connector",
			Category: "input",
			Outputs:  []PortSpec{{Name: "response", DataKind: "response"}},
			Defaults: Config{
				"endpoint": StringValue(""),
				"method":   StringValue("GET"),
				"headers":  StructuredValue(map[string]any{}),
			},
		},
		{
			Type:     "data_processor",
			Name:     "Data Processor",
			Category: "transform",
			Inputs:   []PortSpec{{Name: "input", DataKind: "any"}},
			Outputs:  []PortSpec{{Name: "output", DataKind: "any"}},
			Defaults: Config{
				"operation": StringValue("transform"),
				"strict":    BoolValue(false),
			},
		},
		{
			Type:     "data_storage",
			Name:     "Data Storage",
			Category: "output",
			Inputs:   []PortSpec{{Name: "data", DataKind: "data"}},
			Defaults: Config{
				"list_name": StringValue(""),
				"append":    BoolValue(true),
			},
		},
		{
			Type:     "data_filter",
			Name:     "Data Filter",
			Category: "transform",
			Inputs: []PortSpec{
				{Name: "data", DataKind: "data"},
				{Name: "criteria", DataKind: "object"},
			},
			Outputs: []PortSpec{{Name: "filtered", DataKind: "filtered"}},
			Defaults: Config{
				"mode":           StringValue("include"),
				"case_sensitive": BoolValue(false),
				"rules":          StructuredValue(map[string]any{}),
			},
		},
		{
			Type:     "email_sender",
			Name:     "Email Sender",
			Category: "output",
			Inputs: []PortSpec{
				{Name: "to", DataKind: "string"},
				{Name: "subject", DataKind: "string"},
				{Name: "body", DataKind: "string"},
			},
			Outputs: []PortSpec{{Name: "sent", DataKind: "status"}},
			Defaults: Config{
				"provider": StringValue("gmail"),
				"dry_run":  BoolValue(true),
			},
		},
	}
}
