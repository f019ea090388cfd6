package workflow

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// catalogFile is the TOML representation of a component catalog.
//
// Example:
//
//	[[component]]
//	type = "scraper"
//	name = "Web Scraper"
//	category = "input"
//
//	[[component.output]]
//	name = "data"
//	kind = "data"
//
//	[component.defaults]
//	url = ""
//	method = "auto"
type catalogFile struct {
	Components []catalogComponent `toml:"component"`
}

type catalogComponent struct {
	Type     string         `toml:"type"`
	Name     string         `toml:"name"`
	Category string         `toml:"category"`
	Inputs   []PortSpec     `toml:"input"`
	Outputs  []PortSpec     `toml:"output"`
	Defaults map[string]any `toml:"defaults"`
}

// LoadCatalog reads a TOML catalog file and returns a registry built from it.
// Default values map onto the ConfigValue variants by their TOML type:
// strings become string values, booleans become flags, and tables become
// structured values. Any other type is rejected.
func LoadCatalog(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return ParseCatalog(data)
}

// ParseCatalog builds a registry from TOML catalog bytes.
// See [LoadCatalog] for the file format.
func ParseCatalog(data []byte) (*Registry, error) {
	var file catalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	templates := make([]ComponentTemplate, 0, len(file.Components))
	for _, c := range file.Components {
		defaults, err := configFromTOML(c.Defaults)
		if err != nil {
			return nil, fmt.Errorf("component %s: %w", c.Type, err)
		}
		templates = append(templates, ComponentTemplate{
			Type:     c.Type,
			Name:     c.Name,
			Category: c.Category,
			Inputs:   c.Inputs,
			Outputs:  c.Outputs,
			Defaults: defaults,
		})
	}

	return NewRegistry(templates)
}

func configFromTOML(raw map[string]any) (Config, error) {
	cfg := make(Config, len(raw))
	for key, val := range raw {
		switch v := val.(type) {
		case string:
			cfg[key] = StringValue(v)
		case bool:
			cfg[key] = BoolValue(v)
		case map[string]any:
			cfg[key] = StructuredValue(v)
		default:
			return nil, fmt.Errorf("default %q: unsupported type %T", key, val)
		}
	}
	return cfg, nil
}
