package workflow

import (
	"errors"
	"testing"
)

func TestDefaultCatalog_Shape(t *testing.T) {
	reg, err := NewRegistry(DefaultCatalog())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if reg.Len() != 6 {
		t.Fatalf("Len = %d, want 6", reg.Len())
	}

	tests := []struct {
		typ     string
		inputs  []string
		outputs []string
	}{
		{"scraper", nil, []string{"data"}},
		{"api_connector", nil, []string{"response"}},
		{"data_processor", []string{"input"}, []string{"output"}},
		{"data_storage", []string{"data"}, nil},
		{"data_filter", []string{"data", "criteria"}, []string{"filtered"}},
		{"email_sender", []string{"to", "subject", "body"}, []string{"sent"}},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			tmpl, err := reg.Get(tt.typ)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got := portNames(tmpl.Inputs); !equalStrings(got, tt.inputs) {
				t.Errorf("inputs = %v, want %v", got, tt.inputs)
			}
			if got := portNames(tmpl.Outputs); !equalStrings(got, tt.outputs) {
				t.Errorf("outputs = %v, want %v", got, tt.outputs)
			}
		})
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	reg := defaultRegistry(t)
	_, err := reg.Get("quantum_entangler")
	if !errors.Is(err, ErrUnknownTemplate) {
		t.Errorf("err = %v, want ErrUnknownTemplate", err)
	}
}

func TestNewRegistry_Validation(t *testing.T) {
	_, err := NewRegistry([]ComponentTemplate{{Type: ""}})
	if !errors.Is(err, ErrInvalidTemplate) {
		t.Errorf("empty type: err = %v, want ErrInvalidTemplate", err)
	}

	_, err = NewRegistry([]ComponentTemplate{{Type: "dup"}, {Type: "dup"}})
	if !errors.Is(err, ErrDuplicateTemplate) {
		t.Errorf("duplicate: err = %v, want ErrDuplicateTemplate", err)
	}
}

func TestRegistry_ListPreservesCatalogOrder(t *testing.T) {
	catalog := DefaultCatalog()
	reg, err := NewRegistry(catalog)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	list := reg.List()
	for i, tmpl := range list {
		if tmpl.Type != catalog[i].Type {
			t.Errorf("List[%d] = %s, want %s", i, tmpl.Type, catalog[i].Type)
		}
	}
}

func portNames(ports []PortSpec) []string {
	if len(ports) == 0 {
		return nil
	}
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.Name
	}
	return names
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
