package workflow

import (
	"encoding/json"
	"fmt"
)

// ConfigKind identifies the variant held by a ConfigValue.
type ConfigKind int

const (
	// KindString is free-form text (URLs, selectors, method names).
	KindString ConfigKind = iota
	// KindBool is an on/off flag.
	KindBool
	// KindStructured is an arbitrary key/value map (header sets, filter rules).
	KindStructured
)

// String returns the lowercase kind name used in catalogs and logs.
func (k ConfigKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindStructured:
		return "structured"
	default:
		return "unknown"
	}
}

// ConfigValue is a tagged union over the three value shapes a component
// configuration entry can take: string, boolean, or structured map.
// The zero value is an empty string value.
//
// Values are immutable from the caller's perspective - mutating the map
// returned by [ConfigValue.Object] does not affect stored configuration,
// since values are cloned on every store write.
type ConfigValue struct {
	kind ConfigKind
	str  string
	flag bool
	obj  map[string]any
}

// StringValue creates a string-kinded configuration value.
func StringValue(s string) ConfigValue { return ConfigValue{kind: KindString, str: s} }

// BoolValue creates a boolean-kinded configuration value.
func BoolValue(b bool) ConfigValue { return ConfigValue{kind: KindBool, flag: b} }

// StructuredValue creates a structured configuration value.
// The map is not copied; use [ConfigValue.Clone] when aliasing matters.
func StructuredValue(m map[string]any) ConfigValue {
	if m == nil {
		m = map[string]any{}
	}
	return ConfigValue{kind: KindStructured, obj: m}
}

// Kind returns the variant tag of the value.
func (v ConfigValue) Kind() ConfigKind { return v.kind }

// Text returns the string content. It is only meaningful for KindString.
func (v ConfigValue) Text() string { return v.str }

// Flag returns the boolean content. It is only meaningful for KindBool.
func (v ConfigValue) Flag() bool { return v.flag }

// Object returns the structured content. It is only meaningful for
// KindStructured. The returned map is the internal one - callers that
// need to mutate it should Clone first.
func (v ConfigValue) Object() map[string]any { return v.obj }

// Clone returns a deep copy of the value. Structured maps are copied one
// level deep, which is sufficient for the flat maps catalogs produce.
func (v ConfigValue) Clone() ConfigValue {
	if v.kind != KindStructured {
		return v
	}
	m := make(map[string]any, len(v.obj))
	for k, val := range v.obj {
		m[k] = val
	}
	return ConfigValue{kind: KindStructured, obj: m}
}

// MarshalJSON encodes the value as its natural JSON shape: a string,
// a boolean, or an object. The kind tag is recoverable from the shape.
func (v ConfigValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindBool:
		return json.Marshal(v.flag)
	case KindStructured:
		if v.obj == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(v.obj)
	default:
		return json.Marshal(v.str)
	}
}

// UnmarshalJSON decodes a string, boolean, or object into the matching
// variant. Any other JSON shape (number, array, null) is rejected.
func (v *ConfigValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch val := raw.(type) {
	case string:
		*v = StringValue(val)
	case bool:
		*v = BoolValue(val)
	case map[string]any:
		*v = StructuredValue(val)
	default:
		return fmt.Errorf("config value must be string, bool, or object, got %T", raw)
	}
	return nil
}

// Config is a component configuration map.
type Config map[string]ConfigValue

// Clone returns a deep copy of the configuration.
// Returns an empty (non-nil) map for a nil receiver.
func (c Config) Clone() Config {
	out := make(Config, len(c))
	for k, v := range c {
		out[k] = v.Clone()
	}
	return out
}

// PortSpec describes a named attachment point on a component.
// DataKind is an informal documentation label ("data", "string", "any");
// it is never checked when connections are formed.
type PortSpec struct {
	Name     string `json:"name" toml:"name"`
	DataKind string `json:"kind" toml:"kind"`
}

// ComponentTemplate is the read-only blueprint a node is instantiated from:
// its type identifier, display name, palette category, ordered port lists,
// and default configuration. Templates are owned by the [Registry] and are
// always cloned by value into nodes, so later catalog changes never affect
// nodes already on the canvas.
type ComponentTemplate struct {
	Type     string
	Name     string
	Category string
	Inputs   []PortSpec
	Outputs  []PortSpec
	Defaults Config
}

// clonePorts copies a port spec list. Port specs are plain values, so a
// slice copy is a full copy.
func clonePorts(ports []PortSpec) []PortSpec {
	if len(ports) == 0 {
		return nil
	}
	out := make([]PortSpec, len(ports))
	copy(out, ports)
	return out
}
