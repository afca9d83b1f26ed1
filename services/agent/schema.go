// File: services/agent/schema.go
package agent

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Property types, mirroring JSON Schema.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
)

// Property describes one accepted argument field.
type Property struct {
	Type        string
	Description string
	Enum        []string
	Items       *Property           // element schema when Type is array
	Properties  map[string]Property // nested fields when Type is object
	Required    []string            // required nested fields
}

// ParameterSchema is the typed argument contract of one tool. It renders to
// the JSON Schema shown to the reasoning component and validates inbound
// argument objects against the same definition, so the two can never drift.
type ParameterSchema struct {
	Properties map[string]Property
	Required   []string
}

// Validate checks args against the schema: required fields present, no
// unexpected fields, types and enums respected. All problems are reported at
// once so the model can fix them in a single retry.
func (s ParameterSchema) Validate(args map[string]interface{}) error {
	var problems []string

	for _, name := range s.Required {
		if _, ok := args[name]; !ok {
			problems = append(problems, fmt.Sprintf("missing required field %q", name))
		}
	}

	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		prop, ok := s.Properties[name]
		if !ok {
			problems = append(problems, fmt.Sprintf("unexpected field %q", name))
			continue
		}
		if msg := checkValue(name, prop, args[name]); msg != "" {
			problems = append(problems, msg)
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, "; "))
	}
	return nil
}

func checkValue(name string, prop Property, v interface{}) string {
	if v == nil {
		return fmt.Sprintf("field %q must not be null", name)
	}
	switch prop.Type {
	case TypeString:
		sv, ok := v.(string)
		if !ok {
			return fmt.Sprintf("field %q must be a string", name)
		}
		if len(prop.Enum) > 0 && !containsString(prop.Enum, sv) {
			return fmt.Sprintf("field %q must be one of: %s", name, strings.Join(prop.Enum, ", "))
		}
	case TypeNumber:
		if _, ok := asFloat(v); !ok {
			return fmt.Sprintf("field %q must be a number", name)
		}
	case TypeInteger:
		f, ok := asFloat(v)
		if !ok || math.Trunc(f) != f {
			return fmt.Sprintf("field %q must be an integer", name)
		}
	case TypeBoolean:
		if _, ok := v.(bool); !ok {
			return fmt.Sprintf("field %q must be a boolean", name)
		}
	case TypeArray:
		items, ok := v.([]interface{})
		if !ok {
			return fmt.Sprintf("field %q must be an array", name)
		}
		if prop.Items != nil {
			for i, item := range items {
				if msg := checkValue(fmt.Sprintf("%s[%d]", name, i), *prop.Items, item); msg != "" {
					return msg
				}
			}
		}
	case TypeObject:
		obj, ok := v.(map[string]interface{})
		if !ok {
			return fmt.Sprintf("field %q must be an object", name)
		}
		nested := ParameterSchema{Properties: prop.Properties, Required: prop.Required}
		if err := nested.Validate(obj); err != nil {
			return fmt.Sprintf("in %q: %s", name, err.Error())
		}
	}
	return ""
}

// asFloat accepts the numeric shapes JSON decoding and the reasoning SDK
// produce.
func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func containsString(set []string, s string) bool {
	for _, item := range set {
		if item == s {
			return true
		}
	}
	return false
}

// JSONSchema renders the schema as the JSON Schema object advertised to the
// reasoning component. Unknown fields are rejected by contract.
func (s ParameterSchema) JSONSchema() map[string]interface{} {
	props := make(map[string]interface{}, len(s.Properties))
	for name, p := range s.Properties {
		props[name] = p.jsonSchema()
	}
	out := map[string]interface{}{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
	if len(s.Required) > 0 {
		out["required"] = s.Required
	}
	return out
}

func (p Property) jsonSchema() map[string]interface{} {
	out := map[string]interface{}{"type": p.Type}
	if p.Description != "" {
		out["description"] = p.Description
	}
	if len(p.Enum) > 0 {
		out["enum"] = p.Enum
	}
	if p.Items != nil {
		out["items"] = p.Items.jsonSchema()
	}
	if len(p.Properties) > 0 {
		props := make(map[string]interface{}, len(p.Properties))
		for name, nested := range p.Properties {
			props[name] = nested.jsonSchema()
		}
		out["properties"] = props
		out["additionalProperties"] = false
		if len(p.Required) > 0 {
			out["required"] = p.Required
		}
	}
	return out
}
