package apierr

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// Shape names how the server expressed validation details.
type Shape string

const (
	ShapeFields Shape = "fields"
	ShapeList   Shape = "list"
	ShapeRaw    Shape = "raw"
)

// ValidationErrors keeps validation details in the shape they arrived in.
// Exactly one of Fields or Messages is set unless the payload fit neither,
// in which case only Raw is populated.
type ValidationErrors struct {
	Fields   map[string][]string
	Messages []string
	Raw      json.RawMessage
}

// Shape reports which representation is populated.
func (v *ValidationErrors) Shape() Shape {
	switch {
	case v == nil:
		return ""
	case v.Fields != nil:
		return ShapeFields
	case v.Messages != nil:
		return ShapeList
	default:
		return ShapeRaw
	}
}

// Field returns the messages recorded for one field.
func (v *ValidationErrors) Field(name string) []string {
	if v == nil {
		return nil
	}
	return v.Fields[name]
}

func (v *ValidationErrors) String() string {
	if v == nil {
		return ""
	}
	switch v.Shape() {
	case ShapeFields:
		keys := make([]string, 0, len(v.Fields))
		for k := range v.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+strings.Join(v.Fields[k], ", "))
		}
		return strings.Join(parts, "; ")
	case ShapeList:
		return strings.Join(v.Messages, "; ")
	default:
		return string(v.Raw)
	}
}

// ParseValidationErrors interprets a server validation payload. It returns
// nil for absent, null or empty payloads.
func ParseValidationErrors(raw json.RawMessage) *ValidationErrors {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	ve := &ValidationErrors{Raw: append(json.RawMessage(nil), trimmed...)}

	switch trimmed[0] {
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return ve
		}
		if len(obj) == 0 {
			return nil
		}
		fields := make(map[string][]string, len(obj))
		for key, val := range obj {
			msgs, ok := stringOrStrings(val)
			if !ok {
				return ve
			}
			fields[key] = msgs
		}
		ve.Fields = fields
	case '[':
		var list []string
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return ve
		}
		if len(list) == 0 {
			return nil
		}
		ve.Messages = list
	case '"':
		var msg string
		if err := json.Unmarshal(trimmed, &msg); err == nil && msg != "" {
			ve.Messages = []string{msg}
		}
	}
	return ve
}

func stringOrStrings(raw json.RawMessage) ([]string, bool) {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, true
	}
	var one string
	if err := json.Unmarshal(raw, &one); err == nil {
		return []string{one}, true
	}
	return nil, false
}
