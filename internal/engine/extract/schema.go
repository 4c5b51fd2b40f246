package extract

import (
	"fmt"
	"log/slog"
	"strings"
)

// FieldType is the declared shape of one extracted field.
type FieldType int

const (
	String      FieldType = iota // "..."
	StringArray                  // ["...", ...]
	ObjectArray                  // [{...}, ...]
	LinkArray                    // [{"title": "...", "url": "..."}, ...]
)

// Field is one named entry of a Schema.
// Items declares the sub-fields of ObjectArray elements; nil means free-form rows.
type Field struct {
	Name     string
	Type     FieldType
	Required bool
	Items    []Field
}

// Schema declares what the provider should extract and how the response is validated.
type Schema struct {
	Fields []Field
}

var linkItems = []Field{
	{Name: "title", Type: String, Required: true},
	{Name: "url", Type: String, Required: true},
}

// JSONSchema renders the schema in the JSON Schema subset the provider understands.
func (s Schema) JSONSchema() map[string]any {
	return objectSchema(s.Fields)
}

func objectSchema(fields []Field) map[string]any {
	props := make(map[string]any, len(fields))
	var required []string
	for _, f := range fields {
		props[f.Name] = f.jsonSchema()
		if f.Required {
			required = append(required, f.Name)
		}
	}
	out := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		out["required"] = required
	}
	return out
}

func (f Field) jsonSchema() map[string]any {
	switch f.Type {
	case StringArray:
		return map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
	case ObjectArray:
		items := map[string]any{"type": "object"}
		if len(f.Items) > 0 {
			items = objectSchema(f.Items)
		}
		return map[string]any{"type": "array", "items": items}
	case LinkArray:
		return map[string]any{"type": "array", "items": objectSchema(linkItems)}
	default:
		return map[string]any{"type": "string"}
	}
}

// Validate checks payload against the schema and returns a copy holding only declared fields.
// Absent, null and blank-string values count as missing. ObjectArray elements that fail their
// item schema are dropped; a wrongly typed field fails the whole payload.
func (s Schema) Validate(payload map[string]any) (map[string]any, error) {
	return validateObject(s.Fields, payload, "")
}

func validateObject(fields []Field, obj map[string]any, path string) (map[string]any, error) {
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		name := joinPath(path, f.Name)
		raw, ok := obj[f.Name]
		if !ok || raw == nil {
			if f.Required {
				return nil, missingField("", name)
			}
			continue
		}
		v, err := f.validate(raw, name)
		if err != nil {
			return nil, err
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			if f.Required {
				return nil, missingField("", name)
			}
			continue
		}
		out[f.Name] = v
	}
	return out, nil
}

func (f Field) validate(raw any, name string) (any, error) {
	switch f.Type {
	case String:
		s, ok := raw.(string)
		if !ok {
			return nil, malformed("", name, fmt.Sprintf("expected string, got %T", raw), nil)
		}
		return s, nil

	case StringArray:
		arr, ok := raw.([]any)
		if !ok {
			return nil, malformed("", name, fmt.Sprintf("expected array, got %T", raw), nil)
		}
		out := make([]any, 0, len(arr))
		for i, el := range arr {
			s, ok := el.(string)
			if !ok {
				return nil, malformed("", fmt.Sprintf("%s[%d]", name, i), fmt.Sprintf("expected string, got %T", el), nil)
			}
			out = append(out, s)
		}
		return out, nil

	case ObjectArray, LinkArray:
		arr, ok := raw.([]any)
		if !ok {
			return nil, malformed("", name, fmt.Sprintf("expected array, got %T", raw), nil)
		}
		items := f.Items
		if f.Type == LinkArray {
			items = linkItems
		}
		out := make([]any, 0, len(arr))
		for i, el := range arr {
			obj, ok := el.(map[string]any)
			if !ok {
				return nil, malformed("", fmt.Sprintf("%s[%d]", name, i), fmt.Sprintf("expected object, got %T", el), nil)
			}
			if len(items) == 0 {
				out = append(out, obj)
				continue
			}
			clean, err := validateObject(items, obj, fmt.Sprintf("%s[%d]", name, i))
			if err != nil {
				slog.Debug("extract: dropping invalid item", slog.String("field", name), slog.Any("error", err))
				continue
			}
			out = append(out, clean)
		}
		return out, nil
	}
	return nil, malformed("", name, "unknown field type", nil)
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
