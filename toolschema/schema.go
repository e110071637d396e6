// Package toolschema declares the argument shape of every tool and the response
// shape of every upstream entity.
//
// A Schema is a plain list of Fields. It compiles to a kin-openapi schema that
// doubles as the JSON schema advertised to agents and as the validator. The
// sanitizing step (absent-value stripping and defaults) is a pure transform that
// does not depend on kin-openapi.
package toolschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/contenox/testrail-mcp/apiframework"
	"github.com/getkin/kin-openapi/openapi3"
)

// Type is the primitive type of a field.
type Type string

const (
	String  Type = "string"
	Integer Type = "integer"
	Number  Type = "number"
	Boolean Type = "boolean"
	Array   Type = "array"
	Object  Type = "object"
)

// Field declares one named value of a schema.
type Field struct {
	Name        string
	Type        Type
	Description string
	Required    bool
	Nullable    bool
	Default     any
	Enum        []any
	Minimum     *float64
	Maximum     *float64
	// Items is the element declaration of an Array field.
	Items *Field
	// Fields are the members of an Object field.
	Fields []*Field
}

// Schema is the declared shape of an argument record or an entity.
type Schema struct {
	fields []*Field

	once     sync.Once
	compiled *openapi3.Schema
}

// New declares an object schema made of fields.
func New(fields ...*Field) *Schema {
	return &Schema{fields: fields}
}

// Fields returns the top-level field declarations in declaration order.
func (s *Schema) Fields() []*Field {
	return s.fields
}

// OpenAPI returns the compiled kin-openapi schema.
func (s *Schema) OpenAPI() *openapi3.Schema {
	s.once.Do(func() {
		s.compiled = objectSchema(s.fields)
	})
	return s.compiled
}

// JSONSchema renders the schema as the JSON document advertised to agents.
func (s *Schema) JSONSchema() (json.RawMessage, error) {
	b, err := json.Marshal(s.OpenAPI())
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return b, nil
}

// Sanitize returns a copy of args reduced to the declared fields. Optional
// fields holding nil or "" are treated as absent and dropped; absent optional
// fields with a declared default receive it. Nested objects and object items
// of arrays are sanitized with their own declarations. Array order and key
// names are preserved. args is not modified.
func (s *Schema) Sanitize(args map[string]any) map[string]any {
	return sanitizeObject(s.fields, args)
}

// Validate sanitizes args and checks the result against the schema. The
// returned error is an *apiframework.ValidationError naming the offending field.
func (s *Schema) Validate(args map[string]any) (Args, error) {
	clean := s.Sanitize(args)
	if err := s.check(clean); err != nil {
		return nil, err
	}
	return Args(clean), nil
}

// Check validates value as-is, without sanitizing. Used for response records.
func (s *Schema) Check(value map[string]any) error {
	return s.check(value)
}

func (s *Schema) check(value map[string]any) error {
	err := s.OpenAPI().VisitJSON(value)
	if err == nil {
		return nil
	}
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		return apiframework.InvalidArgument(strings.Join(schemaErr.JSONPointer(), "."), schemaErr.Reason)
	}
	return apiframework.InvalidArgument("", err.Error())
}

func sanitizeObject(fields []*Field, in map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		v, ok := in[f.Name]
		if !ok || isAbsent(v) {
			if f.Required {
				// keep explicit empties of required fields so validation names them
				if ok {
					out[f.Name] = v
				}
				continue
			}
			if f.Default != nil {
				out[f.Name] = f.Default
			}
			continue
		}
		out[f.Name] = f.sanitizeValue(v)
	}
	return out
}

func (f *Field) sanitizeValue(v any) any {
	switch f.Type {
	case Object:
		if m, ok := v.(map[string]any); ok {
			return sanitizeObject(f.Fields, m)
		}
	case Array:
		list, ok := v.([]any)
		if !ok || f.Items == nil || f.Items.Type != Object {
			return v
		}
		out := make([]any, len(list))
		for i, item := range list {
			if m, ok := item.(map[string]any); ok {
				out[i] = sanitizeObject(f.Items.Fields, m)
			} else {
				out[i] = item
			}
		}
		return out
	}
	return v
}

func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

func objectSchema(fields []*Field) *openapi3.Schema {
	s := openapi3.NewObjectSchema()
	var required []string
	for _, f := range fields {
		s.WithProperty(f.Name, f.openAPI())
		if f.Required {
			required = append(required, f.Name)
		}
	}
	if len(required) > 0 {
		s.Required = required
	}
	return s
}

func (f *Field) openAPI() *openapi3.Schema {
	var s *openapi3.Schema
	switch f.Type {
	case String:
		s = openapi3.NewStringSchema()
		if f.Required {
			s.MinLength = 1
		}
	case Integer:
		s = openapi3.NewIntegerSchema()
	case Number:
		s = openapi3.NewFloat64Schema()
	case Boolean:
		s = openapi3.NewBoolSchema()
	case Array:
		s = openapi3.NewArraySchema()
		if f.Items != nil {
			s.Items = openapi3.NewSchemaRef("", f.Items.openAPI())
		}
	case Object:
		s = objectSchema(f.Fields)
	default:
		panic(fmt.Sprintf("toolschema: field %q has unknown type %q", f.Name, f.Type))
	}
	s.Description = f.Description
	s.Nullable = f.Nullable
	s.Default = f.Default
	if len(f.Enum) > 0 {
		s.Enum = f.Enum
	}
	if f.Minimum != nil {
		s.Min = f.Minimum
	}
	if f.Maximum != nil {
		s.Max = f.Maximum
	}
	return s
}
