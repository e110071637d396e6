package toolschema

// MaxInteger bounds every integer field. Larger JSON numbers lose precision
// before they reach a handler.
const MaxInteger = 1<<53 - 1

// Str declares a string field.
func Str(name, description string) *Field {
	return &Field{Name: name, Type: String, Description: description}
}

// Int declares an integer field within ±MaxInteger.
func Int(name, description string) *Field {
	return (&Field{Name: name, Type: Integer, Description: description}).Min(-MaxInteger).Max(MaxInteger)
}

// ID declares a server-assigned identifier: an integer of at least 1.
func ID(name, description string) *Field {
	return Int(name, description).Min(1)
}

// Num declares a floating point field.
func Num(name, description string) *Field {
	return &Field{Name: name, Type: Number, Description: description}
}

// Bool declares a boolean field.
func Bool(name, description string) *Field {
	return &Field{Name: name, Type: Boolean, Description: description}
}

// List declares an array field whose elements follow items.
func List(name, description string, items *Field) *Field {
	return &Field{Name: name, Type: Array, Description: description, Items: items}
}

// IDList declares an array of identifiers.
func IDList(name, description string) *Field {
	return List(name, description, &Field{Type: Integer, Minimum: floatPtr(1), Maximum: floatPtr(MaxInteger)})
}

// Obj declares a nested object field.
func Obj(name, description string, fields ...*Field) *Field {
	return &Field{Name: name, Type: Object, Description: description, Fields: fields}
}

// Item declares the object element of an array field.
func Item(fields ...*Field) *Field {
	return &Field{Type: Object, Fields: fields}
}

// Require marks the field as required.
func (f *Field) Require() *Field {
	f.Required = true
	return f
}

// AllowNull marks the field as nullable.
func (f *Field) AllowNull() *Field {
	f.Nullable = true
	return f
}

// WithDefault sets the value applied when the field is omitted.
func (f *Field) WithDefault(v any) *Field {
	f.Default = normalizeNumber(v)
	return f
}

// OneOf restricts the field to the given values.
func (f *Field) OneOf(values ...any) *Field {
	for _, v := range values {
		f.Enum = append(f.Enum, normalizeNumber(v))
	}
	return f
}

// Min sets the minimum of a numeric field.
func (f *Field) Min(n float64) *Field {
	f.Minimum = floatPtr(n)
	return f
}

// Max sets the maximum of a numeric field.
func (f *Field) Max(n float64) *Field {
	f.Maximum = floatPtr(n)
	return f
}

// Clone returns a deep copy so shared field sets can be re-used with
// different requiredness.
func (f *Field) Clone() *Field {
	c := *f
	if f.Items != nil {
		c.Items = f.Items.Clone()
	}
	if f.Fields != nil {
		c.Fields = cloneFields(f.Fields)
	}
	if f.Enum != nil {
		c.Enum = append([]any(nil), f.Enum...)
	}
	return &c
}

func cloneFields(fields []*Field) []*Field {
	out := make([]*Field, len(fields))
	for i, f := range fields {
		out[i] = f.Clone()
	}
	return out
}

// join concatenates field sets, cloning each field so declarations never alias.
func join(sets ...[]*Field) []*Field {
	var out []*Field
	for _, set := range sets {
		out = append(out, cloneFields(set)...)
	}
	return out
}

// Values arrive as JSON numbers (float64); defaults and enums follow suit so
// validation and comparison see one representation.
func normalizeNumber(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	}
	return v
}

func floatPtr(f float64) *float64 {
	return &f
}
