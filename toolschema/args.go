package toolschema

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/mitchellh/mapstructure"
)

// Args is a validated, sanitized argument record keyed by camelCase names.
type Args map[string]any

// Int returns the integer value of name, or 0 when absent.
func (a Args) Int(name string) int {
	n, _ := toInt(a[name])
	return n
}

// OptionalInt returns nil when name is absent.
func (a Args) OptionalInt(name string) *int {
	n, ok := toInt(a[name])
	if !ok {
		return nil
	}
	return &n
}

// String returns the string value of name, or "".
func (a Args) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Bool returns the boolean value of name, or false.
func (a Args) Bool(name string) bool {
	b, _ := a[name].(bool)
	return b
}

// IntSlice returns the integer elements of the array name, in order.
func (a Args) IntSlice(name string) []int {
	list, ok := a[name].([]any)
	if !ok {
		return nil
	}
	out := make([]int, 0, len(list))
	for _, v := range list {
		if n, ok := toInt(v); ok {
			out = append(out, n)
		}
	}
	return out
}

// Object returns the nested record name, or nil.
func (a Args) Object(name string) Args {
	m, ok := a[name].(map[string]any)
	if !ok {
		return nil
	}
	return Args(m)
}

// Decode copies the present fields into target, a pointer to a struct whose
// fields carry mapstructure tags in the tool vocabulary. Embedded structs are
// squashed.
func (a Args) Decode(target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "mapstructure",
		Squash:  true,
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}
	if err := dec.Decode(map[string]any(a)); err != nil {
		return fmt.Errorf("decode arguments: %w", err)
	}
	return nil
}

// toInt accepts whole numbers within ±MaxInteger only.
func toInt(v any) (int, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		f = float64(i)
	default:
		return 0, false
	}
	if f != math.Trunc(f) || math.Abs(f) > MaxInteger {
		return 0, false
	}
	return int(f), true
}
