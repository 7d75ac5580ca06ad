// Package coerce converts raw configuration values into the types declared
// by schema entries.
//
// Conversion goes through a fixed registry: each models.FieldType tag maps to
// one named converter (ToString, ToInt, ToFloat, ToBool, ToList, ToDict).
// Coerce adds the fallback rules around it: a falsy candidate is replaced by
// the field's default, and a field with no value at all stays nil.
package coerce

import (
	"fmt"

	"github.com/kevingerman/pianoman/models"
)

// Converter turns a truthy raw value into a value of one declared type.
type Converter func(v any) (any, error)

var registry = map[models.FieldType]Converter{
	models.TypeString: ToString,
	models.TypeInt:    ToInt,
	models.TypeFloat:  ToFloat,
	models.TypeBool:   ToBool,
	models.TypeList:   ToList,
	models.TypeDict:   ToDict,
}

// Lookup returns the converter registered for t.
func Lookup(t models.FieldType) (Converter, bool) {
	c, ok := registry[t]
	return c, ok
}

// Convert applies the converter registered for t to v. An empty t returns v
// unchanged.
func Convert(t models.FieldType, v any) (any, error) {
	if t == "" {
		return v, nil
	}
	conv, ok := Lookup(t)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownType, t)
	}
	out, err := conv(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCoercion, err)
	}
	return out, nil
}

// Coerce resolves the value stored for spec given a candidate from some layer.
//
// A falsy candidate (nil, "", 0, false, empty list or dict) counts as "not
// supplied" and is replaced by spec.Default when the spec has one; without a
// default the result is nil, meaning "no value". A falsy default becomes the
// zero value of the declared type.
func Coerce(spec models.FieldSpec, candidate any) (any, error) {
	chosen := candidate
	if !models.Truthy(chosen) {
		if !spec.HasDefault {
			return nil, nil
		}
		chosen = spec.Default
	}

	if chosen == nil {
		return nil, nil
	}
	if !models.Truthy(chosen) {
		return zeroValue(spec.Type, chosen), nil
	}

	out, err := Convert(spec.Type, chosen)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", spec.Name, err)
	}
	return out, nil
}

// Defaults returns Coerce(spec, nil) for every field, keyed by name.
func Defaults(fields []models.FieldSpec) (map[string]any, error) {
	out := make(map[string]any, len(fields))
	for _, spec := range fields {
		v, err := Coerce(spec, nil)
		if err != nil {
			return nil, fmt.Errorf("error coercing default: %w", err)
		}
		out[spec.Name] = v
	}
	return out, nil
}

func zeroValue(t models.FieldType, raw any) any {
	switch t {
	case models.TypeString:
		return ""
	case models.TypeInt:
		return 0
	case models.TypeFloat:
		return 0.0
	case models.TypeBool:
		return false
	case models.TypeList:
		return []any{}
	case models.TypeDict:
		return map[string]any{}
	default:
		return raw
	}
}
