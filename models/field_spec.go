// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The pianoman Authors

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Reserved FieldSpec keys. Every other key of a schema object ends up in
// FieldSpec.Extra.
const (
	keyName    = "name"
	keyType    = "type"
	keyDefault = "default"
)

// Well-known Extra keys read by the flag parser.
const (
	ExtraHelp  = "help"
	ExtraShort = "short"
)

// FieldSpec is a single schema entry describing one configurable key.
//
// The JSON form is a flat object:
//
//	{"name": "cluster_port", "type": "int", "default": "4040", "help": "port"}
//
// name, type and default map onto the struct fields; any other key is kept
// in Extra untouched so that flag generation can use it.
type FieldSpec struct {
	// Name is the key under which the value is stored. Required, unique
	// within a schema.
	Name string `validate:"required"`

	// Type is the declared type tag. Empty means no coercion.
	Type FieldType `validate:"omitempty,oneof=string int float bool list dict"`

	// Default is the raw default value: a string to be coerced, or a JSON
	// literal already decoded into Go values.
	Default any

	// HasDefault distinguishes an explicit `"default": null` (or any other
	// default) from a missing default key.
	HasDefault bool

	// Extra holds opaque metadata for flag generation (help text, short
	// flag, metavar and so on).
	Extra map[string]any
}

// Help returns the "help" extra as a string, or "".
func (f FieldSpec) Help() string {
	s, _ := f.Extra[ExtraHelp].(string)
	return s
}

// Short returns the one-letter shorthand from the "short" extra. A leading
// dash is tolerated. Anything that is not a single letter yields "".
func (f FieldSpec) Short() string {
	s, _ := f.Extra[ExtraShort].(string)
	for len(s) > 0 && s[0] == '-' {
		s = s[1:]
	}
	if len(s) != 1 {
		return ""
	}
	return s
}

// Clone returns a deep copy of f.
func (f FieldSpec) Clone() FieldSpec {
	out := f
	out.Default = DeepCopy(f.Default)
	if f.Extra != nil {
		out.Extra = DeepCopy(f.Extra).(map[string]any)
	}
	return out
}

// UnmarshalJSON decodes a schema object, routing unknown keys into Extra.
func (f *FieldSpec) UnmarshalJSON(data []byte) error {
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("error decoding field spec: %w", err)
	}

	spec := FieldSpec{}
	if v, ok := raw[keyName]; ok {
		if err := json.Unmarshal(v, &spec.Name); err != nil {
			return fmt.Errorf("error decoding field spec name: %w", err)
		}
		delete(raw, keyName)
	}
	if v, ok := raw[keyType]; ok {
		var t string
		if err := json.Unmarshal(v, &t); err != nil {
			return fmt.Errorf("error decoding type of field %q: %w", spec.Name, err)
		}
		spec.Type = FieldType(t)
		delete(raw, keyType)
	}
	if v, ok := raw[keyDefault]; ok {
		def, err := DecodeJSONValue(v)
		if err != nil {
			return fmt.Errorf("error decoding default of field %q: %w", spec.Name, err)
		}
		spec.Default = def
		spec.HasDefault = true
		delete(raw, keyDefault)
	}

	if len(raw) > 0 {
		spec.Extra = make(map[string]any, len(raw))
		for k, v := range raw {
			val, err := DecodeJSONValue(v)
			if err != nil {
				return fmt.Errorf("error decoding %q of field %q: %w", k, spec.Name, err)
			}
			spec.Extra[k] = val
		}
	}

	*f = spec
	return nil
}

// MarshalJSON encodes f back into the flat schema object form.
func (f FieldSpec) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(f.Extra)+3)
	for k, v := range f.Extra {
		out[k] = v
	}
	out[keyName] = f.Name
	if f.Type != "" {
		out[keyType] = f.Type
	}
	if f.HasDefault {
		out[keyDefault] = f.Default
	}
	return json.Marshal(out)
}

// DecodeJSONValue decodes a single JSON value into plain Go values. Integral
// numbers become int, other numbers float64.
func DecodeJSONValue(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return NormalizeNumbers(v), nil
}

// NormalizeNumbers replaces every json.Number inside v with an int, or a
// float64 when the number is not integral.
func NormalizeNumbers(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return int(i)
		}
		if fl, err := val.Float64(); err == nil {
			return fl
		}
		return val.String()
	case []any:
		for i := range val {
			val[i] = NormalizeNumbers(val[i])
		}
		return val
	case map[string]any:
		for k := range val {
			val[k] = NormalizeNumbers(val[k])
		}
		return val
	default:
		return v
	}
}
