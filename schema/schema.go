// Package schema loads the declarative description of every configurable
// key: its name, type tag, default and flag metadata.
//
// A schema is a JSON array of field objects:
//
//	[
//	  {"name": "cluster_port", "type": "int", "default": "4040", "help": "port"},
//	  {"name": "hosts", "type": "list", "default": "[\"localhost\"]"}
//	]
//
// Sources produce the raw entries (the embedded default resource, a file, a
// byte slice or Go values); a Loader validates them once, memoizes the result
// and hands out independent copies. Default returns the process-wide schema
// built from the embedded resource.
package schema

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"

	"github.com/kevingerman/pianoman/internal/validators"
	"github.com/kevingerman/pianoman/models"
)

// Schema is an ordered, validated collection of field specs.
// The zero value is an empty schema.
type Schema struct {
	fields []models.FieldSpec
	index  map[string]int
}

// New validates fields and builds a Schema from copies of them.
func New(fields ...models.FieldSpec) (Schema, error) {
	v := validators.NewSchemaValidator()
	if err := v.Validate(context.Background(), fields); err != nil {
		return Schema{}, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}

	s := Schema{
		fields: make([]models.FieldSpec, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		s.fields[i] = f.Clone()
		s.index[f.Name] = i
	}
	return s, nil
}

// MustNew is New for schemas declared in code; it panics on error.
func MustNew(fields ...models.FieldSpec) Schema {
	s, err := New(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Parse decodes a JSON (comments allowed) array of field objects.
func Parse(data []byte) (Schema, error) {
	fields, err := decode(data)
	if err != nil {
		return Schema{}, err
	}
	return New(fields...)
}

func decode(data []byte) ([]models.FieldSpec, error) {
	var fields []models.FieldSpec
	if err := json.Unmarshal(jsonc.ToJSON(data), &fields); err != nil {
		return nil, fmt.Errorf("%w: error decoding schema: %w", ErrInvalidSchema, err)
	}
	return fields, nil
}

// Len returns the number of fields.
func (s Schema) Len() int {
	return len(s.fields)
}

// Fields returns deep copies of the field specs in declaration order.
func (s Schema) Fields() []models.FieldSpec {
	out := make([]models.FieldSpec, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Clone()
	}
	return out
}

// Names returns the field names in declaration order.
func (s Schema) Names() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Name
	}
	return out
}

// Lookup returns a copy of the spec declared for name.
func (s Schema) Lookup(name string) (models.FieldSpec, bool) {
	i, ok := s.index[name]
	if !ok {
		return models.FieldSpec{}, false
	}
	return s.fields[i].Clone(), true
}

// Has reports whether name is declared.
func (s Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Clone returns a Schema sharing nothing with s.
func (s Schema) Clone() Schema {
	out := Schema{
		fields: s.Fields(),
		index:  make(map[string]int, len(s.index)),
	}
	for k, v := range s.index {
		out.index[k] = v
	}
	return out
}

// MarshalJSON encodes the schema back into its resource form.
func (s Schema) MarshalJSON() ([]byte, error) {
	if s.fields == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.fields)
}
