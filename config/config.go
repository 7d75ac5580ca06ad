// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The pianoman Authors

package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kevingerman/pianoman/coerce"
	"github.com/kevingerman/pianoman/models"
	"github.com/kevingerman/pianoman/schema"
)

const (
	// PackageName is the name the default prefix and file name derive from.
	PackageName = "pianoman"

	// DefaultFileName is the config file looked up in the working directory
	// when no path is given.
	DefaultFileName = PackageName + ".config.json"
)

// DefaultPrefix is the environment prefix used unless WithPrefix says
// otherwise.
var DefaultPrefix = PrefixFor(PackageName)

// PrefixFor derives an environment prefix from a package name: upper case,
// underscores dropped, one trailing underscore ("pia_no" becomes "PIANO_").
func PrefixFor(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "_", "")) + "_"
}

// Config is the resolved key/value store.
//
// Keys declared in the schema hold coerced values (or nil for "no value");
// any other key holds whatever was written. Reads go through Get, which
// resolves {name} references. A Config is meant to be built once and then
// read by a single owner; it is not safe for concurrent writes.
type Config struct {
	schema schema.Schema
	values map[string]any
	prefix string
}

// New returns a store for s seeded with the coerced schema defaults.
func New(s schema.Schema) (*Config, error) {
	c := newConfig(s, DefaultPrefix)
	if err := c.seed(); err != nil {
		return nil, err
	}
	return c, nil
}

func newConfig(s schema.Schema, prefix string) *Config {
	return &Config{
		schema: s.Clone(),
		values: make(map[string]any, s.Len()),
		prefix: prefix,
	}
}

func (c *Config) seed() error {
	defaults, err := coerce.Defaults(c.schema.Fields())
	if err != nil {
		return err
	}
	return c.Override(defaults, false)
}

// Set writes a single key. A schema-declared key is coerced to its declared
// type; any other key is stored as given.
func (c *Config) Set(key string, value any) error {
	spec, ok := c.schema.Lookup(key)
	if !ok {
		c.values[key] = value
		return nil
	}

	v, err := coerce.Coerce(spec, value)
	if err != nil {
		return err
	}
	c.values[key] = v
	return nil
}

// Override applies one layer of key/value pairs in sorted key order.
//
// With skipDefaults, a pair whose string form equals the string form of the
// field's coerced default is dropped, so -1 and "-1" both match a default
// of -1. A nil default matches only nil.
//
// The first coercion error stops the call; pairs written before it stay
// written.
func (c *Config) Override(layer map[string]any, skipDefaults bool) error {
	var defaults map[string]any
	if skipDefaults {
		var err error
		defaults, err = coerce.Defaults(c.schema.Fields())
		if err != nil {
			return err
		}
	}

	keys := make([]string, 0, len(layer))
	for k := range layer {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := layer[k]
		if skipDefaults {
			if def, ok := defaults[k]; ok && sameAsDefault(v, def) {
				continue
			}
		}
		if err := c.Set(k, v); err != nil {
			return fmt.Errorf("error overriding %q: %w", k, err)
		}
	}

	return nil
}

func sameAsDefault(v, def any) bool {
	if v == nil || def == nil {
		return v == nil && def == nil
	}
	return models.Stringify(v) == models.Stringify(def)
}

// Has reports whether key is present, with or without a value.
func (c *Config) Has(key string) bool {
	_, ok := c.values[key]
	return ok
}

// Keys returns every stored key, sorted.
func (c *Config) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of stored keys.
func (c *Config) Len() int {
	return len(c.values)
}

// Schema returns a copy of the schema the store coerces against.
func (c *Config) Schema() schema.Schema {
	return c.schema.Clone()
}

// Prefix returns the environment prefix the store was loaded with.
func (c *Config) Prefix() string {
	return c.prefix
}
