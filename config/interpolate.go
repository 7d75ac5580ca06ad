package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/kevingerman/pianoman/coerce"
	"github.com/kevingerman/pianoman/models"
)

// Get returns the value stored for key with {name} references resolved.
//
// Strings are rendered once: {name} becomes the string form of Get(name),
// {{ and }} are literal braces, and substituted text is not scanned again.
// Other values are returned as stored.
func (c *Config) Get(key string) (any, error) {
	return c.resolve(key, nil)
}

// GetOr is Get with a fallback for absent keys. Errors from resolving a
// present key are still returned.
func (c *Config) GetOr(key string, fallback any) (any, error) {
	if !c.Has(key) {
		return fallback, nil
	}
	return c.Get(key)
}

// Resolved returns every key with references resolved.
func (c *Config) Resolved() (map[string]any, error) {
	out := make(map[string]any, len(c.values))
	for _, k := range c.Keys() {
		v, err := c.Get(k)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

func (c *Config) resolve(key string, path []string) (any, error) {
	v, ok := c.values[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, key)
	}

	s, ok := v.(string)
	if !ok || !strings.ContainsAny(s, "{}") {
		return v, nil
	}

	for _, seen := range path {
		if seen == key {
			return nil, fmt.Errorf("%w: %s", ErrCircularReference,
				strings.Join(append(path, key), " -> "))
		}
	}

	out, err := c.render(key, s, append(path, key))
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Config) render(key, tmpl string, path []string) (string, error) {
	var b strings.Builder
	b.Grow(len(tmpl))

	for i := 0; i < len(tmpl); {
		switch tmpl[i] {
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				b.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexAny(tmpl[i+1:], "{}")
			if end < 0 || tmpl[i+1+end] != '}' {
				return "", fmt.Errorf("%w in %q: unclosed '{' at %d", ErrBadTemplate, key, i)
			}
			name := tmpl[i+1 : i+1+end]
			if name == "" {
				return "", fmt.Errorf("%w in %q: empty reference at %d", ErrBadTemplate, key, i)
			}

			v, err := c.resolve(name, path)
			if err != nil {
				return "", err
			}
			b.WriteString(models.Stringify(v))
			i += end + 2

		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				b.WriteByte('}')
				i += 2
				continue
			}
			return "", fmt.Errorf("%w in %q: single '}' at %d", ErrBadTemplate, key, i)

		default:
			b.WriteByte(tmpl[i])
			i++
		}
	}

	return b.String(), nil
}

// String returns the resolved value of key in its string form.
func (c *Config) String(key string) (string, error) {
	v, err := c.Get(key)
	if err != nil {
		return "", err
	}
	return models.Stringify(v), nil
}

// Int returns the resolved value of key converted to int.
func (c *Config) Int(key string) (int, error) {
	v, err := c.typed(key, models.TypeInt)
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

// Float returns the resolved value of key converted to float64.
func (c *Config) Float(key string) (float64, error) {
	v, err := c.typed(key, models.TypeFloat)
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}

// Bool returns the resolved value of key converted to bool.
func (c *Config) Bool(key string) (bool, error) {
	v, err := c.typed(key, models.TypeBool)
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// List returns the resolved value of key as a []any. Strings are parsed as
// list literals.
func (c *Config) List(key string) ([]any, error) {
	v, err := c.typed(key, models.TypeList)
	if err != nil {
		return nil, err
	}
	if list, ok := v.([]any); ok {
		return list, nil
	}

	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

// Dict returns the resolved value of key as a map[string]any. Strings are
// parsed as dict literals.
func (c *Config) Dict(key string) (map[string]any, error) {
	v, err := c.typed(key, models.TypeDict)
	if err != nil {
		return nil, err
	}
	if dict, ok := v.(map[string]any); ok {
		return dict, nil
	}

	rv := reflect.ValueOf(v)
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[models.Stringify(iter.Key().Interface())] = iter.Value().Interface()
	}
	return out, nil
}

func (c *Config) typed(key string, t models.FieldType) (any, error) {
	v, err := c.Get(key)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoValue, key)
	}

	out, err := coerce.Convert(t, v)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", key, err)
	}
	return out, nil
}
