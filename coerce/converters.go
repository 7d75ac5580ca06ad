package coerce

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/kevingerman/pianoman/models"
)

// ToString returns the natural string form of v. It never fails.
func ToString(v any) (any, error) {
	return models.Stringify(v), nil
}

// ToInt parses decimal text or converts another scalar to int. Floats are
// truncated toward zero.
func ToInt(v any) (any, error) {
	if s, ok := v.(string); ok {
		i, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("invalid int literal %q", s)
		}
		return i, nil
	}
	if isContainer(v) {
		return nil, fmt.Errorf("cannot convert %T to int", v)
	}
	return cast.ToIntE(v)
}

// ToFloat parses decimal text or converts another scalar to float64.
func ToFloat(v any) (any, error) {
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float literal %q", s)
		}
		return f, nil
	}
	if isContainer(v) {
		return nil, fmt.Errorf("cannot convert %T to float", v)
	}
	return cast.ToFloat64E(v)
}

// ToBool parses strconv.ParseBool syntax or converts a number (non-zero is
// true).
func ToBool(v any) (any, error) {
	if s, ok := v.(string); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("invalid bool literal %q", s)
		}
		return b, nil
	}
	if isContainer(v) {
		return nil, fmt.Errorf("cannot convert %T to bool", v)
	}
	return cast.ToBoolE(v)
}

// ToList keeps any slice as it is and parses strings as a list literal.
func ToList(v any) (any, error) {
	if kindOf(v) == reflect.Slice || kindOf(v) == reflect.Array {
		return v, nil
	}

	parsed, err := parseLiteral(v)
	if err != nil {
		return nil, err
	}
	list, ok := parsed.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a list", ErrShapeMismatch, v)
	}
	return list, nil
}

// ToDict keeps any map as it is and parses strings as a dict literal.
func ToDict(v any) (any, error) {
	if kindOf(v) == reflect.Map {
		return v, nil
	}

	parsed, err := parseLiteral(v)
	if err != nil {
		return nil, err
	}
	if kindOf(parsed) != reflect.Map {
		return nil, fmt.Errorf("%w: %q is not a dict", ErrShapeMismatch, v)
	}
	return parsed, nil
}

// parseLiteral reads a structured literal. YAML flow syntax accepts JSON as
// well as single-quoted strings and bare words.
func parseLiteral(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%w: cannot parse %T as a literal", ErrShapeMismatch, v)
	}

	var out any
	if err := yaml.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("invalid literal %q: %w", s, err)
	}
	return out, nil
}

func kindOf(v any) reflect.Kind {
	if v == nil {
		return reflect.Invalid
	}
	return reflect.TypeOf(v).Kind()
}

func isContainer(v any) bool {
	switch kindOf(v) {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Struct:
		return true
	default:
		return false
	}
}
