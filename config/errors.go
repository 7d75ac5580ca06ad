package config

import "errors"

// Sentinel errors returned by the store, its layers and the flag parser.
// Callers should use [errors.Is] to match against these values.
var (
	// ErrFieldNotFound is returned when a key, or a key referenced from an
	// interpolated string, is absent from the store.
	ErrFieldNotFound = errors.New("field not found")

	// ErrCircularReference is returned when interpolation comes back to a
	// key it is already resolving.
	ErrCircularReference = errors.New("circular reference")

	// ErrBadTemplate is returned for an unbalanced brace or an empty {}
	// in an interpolated string.
	ErrBadTemplate = errors.New("malformed template")

	// ErrNoValue is returned by the typed accessors when the key exists but
	// holds no value.
	ErrNoValue = errors.New("field has no value")

	// ErrInvalidFile is returned when a config file exists but cannot be
	// decoded into an object.
	ErrInvalidFile = errors.New("invalid config file")

	// ErrMissingFlagValue is returned when a list or dict flag is given
	// without any value.
	ErrMissingFlagValue = errors.New("flag needs at least one value")
)
