package schema

import "errors"

var (
	// ErrInvalidSchema is returned when a schema resource cannot be decoded
	// or fails structural validation. The validation problems are joined
	// into the returned error.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrNoSource is returned by a Loader built without a Source.
	ErrNoSource = errors.New("schema loader has no source")
)
