package coerce

import "errors"

// Sentinel errors returned by Coerce and Convert. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrCoercion is returned when a value cannot be converted to the type
	// its field declares (bad literal syntax, wrong structured shape).
	ErrCoercion = errors.New("coercion failed")

	// ErrUnknownType is returned when a type tag has no registered
	// converter. Schemas reject such tags when they are loaded.
	ErrUnknownType = errors.New("unknown field type")

	// ErrShapeMismatch is wrapped into ErrCoercion when a structured literal
	// parses to the wrong shape (a dict for a list field, for instance).
	ErrShapeMismatch = errors.New("value has the wrong shape")
)
