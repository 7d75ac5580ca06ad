package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrMissingName      = errors.New("field spec has no name")
	ErrUnknownFieldType = errors.New("unknown field type")
	ErrDuplicateField   = errors.New("duplicate field name")
)
