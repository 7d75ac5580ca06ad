package models

// FieldType is the type tag a schema entry declares for its value.
// The empty FieldType means "no coercion": values are stored as given.
type FieldType string

const (
	// TypeString stores the value's string form.
	TypeString FieldType = "string"

	// TypeInt stores a Go int parsed from decimal text or converted from
	// another numeric value.
	TypeInt FieldType = "int"

	// TypeFloat stores a float64.
	TypeFloat FieldType = "float"

	// TypeBool stores a bool.
	TypeBool FieldType = "bool"

	// TypeList stores a slice. Strings are parsed as a structured literal
	// such as `[1,2,3]`.
	TypeList FieldType = "list"

	// TypeDict stores a map. Strings are parsed as a structured literal
	// such as `{"a":1}`.
	TypeDict FieldType = "dict"
)

// FieldTypes lists every known type tag in declaration order.
var FieldTypes = []FieldType{
	TypeString,
	TypeInt,
	TypeFloat,
	TypeBool,
	TypeList,
	TypeDict,
}

// Valid reports whether t is empty or one of the known tags.
func (t FieldType) Valid() bool {
	if t == "" {
		return true
	}
	for _, known := range FieldTypes {
		if t == known {
			return true
		}
	}
	return false
}

// MultiValue reports whether flags for this type capture one or more
// values instead of exactly one.
func (t FieldType) MultiValue() bool {
	return t == TypeList || t == TypeDict
}

func (t FieldType) String() string {
	return string(t)
}
