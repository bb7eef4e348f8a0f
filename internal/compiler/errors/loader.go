package errors

import "fmt"

// Loader and version error codes
const (
	// ErrInvalidModule indicates a malformed module definition
	ErrInvalidModule ErrorCode = "LOD200"
	// ErrUnknownFieldType indicates a property type that is not recognized
	ErrUnknownFieldType ErrorCode = "LOD201"
	// ErrInvalidDate indicates a lifetime date that cannot be parsed
	ErrInvalidDate ErrorCode = "LOD202"
	// ErrInvalidVersion indicates a target API version that cannot be parsed
	ErrInvalidVersion ErrorCode = "VER300"
)

// NewInvalidModule creates a LOD200 error
func NewInvalidModule(field, reason string) *CompilerError {
	return newError(
		ErrInvalidModule,
		"invalid_module",
		CategoryLoader,
		fmt.Sprintf("Invalid module definition at %s: %s", quoted(field), reason),
		field,
	)
}

// NewUnknownFieldType creates a LOD201 error
func NewUnknownFieldType(field, typeName string) *CompilerError {
	return newError(
		ErrUnknownFieldType,
		"unknown_field_type",
		CategoryLoader,
		fmt.Sprintf("Unknown type %s at %s", quoted(typeName), quoted(field)),
		field,
	).WithSuggestion("Use one of: bool, string, int32, int64, float, array, enum, object, ref")
}

// NewInvalidDate creates a LOD202 error
func NewInvalidDate(field, value string) *CompilerError {
	return newError(
		ErrInvalidDate,
		"invalid_date",
		CategoryLoader,
		fmt.Sprintf("Invalid date %s at %s", quoted(value), quoted(field)),
		field,
	).WithSuggestion("Dates are written as YYYY-MM-DD")
}

// NewInvalidVersion creates a VER300 error
func NewInvalidVersion(value string) *CompilerError {
	return newError(
		ErrInvalidVersion,
		"invalid_version",
		CategoryVersion,
		fmt.Sprintf("Invalid API version %s", quoted(value)),
		value,
	).WithSuggestion("API versions are written as YYYY-MM-DD or YYYY-MM-DD-preview")
}
