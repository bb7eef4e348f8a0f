package errors

import "fmt"

// Serialization error codes (SER100-199)
const (
	// ErrInvalidSerializationTarget indicates an object type was serialized
	// inline instead of being lowered to a definition
	ErrInvalidSerializationTarget ErrorCode = "SER100"
)

// NewInvalidSerializationTarget creates a SER100 error
func NewInvalidSerializationTarget(typeName string) *CompilerError {
	return newError(
		ErrInvalidSerializationTarget,
		"invalid_serialization_target",
		CategorySerialization,
		fmt.Sprintf("Object type %s cannot be serialized inline", quoted(typeName)),
		typeName,
	).WithSuggestion("This is likely a compiler bug - object types must be extracted into definitions first")
}
