package errors

import "fmt"

// Merge error codes (MRG001-099)
const (
	// ErrDuplicateKey indicates the same key was produced by two fragments
	// that must be disjoint
	ErrDuplicateKey ErrorCode = "MRG001"
	// ErrInconsistentDuplicate indicates the same key was produced by two
	// fragments with different content
	ErrInconsistentDuplicate ErrorCode = "MRG002"
)

// NewDuplicateKey creates a MRG001 error
func NewDuplicateKey(key string) *CompilerError {
	return newError(
		ErrDuplicateKey,
		"duplicate_key_conflict",
		CategoryMerge,
		fmt.Sprintf("Key %s is defined by more than one fragment", quoted(key)),
		key,
	).WithSuggestion("Two resources declare the same path, or two properties collide in a flattened object")
}

// NewInconsistentDuplicate creates a MRG002 error; diff describes how the two
// definitions differ
func NewInconsistentDuplicate(key, diff string) *CompilerError {
	return newError(
		ErrInconsistentDuplicate,
		"inconsistent_duplicate_definition",
		CategoryMerge,
		fmt.Sprintf("Key %s is defined twice with different content", quoted(key)),
		key,
	).WithDetail(diff).
		WithSuggestion("Give the conflicting object types distinct names or make their shapes identical")
}
