// Package errors provides structured errors for the armgen compiler.
// It defines error codes and categories, and formats them both for terminal
// output and as JSON for machine consumption.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a unique error code in the armgen compiler
type ErrorCode string

// ErrorCategory represents the category of compiler error
type ErrorCategory string

const (
	// CategoryMerge represents fragment merge conflicts (MRG001-099)
	CategoryMerge ErrorCategory = "merge"
	// CategorySerialization represents schema serialization errors (SER100-199)
	CategorySerialization ErrorCategory = "serialization"
	// CategoryLoader represents module definition errors (LOD200-299)
	CategoryLoader ErrorCategory = "loader"
	// CategoryVersion represents API version errors (VER300-399)
	CategoryVersion ErrorCategory = "version"
)

// ErrorSeverity indicates the severity level of an error
type ErrorSeverity string

// SeverityError indicates an error that prevents compilation
const SeverityError ErrorSeverity = "error"

// CompilerError is a structured compiler error. Every failure of the compiler
// core is fatal to the compilation in progress.
type CompilerError struct {
	// Code is the unique error code (e.g., "MRG001")
	Code ErrorCode `json:"code"`
	// Type is a machine-readable error type identifier
	Type string `json:"type"`
	// Category is the error category
	Category ErrorCategory `json:"category"`
	// Severity is the error severity level
	Severity ErrorSeverity `json:"severity"`
	// Message is the primary error message
	Message string `json:"message"`
	// Key is the offending dictionary key, type or field
	Key string `json:"key,omitempty"`
	// File is the source file name (optional)
	File string `json:"file,omitempty"`
	// Target is the API version being compiled (optional)
	Target string `json:"target,omitempty"`
	// Detail carries supporting output such as a value diff (optional)
	Detail string `json:"detail,omitempty"`
	// Suggestion provides a hint for fixing the error (optional)
	Suggestion string `json:"suggestion,omitempty"`
}

// Error implements the error interface
func (e *CompilerError) Error() string {
	return FormatCompact(e)
}

// Format returns a human-readable error message for terminal output
func (e *CompilerError) Format() string {
	return FormatError(e)
}

// ToJSON returns the error as a JSON string
func (e *CompilerError) ToJSON() (string, error) {
	bytes, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// WithFile sets the source file name for the error
func (e *CompilerError) WithFile(file string) *CompilerError {
	e.File = file
	return e
}

// WithTarget sets the API version the error was raised for
func (e *CompilerError) WithTarget(target string) *CompilerError {
	e.Target = target
	return e
}

// WithDetail attaches supporting output to the error
func (e *CompilerError) WithDetail(detail string) *CompilerError {
	e.Detail = detail
	return e
}

// WithSuggestion sets a suggestion for fixing the error
func (e *CompilerError) WithSuggestion(suggestion string) *CompilerError {
	e.Suggestion = suggestion
	return e
}

// ErrorList is a collection of compiler errors
type ErrorList []*CompilerError

// Error implements the error interface
func (el ErrorList) Error() string {
	if len(el) == 0 {
		return "no errors"
	}
	return FormatErrorList(el)
}

// Unwrap exposes the entries to errors.Is and errors.As
func (el ErrorList) Unwrap() []error {
	errs := make([]error, len(el))
	for i, e := range el {
		errs[i] = e
	}
	return errs
}

// ToJSON returns all errors as a JSON array
func (el ErrorList) ToJSON() (string, error) {
	bytes, err := json.MarshalIndent(el, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// As returns the first *CompilerError in err's chain.
func As(err error) (*CompilerError, bool) {
	var ce *CompilerError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// List returns every CompilerError carried by err: the entries of an
// ErrorList in its chain, otherwise the first CompilerError. It is empty for
// uncoded errors.
func List(err error) ErrorList {
	var el ErrorList
	if stderrors.As(err, &el) {
		return el
	}
	if ce, ok := As(err); ok {
		return ErrorList{ce}
	}
	return nil
}

// HasCode reports whether err's chain contains a CompilerError with code.
func HasCode(err error, code ErrorCode) bool {
	ce, ok := As(err)
	return ok && ce.Code == code
}

// newError creates a new CompilerError with the given parameters
func newError(
	code ErrorCode,
	typ string,
	category ErrorCategory,
	message string,
	key string,
) *CompilerError {
	return &CompilerError{
		Code:     code,
		Type:     typ,
		Category: category,
		Severity: SeverityError,
		Message:  message,
		Key:      key,
	}
}

func quoted(s string) string {
	return fmt.Sprintf("'%s'", s)
}
