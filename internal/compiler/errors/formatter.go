package errors

import (
	"fmt"
	"strings"
)

// FormatError returns a human-readable error message for terminal output
func FormatError(e *CompilerError) string {
	var b strings.Builder

	file := e.File
	if file == "" {
		file = "<module>"
	}

	if e.Target != "" {
		file += " for " + e.Target
	}

	fmt.Fprintf(&b, "%s %s in %s [%s]\n", severityIcon(e.Severity), categoryDisplayName(e.Category), file, e.Code)
	fmt.Fprintf(&b, "  %s\n", e.Message)

	if e.Detail != "" {
		b.WriteString("\n")
		for _, line := range strings.Split(strings.TrimRight(e.Detail, "\n"), "\n") {
			fmt.Fprintf(&b, "    %s\n", line)
		}
	}

	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n💡 %s\n", e.Suggestion)
	}

	return b.String()
}

// FormatErrorList returns a formatted string of all errors
func FormatErrorList(errors ErrorList) string {
	if len(errors) == 0 {
		return "no errors"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Compilation failed with %d error(s)\n\n", len(errors))

	for i, err := range errors {
		if i > 0 {
			b.WriteString("\n" + strings.Repeat("-", 80) + "\n\n")
		}
		b.WriteString(err.Format())
	}

	return b.String()
}

// FormatCompact returns a compact one-line error format
func FormatCompact(e *CompilerError) string {
	var prefix string
	if e.File != "" {
		prefix = e.File + ": "
	}
	if e.Target != "" {
		prefix += e.Target + ": "
	}
	return fmt.Sprintf("%s%s: %s [%s]", prefix, e.Severity, e.Message, e.Code)
}

// severityIcon returns the emoji/icon for a severity level
func severityIcon(severity ErrorSeverity) string {
	switch severity {
	case SeverityError:
		return "❌"
	default:
		return "❓"
	}
}

// categoryDisplayName returns a human-readable category name
func categoryDisplayName(category ErrorCategory) string {
	switch category {
	case CategoryMerge:
		return "Merge Conflict"
	case CategorySerialization:
		return "Serialization Error"
	case CategoryLoader:
		return "Module Error"
	case CategoryVersion:
		return "Version Error"
	default:
		return "Compiler Error"
	}
}
