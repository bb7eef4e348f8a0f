// Package docs compiles a module into one document per target API version
// and writes the results.
//
// Compilation is pure and happens for every target before anything is
// written, so a malformed module never leaves a partial set of documents
// behind. Writing goes through the DocumentWriter interface; FileWriter is the
// filesystem implementation.
package docs

import (
	"github.com/go-openapi/spec"

	"github.com/conduit-lang/armgen/internal/apiversion"
	"github.com/conduit-lang/armgen/internal/arm"
)

// Format represents a documentation output format
type Format string

const (
	// FormatJSON writes the Swagger document as indented JSON
	FormatJSON Format = "json"

	// FormatYAML writes the Swagger document as YAML
	FormatYAML Format = "yaml"

	// FormatMarkdown writes a Markdown summary of the document
	FormatMarkdown Format = "markdown"
)

// ParseFormat parses a format name
func ParseFormat(s string) (Format, bool) {
	switch Format(s) {
	case FormatJSON, FormatYAML, FormatMarkdown:
		return Format(s), true
	default:
		return "", false
	}
}

// Config holds configuration for documentation generation
type Config struct {
	// OutputDir is the root directory documents are written under
	OutputDir string

	// Formats specifies which formats to write; JSON when empty
	Formats []Format
}

// Document is a compiled Swagger document for one target version
type Document struct {
	// Module is the module the document was compiled from
	Module arm.Module

	// Target is the API version the document describes
	Target apiversion.Target

	// Swagger is the compiled document
	Swagger *spec.Swagger
}

// DocumentWriter persists compiled documents
type DocumentWriter interface {
	WriteDocument(doc *Document) error
}
