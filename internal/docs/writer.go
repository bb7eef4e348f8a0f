package docs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	strutil "github.com/conduit-lang/armgen/internal/util/strings"
)

// FileWriter writes documents to
// {OutputDir}/{namespace}/{preview|stable}/{version}/{name}.{ext}
type FileWriter struct {
	outputDir string
	formats   []Format
}

// NewFileWriter creates a file writer for config
func NewFileWriter(config *Config) (*FileWriter, error) {
	if containsPathTraversal(config.OutputDir) {
		return nil, fmt.Errorf("invalid output directory: path traversal detected")
	}

	formats := config.Formats
	if len(formats) == 0 {
		formats = []Format{FormatJSON}
	}

	return &FileWriter{
		outputDir: filepath.Clean(config.OutputDir),
		formats:   formats,
	}, nil
}

// Dir returns the directory doc is written to
func (w *FileWriter) Dir(doc *Document) (string, error) {
	ns := doc.Module.Namespace
	if !validNamespace(ns) {
		return "", fmt.Errorf("invalid namespace %q", ns)
	}
	return filepath.Join(w.outputDir, ns, filepath.FromSlash(doc.Target.Dir())), nil
}

// Path returns the file doc is written to in format
func (w *FileWriter) Path(doc *Document, format Format) (string, error) {
	dir, err := w.Dir(doc)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName(doc, format)), nil
}

// WriteDocument writes doc in every configured format, overwriting
// existing files
func (w *FileWriter) WriteDocument(doc *Document) error {
	for _, format := range w.formats {
		outputPath, err := w.Path(doc, format)
		if err != nil {
			return err
		}

		data, err := Render(doc, format)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outputPath, err)
		}
	}
	return nil
}

// FileName returns the base file name of doc in format
func FileName(doc *Document, format Format) string {
	name := strings.ToLower(strutil.LastSegment(doc.Module.Namespace))
	switch format {
	case FormatYAML:
		return name + ".yaml"
	case FormatMarkdown:
		return "README.md"
	default:
		return name + ".json"
	}
}

// Render serializes doc in format
func Render(doc *Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return RenderJSON(doc)
	case FormatYAML:
		return RenderYAML(doc)
	case FormatMarkdown:
		return RenderMarkdown(doc), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// RenderJSON returns the document as two-space indented JSON with a
// trailing newline
func RenderJSON(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc.Swagger, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal swagger document: %w", err)
	}
	return append(data, '\n'), nil
}

// RenderYAML returns the document as YAML
func RenderYAML(doc *Document) ([]byte, error) {
	data, err := json.Marshal(doc.Swagger)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal swagger document: %w", err)
	}

	var generic interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("failed to decode swagger document: %w", err)
	}

	out, err := yaml.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal swagger document as yaml: %w", err)
	}
	return out, nil
}
