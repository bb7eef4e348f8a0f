package docs

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/conduit-lang/armgen/internal/apiversion"
	"github.com/conduit-lang/armgen/internal/arm"
	"github.com/conduit-lang/armgen/internal/compiler/errors"
)

// Generator compiles modules and hands the documents to a writer
type Generator struct {
	writer DocumentWriter
	logger *zap.Logger
}

// NewGenerator creates a generator writing files as described by config
func NewGenerator(config *Config, logger *zap.Logger) (*Generator, error) {
	writer, err := NewFileWriter(config)
	if err != nil {
		return nil, err
	}
	return NewGeneratorWithWriter(writer, logger), nil
}

// NewGeneratorWithWriter creates a generator using writer
func NewGeneratorWithWriter(writer DocumentWriter, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		writer: writer,
		logger: logger,
	}
}

// Compile compiles m for every target, in order. Compiler errors are
// collected across targets and returned together as an errors.ErrorList,
// each tagged with its target.
func Compile(m arm.Module, targets []apiversion.Target) ([]*Document, error) {
	docs := make([]*Document, 0, len(targets))
	var failures errors.ErrorList
	for _, target := range targets {
		swagger, err := arm.SerializeModule(m, target)
		if err != nil {
			ce, ok := errors.As(err)
			if !ok {
				return nil, fmt.Errorf("compiling %s: %w", target, err)
			}
			failures = append(failures, ce.WithTarget(target.String()))
			continue
		}
		docs = append(docs, &Document{
			Module:  m,
			Target:  target,
			Swagger: swagger,
		})
	}
	if len(failures) > 0 {
		return nil, failures
	}
	return docs, nil
}

// Generate compiles m for every target and writes the documents. Nothing is
// written unless every target compiles.
func (g *Generator) Generate(m arm.Module, targets []apiversion.Target) ([]*Document, error) {
	docs, err := Compile(m, targets)
	if err != nil {
		return nil, err
	}

	for _, doc := range docs {
		if err := g.writer.WriteDocument(doc); err != nil {
			return nil, fmt.Errorf("writing %s: %w", doc.Target, err)
		}
		g.logger.Info("document written",
			zap.String("namespace", m.Namespace),
			zap.Stringer("target", doc.Target),
			zap.Int("paths", len(doc.Swagger.Paths.Paths)),
			zap.Int("definitions", len(doc.Swagger.Definitions)),
		)
	}
	return docs, nil
}

// Generate compiles m for every target and writes one JSON document per
// target under outputDir.
func Generate(m arm.Module, outputDir string, targets []apiversion.Target, logger *zap.Logger) error {
	g, err := NewGenerator(&Config{OutputDir: outputDir}, logger)
	if err != nil {
		return err
	}
	_, err = g.Generate(m, targets)
	return err
}
