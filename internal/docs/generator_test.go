package docs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/conduit-lang/armgen/internal/apiversion"
	"github.com/conduit-lang/armgen/internal/arm"
	"github.com/conduit-lang/armgen/internal/compiler/errors"
	"github.com/conduit-lang/armgen/internal/schema"
)

var (
	jan2021 = apiversion.Ptr(apiversion.NewDate(2021, 1, 1))
	jun2021 = apiversion.Ptr(apiversion.NewDate(2021, 6, 1))

	previewTarget = apiversion.NewTarget(apiversion.NewDate(2021, 3, 1), apiversion.Preview)
	gaTarget      = apiversion.NewTarget(apiversion.NewDate(2021, 7, 1), apiversion.GA)
)

func testModule() arm.Module {
	return arm.Module{
		Name:        "Contoso Widgets",
		Description: "Widget management",
		Namespace:   "Contoso.Widgets",
		Resources: []arm.Resource{{
			Lifetime: apiversion.Lifetime{Preview: jan2021},
			Path:     []arm.PathSegment{{Name: "widgets", Parameter: arm.Parameter{Name: "widgetName"}}},
			Category: arm.Tracked,
			Singular: "Widget",
			Plural:   "Widgets",
			Properties: map[string]schema.Property{
				"size": {
					Lifetime:    apiversion.Lifetime{Preview: jan2021},
					Description: "Widget size",
					Type:        schema.Int32{},
					Required:    true,
				},
				"adminKey": {
					Lifetime:    apiversion.Lifetime{Preview: jan2021},
					Description: "Admin key",
					Type:        schema.String{},
					Mutability:  schema.SecretReadWrite,
				},
			},
		}},
	}
}

// conflictingModule compiles at previewTarget but not at gaTarget, where a
// second resource with a different "Shared" definition becomes visible.
func conflictingModule() arm.Module {
	shared := func(t schema.FieldType) *schema.Object {
		return &schema.Object{
			Name: "Shared",
			Properties: map[string]schema.Property{
				"value": {Lifetime: apiversion.Lifetime{GA: jan2021}, Type: t},
			},
		}
	}
	resource := func(segment string, lifetime apiversion.Lifetime, t schema.FieldType) arm.Resource {
		return arm.Resource{
			Lifetime: lifetime,
			Path:     []arm.PathSegment{{Name: segment, Parameter: arm.Parameter{Name: segment + "Name"}}},
			Category: arm.Proxy,
			Singular: segment,
			Plural:   segment,
			Properties: map[string]schema.Property{
				"shared": {Lifetime: apiversion.Lifetime{GA: jan2021}, Type: shared(t)},
			},
		}
	}

	m := testModule()
	m.Resources = []arm.Resource{
		resource("widgets", apiversion.Lifetime{GA: jan2021}, schema.String{}),
		resource("gadgets", apiversion.Lifetime{GA: jun2021}, schema.Int32{}),
	}
	return m
}

type memoryWriter struct {
	docs []*Document
}

func (w *memoryWriter) WriteDocument(doc *Document) error {
	w.docs = append(w.docs, doc)
	return nil
}

func TestCompile(t *testing.T) {
	docs, err := Compile(testModule(), []apiversion.Target{previewTarget, gaTarget})
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, previewTarget, docs[0].Target)
	assert.Equal(t, "2021-03-01-preview", docs[0].Swagger.Info.Version)
	assert.Contains(t, docs[0].Swagger.Definitions, "WidgetsResource")

	// Preview-only resources are dropped from GA documents
	assert.Equal(t, "2021-07-01", docs[1].Swagger.Info.Version)
	assert.Empty(t, docs[1].Swagger.Paths.Paths)
}

func TestCompile_FailureNamesTarget(t *testing.T) {
	_, err := Compile(conflictingModule(), []apiversion.Target{previewTarget, gaTarget})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2021-07-01")
	assert.True(t, errors.HasCode(err, errors.ErrInconsistentDuplicate))
}

func TestCompile_CollectsEveryFailingTarget(t *testing.T) {
	later := apiversion.NewTarget(apiversion.NewDate(2022, 1, 1), apiversion.GA)

	_, err := Compile(conflictingModule(), []apiversion.Target{previewTarget, gaTarget, later})
	require.Error(t, err)

	list := errors.List(err)
	require.Len(t, list, 2)
	assert.Equal(t, "2021-07-01", list[0].Target)
	assert.Equal(t, "2022-01-01", list[1].Target)
	for _, ce := range list {
		assert.Equal(t, errors.ErrInconsistentDuplicate, ce.Code)
	}
}

func TestGenerator_WritesEveryTarget(t *testing.T) {
	w := &memoryWriter{}
	g := NewGeneratorWithWriter(w, zap.NewNop())

	docs, err := g.Generate(testModule(), []apiversion.Target{previewTarget, gaTarget})
	require.NoError(t, err)
	assert.Equal(t, docs, w.docs)
}

func TestGenerator_WritesNothingOnFailure(t *testing.T) {
	w := &memoryWriter{}
	g := NewGeneratorWithWriter(w, nil)

	_, err := g.Generate(conflictingModule(), []apiversion.Target{previewTarget, gaTarget})
	require.Error(t, err)
	assert.Empty(t, w.docs)
}

func TestGenerate_FileLayout(t *testing.T) {
	root := t.TempDir()

	err := Generate(testModule(), root, []apiversion.Target{previewTarget, gaTarget}, zap.NewNop())
	require.NoError(t, err)

	previewPath := filepath.Join(root, "Contoso.Widgets", "preview", "2021-03-01-preview", "widgets.json")
	gaPath := filepath.Join(root, "Contoso.Widgets", "stable", "2021-07-01", "widgets.json")

	data, err := os.ReadFile(previewPath)
	require.NoError(t, err)
	assert.Equal(t, byte('\n'), data[len(data)-1])
	assert.Contains(t, string(data), "\n  \"swagger\": \"2.0\"")

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "management.azure.com", decoded["host"])

	assert.FileExists(t, gaPath)
}

func TestGenerate_Overwrites(t *testing.T) {
	root := t.TempDir()
	targets := []apiversion.Target{previewTarget}

	require.NoError(t, Generate(testModule(), root, targets, nil))

	m := testModule()
	m.Name = "Renamed"
	require.NoError(t, Generate(m, root, targets, nil))

	data, err := os.ReadFile(filepath.Join(root, "Contoso.Widgets", "preview", "2021-03-01-preview", "widgets.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"title": "Renamed"`)
}

func TestGenerate_NoPartialOutput(t *testing.T) {
	root := t.TempDir()

	err := Generate(conflictingModule(), root, []apiversion.Target{previewTarget, gaTarget}, nil)
	require.Error(t, err)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
