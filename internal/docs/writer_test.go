package docs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/conduit-lang/armgen/internal/apiversion"
)

func compileOne(t *testing.T) *Document {
	t.Helper()
	docs, err := Compile(testModule(), []apiversion.Target{previewTarget})
	require.NoError(t, err)
	return docs[0]
}

func TestNewFileWriter_RejectsTraversal(t *testing.T) {
	_, err := NewFileWriter(&Config{OutputDir: "../outside"})
	assert.Error(t, err)
}

func TestFileWriter_RejectsBadNamespace(t *testing.T) {
	w, err := NewFileWriter(&Config{OutputDir: t.TempDir()})
	require.NoError(t, err)

	doc := compileOne(t)
	for _, ns := range []string{"", "..", "Contoso/Widgets", `Contoso\Widgets`} {
		doc.Module.Namespace = ns
		assert.Error(t, w.WriteDocument(doc), ns)
	}
}

func TestFileWriter_Formats(t *testing.T) {
	root := t.TempDir()
	w, err := NewFileWriter(&Config{
		OutputDir: root,
		Formats:   []Format{FormatJSON, FormatYAML, FormatMarkdown},
	})
	require.NoError(t, err)

	doc := compileOne(t)
	require.NoError(t, w.WriteDocument(doc))

	dir := filepath.Join(root, "Contoso.Widgets", "preview", "2021-03-01-preview")
	assert.FileExists(t, filepath.Join(dir, "widgets.json"))
	assert.FileExists(t, filepath.Join(dir, "README.md"))

	data, err := os.ReadFile(filepath.Join(dir, "widgets.yaml"))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "2.0", decoded["swagger"])
	assert.Contains(t, decoded["definitions"], "WidgetsProperties")
}

func TestFileName(t *testing.T) {
	doc := compileOne(t)

	assert.Equal(t, "widgets.json", FileName(doc, FormatJSON))
	assert.Equal(t, "widgets.yaml", FileName(doc, FormatYAML))
	assert.Equal(t, "README.md", FileName(doc, FormatMarkdown))
}

func TestRender_UnknownFormat(t *testing.T) {
	_, err := Render(compileOne(t), Format("html"))
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, ok := ParseFormat("yaml")
	assert.True(t, ok)
	assert.Equal(t, FormatYAML, f)

	_, ok = ParseFormat("html")
	assert.False(t, ok)
}

func TestContainsPathTraversal(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"specification", false},
		{"out/specification", false},
		{"../specification", true},
		{`out\..\up`, true},
		{"a..b", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, containsPathTraversal(tt.path))
		})
	}
}
