package loader

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "module.yaml")
	require.NoError(t, writeFile(path, "namespace: Contoso.Widgets\n"))

	c := NewCache()

	m, hit, err := c.Load(path)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "Contoso.Widgets", m.Namespace)

	_, hit, err = c.Load(path)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 1, c.Size())

	require.NoError(t, writeFile(path, "namespace: Contoso.Gadgets\n"))
	m, hit, err = c.Load(path)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "Contoso.Gadgets", m.Namespace)
}

func TestCache_ErrorsEvict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "module.yaml")
	require.NoError(t, writeFile(path, "namespace: Contoso.Widgets\n"))

	c := NewCache()
	_, _, err := c.Load(path)
	require.NoError(t, err)

	require.NoError(t, writeFile(path, "name: missing namespace\n"))
	_, _, err = c.Load(path)
	require.Error(t, err)
	assert.Equal(t, 0, c.Size())
}

func TestCache_MissingFile(t *testing.T) {
	_, _, err := NewCache().Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestHashContent(t *testing.T) {
	assert.Equal(t, hashContent([]byte("a")), hashContent([]byte("a")))
	assert.NotEqual(t, hashContent([]byte("a")), hashContent([]byte("b")))
	assert.Len(t, hashContent(nil), 64)
}
