package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/armgen/internal/compiler/errors"
)

func TestDisjoint(t *testing.T) {
	got, err := Disjoint(
		map[string]int{"a": 1},
		map[string]int{"b": 2, "c": 3},
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1, "b": 2, "c": 3}, got)
}

func TestDisjoint_Empty(t *testing.T) {
	got, err := Disjoint[int]()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDisjoint_DuplicateKey(t *testing.T) {
	_, err := Disjoint(
		map[string]int{"a": 1, "b": 2},
		map[string]int{"b": 2},
	)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrDuplicateKey))

	ce, _ := errors.As(err)
	assert.Equal(t, "b", ce.Key)
}

func TestDisjoint_DuplicateKeyReportsFirstSortedKey(t *testing.T) {
	_, err := Disjoint(
		map[string]int{"z": 1, "m": 1},
		map[string]int{"z": 1, "m": 1},
	)
	ce, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, "m", ce.Key)
}

func TestIdempotent_EqualDuplicates(t *testing.T) {
	got, err := Idempotent(
		map[string]int{"a": 1},
		map[string]int{"a": 1},
	)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1}, got)
}

func TestIdempotent_ConflictingDuplicates(t *testing.T) {
	_, err := Idempotent(
		map[string]int{"a": 1},
		map[string]int{"a": 2},
	)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInconsistentDuplicate))

	ce, _ := errors.As(err)
	assert.Equal(t, "a", ce.Key)
	assert.NotEmpty(t, ce.Detail)
}

func TestIdempotent_NestedFragments(t *testing.T) {
	widget := map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{"size": map[string]interface{}{"type": "integer"}},
		"required":   []string{"size"},
	}
	same := map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{"size": map[string]interface{}{"type": "integer"}},
		"required":   []string{"size"},
	}
	different := map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{"size": map[string]interface{}{"type": "string"}},
		"required":   []string{"size"},
	}

	got, err := Idempotent(
		map[string]interface{}{"Widget": widget},
		map[string]interface{}{"Widget": same},
	)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = Idempotent(
		map[string]interface{}{"Widget": widget},
		map[string]interface{}{"Widget": different},
	)
	assert.True(t, errors.HasCode(err, errors.ErrInconsistentDuplicate))
}

func TestIdempotent_DoesNotMutateInputs(t *testing.T) {
	first := map[string]int{"a": 1}
	second := map[string]int{"b": 2}

	_, err := Idempotent(first, second)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1}, first)
	assert.Equal(t, map[string]int{"b": 2}, second)
}

func TestPut(t *testing.T) {
	dst := map[string]string{}

	inserted, err := Put(dst, "k", "v")
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = Put(dst, "k", "v")
	require.NoError(t, err)
	assert.False(t, inserted)

	_, err = Put(dst, "k", "w")
	assert.True(t, errors.HasCode(err, errors.ErrInconsistentDuplicate))
	assert.Equal(t, "v", dst["k"])
}

func TestEqual_EmptyCollections(t *testing.T) {
	assert.True(t, Equal([]string(nil), []string{}))
	assert.True(t, Equal(map[string]interface{}(nil), map[string]interface{}{}))
	assert.False(t, Equal([]string{"a"}, []string{}))
}
