package errors

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodeUniqueness(t *testing.T) {
	codes := []ErrorCode{
		ErrDuplicateKey, ErrInconsistentDuplicate,
		ErrInvalidSerializationTarget,
		ErrInvalidModule, ErrUnknownFieldType, ErrInvalidDate,
		ErrInvalidVersion,
	}

	seen := make(map[ErrorCode]bool)
	for _, code := range codes {
		assert.False(t, seen[code], "duplicate error code %s", code)
		seen[code] = true
	}
}

func TestNewDuplicateKey(t *testing.T) {
	err := NewDuplicateKey("/widgets")

	assert.Equal(t, ErrDuplicateKey, err.Code)
	assert.Equal(t, CategoryMerge, err.Category)
	assert.Equal(t, "/widgets", err.Key)
	assert.Contains(t, err.Error(), "'/widgets'")
	assert.Contains(t, err.Error(), "MRG001")
}

func TestNewInconsistentDuplicate(t *testing.T) {
	err := NewInconsistentDuplicate("a", "-: 1\n+: 2")

	assert.Equal(t, ErrInconsistentDuplicate, err.Code)
	assert.Contains(t, err.Message, "'a'")

	formatted := err.Format()
	assert.Contains(t, formatted, "Merge Conflict")
	assert.Contains(t, formatted, "    -: 1")
	assert.Contains(t, formatted, "    +: 2")
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("compiling 2021-01-01: %w", NewInvalidSerializationTarget("FooProperties"))

	assert.True(t, HasCode(err, ErrInvalidSerializationTarget))
	assert.False(t, HasCode(err, ErrDuplicateKey))
	assert.False(t, HasCode(fmt.Errorf("plain"), ErrDuplicateKey))

	ce, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, "FooProperties", ce.Key)
}

func TestCompilerError_ToJSON(t *testing.T) {
	out, err := NewUnknownFieldType("resources[0].properties.size", "decimal").WithFile("module.yaml").ToJSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "LOD201", decoded["code"])
	assert.Equal(t, "loader", decoded["category"])
	assert.Equal(t, "module.yaml", decoded["file"])
}

func TestErrorList(t *testing.T) {
	var empty ErrorList
	assert.Equal(t, "no errors", empty.Error())

	list := ErrorList{
		NewDuplicateKey("a").WithTarget("2021-01-01"),
		NewInvalidSerializationTarget("FooProperties").WithTarget("2021-06-01"),
	}
	assert.Contains(t, list.Error(), "Compilation failed with 2 error(s)")
	assert.Contains(t, list.Error(), "in <module> for 2021-06-01 [SER100]")

	var err error = list
	assert.True(t, HasCode(err, ErrDuplicateKey))
	ce, ok := As(fmt.Errorf("generate: %w", err))
	require.True(t, ok)
	assert.Equal(t, "a", ce.Key)

	out, jerr := list.ToJSON()
	require.NoError(t, jerr)
	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "2021-06-01", decoded[1]["target"])
}

func TestList(t *testing.T) {
	single := NewInvalidVersion("v1")
	assert.Equal(t, ErrorList{single}, List(fmt.Errorf("config: %w", single)))

	list := ErrorList{NewDuplicateKey("a"), NewDuplicateKey("b")}
	assert.Equal(t, list, List(fmt.Errorf("compile: %w", list)))

	assert.Empty(t, List(fmt.Errorf("plain")))
}

func TestFormatCompact_Target(t *testing.T) {
	e := NewDuplicateKey("a").WithTarget("2021-01-01-preview")
	assert.True(t, strings.HasPrefix(FormatCompact(e), "2021-01-01-preview: error: "))
}
