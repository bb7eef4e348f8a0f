package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/armgen/internal/compiler/errors"
)

func TestSerializeFieldType(t *testing.T) {
	tests := []struct {
		name string
		in   FieldType
		want map[string]interface{}
	}{
		{"bool", Bool{}, map[string]interface{}{"type": "boolean"}},
		{"string", String{}, map[string]interface{}{"type": "string"}},
		{"int32", Int32{}, map[string]interface{}{"type": "integer", "format": "int32"}},
		{"int64", Int64{}, map[string]interface{}{"type": "integer", "format": "int64"}},
		{"float", Float{}, map[string]interface{}{"type": "number", "format": "double"}},
		{
			"enum",
			Enum{Name: "Color", Values: []string{"Red", "Green"}},
			map[string]interface{}{
				"type": "string",
				"enum": []string{"Red", "Green"},
				"x-ms-enum": map[string]interface{}{
					"modelAsString": true,
					"name":          "Color",
				},
			},
		},
		{
			"array of arrays",
			ArrayOf(ArrayOf(Int64{})),
			map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type":  "array",
					"items": map[string]interface{}{"type": "integer", "format": "int64"},
				},
			},
		},
		{"ref", RefTo("Foo"), map[string]interface{}{"$ref": "#/definitions/Foo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SerializeFieldType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSerializeFieldType_ObjectIsRejected(t *testing.T) {
	_, err := SerializeFieldType(&Object{Name: "Nested"})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInvalidSerializationTarget))

	_, err = SerializeFieldType(ArrayOf(&Object{Name: "Nested"}))
	assert.True(t, errors.HasCode(err, errors.ErrInvalidSerializationTarget))
}

func TestSerializeDefinition_Empty(t *testing.T) {
	got, err := SerializeDefinition(Definition{Description: "Hello", Properties: map[string]Property{}})
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{
		"description": "Hello",
		"type":        "object",
		"properties":  map[string]interface{}{},
		"required":    []string{},
	}, got)
}

func TestSerializeDefinition_NoRequiredProperties(t *testing.T) {
	got, err := SerializeDefinition(Definition{
		Description: "Hello",
		Properties: map[string]Property{
			"name": {Description: "Name", Type: String{}},
		},
	})
	require.NoError(t, err)

	assert.NotContains(t, got, "required")
	assert.Equal(t, map[string]interface{}{
		"name": map[string]interface{}{"description": "Name", "type": "string"},
	}, got["properties"])
}

func TestSerializeDefinition_RequiredAndMutability(t *testing.T) {
	got, err := SerializeDefinition(Definition{
		Description: "Widget",
		Properties: map[string]Property{
			"size":     {Description: "Size", Type: Int32{}, Required: true},
			"password": {Description: "Secret", Type: String{}, Mutability: Create, Required: true},
			"status":   {Description: "Status", Type: String{}, Mutability: ReadOnly},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"password", "size"}, got["required"])

	properties := got["properties"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{
		"description":     "Secret",
		"type":            "string",
		"x-ms-mutability": []string{"create"},
		"x-ms-secret":     true,
	}, properties["password"])
	assert.Equal(t, true, properties["status"].(map[string]interface{})["readOnly"])
}

func TestSerializeDefinition_ObjectPropertyFails(t *testing.T) {
	_, err := SerializeDefinition(Definition{
		Properties: map[string]Property{
			"nested": {Type: &Object{Name: "Nested"}},
		},
	})
	assert.True(t, errors.HasCode(err, errors.ErrInvalidSerializationTarget))
}
