package schema

import (
	"maps"
	"slices"

	"github.com/conduit-lang/armgen/internal/compiler/errors"
	"github.com/conduit-lang/armgen/internal/merge"
)

const definitionsPrefix = "#/definitions/"

// DefinitionRef returns the JSON reference to the named definition.
func DefinitionRef(name string) string {
	return definitionsPrefix + name
}

// RefSchema returns a schema fragment referencing the named definition.
func RefSchema(name string) map[string]interface{} {
	return map[string]interface{}{"$ref": DefinitionRef(name)}
}

// SerializeFieldType returns the inline schema for t. Object types have no
// inline form and fail with SER100; they must be extracted first.
func SerializeFieldType(t FieldType) (map[string]interface{}, error) {
	switch t := t.(type) {
	case Bool:
		return map[string]interface{}{"type": "boolean"}, nil
	case String:
		return map[string]interface{}{"type": "string"}, nil
	case Int32:
		return map[string]interface{}{"type": "integer", "format": "int32"}, nil
	case Int64:
		return map[string]interface{}{"type": "integer", "format": "int64"}, nil
	case Float:
		return map[string]interface{}{"type": "number", "format": "double"}, nil
	case Enum:
		return map[string]interface{}{
			"type": "string",
			"enum": slices.Clone(t.Values),
			"x-ms-enum": map[string]interface{}{
				"modelAsString": true,
				"name":          t.Name,
			},
		}, nil
	case Array:
		items, err := SerializeFieldType(t.Items)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"type": "array", "items": items}, nil
	case Ref:
		return RefSchema(t.Target), nil
	case *Object:
		return nil, errors.NewInvalidSerializationTarget(t.Name)
	default:
		return nil, errors.NewInvalidSerializationTarget(KindName(t))
	}
}

// SerializeProperty returns the schema for one property: its description,
// inline type and mutability annotations. The three fragments must not share
// a key.
func SerializeProperty(p Property) (map[string]interface{}, error) {
	typ, err := SerializeFieldType(p.Type)
	if err != nil {
		return nil, err
	}
	return merge.Disjoint(
		map[string]interface{}{"description": p.Description},
		typ,
		SerializeMutability(p.Mutability),
	)
}

// SerializeDefinition returns the object schema for d. A definition without
// properties carries an empty required list; otherwise required is omitted
// when no property is required.
func SerializeDefinition(d Definition) (map[string]interface{}, error) {
	properties := make(map[string]interface{}, len(d.Properties))
	required := make([]string, 0)

	for _, name := range slices.Sorted(maps.Keys(d.Properties)) {
		p := d.Properties[name]
		serialized, err := SerializeProperty(p)
		if err != nil {
			return nil, err
		}
		properties[name] = serialized
		if p.Required {
			required = append(required, name)
		}
	}

	schema := map[string]interface{}{
		"description": d.Description,
		"type":        "object",
		"properties":  properties,
	}
	if len(d.Properties) == 0 || len(required) > 0 {
		schema["required"] = required
	}
	return schema, nil
}

// SerializeDefinitions serializes every definition in defs, keyed by name.
func SerializeDefinitions(defs map[string]Definition) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(defs))
	for _, name := range slices.Sorted(maps.Keys(defs)) {
		serialized, err := SerializeDefinition(defs[name])
		if err != nil {
			return nil, err
		}
		out[name] = serialized
	}
	return out, nil
}
