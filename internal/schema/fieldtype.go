// Package schema lowers the field types of a versioned API description into
// Swagger 2.0 schema fragments.
//
// FieldType is a closed sum type: Bool, String, Int32, Int64, Float, Array,
// Enum, *Object and Ref. Scalars, arrays, enums and refs serialize in place.
// Objects never do: DefinitionsFromFieldType extracts every object into a
// named Definition and replaces it with a Ref.
package schema

// FieldType is implemented only by the types in this package.
type FieldType interface {
	fieldType()
}

// Bool is a boolean field.
type Bool struct{}

// String is a string field.
type String struct{}

// Int32 is a 32-bit integer field.
type Int32 struct{}

// Int64 is a 64-bit integer field.
type Int64 struct{}

// Float is a double-precision number field.
type Float struct{}

// Array is a homogeneous list of Items.
type Array struct {
	Items FieldType
}

// Enum is a string restricted to Values. Name is the enum's client model name.
type Enum struct {
	Name   string
	Values []string
}

// Object is a nested object type, emitted as the definition called Name.
// Object graphs may be self-referential.
type Object struct {
	Name        string
	Description string
	Properties  map[string]Property
}

// Ref references the definition called Target.
type Ref struct {
	Target string
}

func (Bool) fieldType()    {}
func (String) fieldType()  {}
func (Int32) fieldType()   {}
func (Int64) fieldType()   {}
func (Float) fieldType()   {}
func (Array) fieldType()   {}
func (Enum) fieldType()    {}
func (*Object) fieldType() {}
func (Ref) fieldType()     {}

// ArrayOf returns an array of items.
func ArrayOf(items FieldType) Array {
	return Array{Items: items}
}

// RefTo returns a reference to the named definition.
func RefTo(target string) Ref {
	return Ref{Target: target}
}

// KindName returns a short name for t's variant, used in diagnostics.
func KindName(t FieldType) string {
	switch t := t.(type) {
	case Bool:
		return "bool"
	case String:
		return "string"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float:
		return "float"
	case Array:
		return "array"
	case Enum:
		return "enum"
	case *Object:
		return "object " + t.Name
	case Ref:
		return "ref"
	default:
		return "unknown"
	}
}
