package schema

import "github.com/conduit-lang/armgen/internal/apiversion"

// Property is a named field of an object type.
type Property struct {
	apiversion.Lifetime

	Description string
	Type        FieldType
	// Mutability is zero when the property is not annotated.
	Mutability Mutability
	Required   bool
}

// Definition is a named object schema in the document's definitions table.
// Definitions are derived per target version and never stored.
type Definition struct {
	Description string
	Properties  map[string]Property
}
