package schema

import (
	"maps"
	"slices"

	"github.com/conduit-lang/armgen/internal/apiversion"
	"github.com/conduit-lang/armgen/internal/merge"
)

// DefinitionsFromFieldType extracts t and every object type nested in it
// into definitions keyed by object name. Properties not visible at target are
// dropped. Each nested object property is replaced by a Ref carrying only the
// property's description and its preview/GA dates.
//
// An object type reached more than once is extracted once; two different
// object types sharing a name fail with MRG002, including when they differ
// only below a nested object. Non-object types yield no definitions.
func DefinitionsFromFieldType(t FieldType, target apiversion.Target) (map[string]Definition, error) {
	x := &extractor{
		target:  target,
		defs:    make(map[string]Definition),
		visited: make(map[*Object]struct{}),
	}
	if err := x.extract(t); err != nil {
		return nil, err
	}
	return x.defs, nil
}

type extractor struct {
	target  apiversion.Target
	defs    map[string]Definition
	visited map[*Object]struct{}
}

func (x *extractor) extract(t FieldType) error {
	switch t := t.(type) {
	case Array:
		return x.extract(t.Items)
	case *Object:
		// Visited objects stop recursion on self-referential graphs. A
		// same-named object seen for the first time is still descended into
		// so its children are merged too.
		if _, ok := x.visited[t]; ok {
			return nil
		}
		x.visited[t] = struct{}{}

		def, nested := lowerObject(t, x.target)
		if _, err := merge.Put(x.defs, t.Name, def); err != nil {
			return err
		}

		for _, obj := range nested {
			if err := x.extract(obj); err != nil {
				return err
			}
		}
	}
	return nil
}

// lowerObject builds obj's definition and returns the object types it refers
// to, in property name order.
func lowerObject(obj *Object, target apiversion.Target) (Definition, []*Object) {
	def := Definition{
		Description: obj.Description,
		Properties:  make(map[string]Property),
	}

	var nested []*Object
	for _, name := range slices.Sorted(maps.Keys(obj.Properties)) {
		p := obj.Properties[name]
		if !p.IsVisible(target) {
			continue
		}

		lowered, child := lowerType(p.Type)
		_, direct := p.Type.(*Object)
		switch {
		case child == nil:
			def.Properties[name] = p
		case direct:
			def.Properties[name] = Property{
				Lifetime:    apiversion.Since(p.Preview, p.GA),
				Description: p.Description,
				Type:        lowered,
			}
			nested = append(nested, child)
		default:
			// Arrays of objects keep the rest of the property.
			p.Type = lowered
			def.Properties[name] = p
			nested = append(nested, child)
		}
	}
	return def, nested
}

// lowerType replaces an object type, directly or as array items, with a Ref.
func lowerType(t FieldType) (FieldType, *Object) {
	switch t := t.(type) {
	case *Object:
		return RefTo(t.Name), t
	case Array:
		items, child := lowerType(t.Items)
		if child == nil {
			return t, nil
		}
		return ArrayOf(items), child
	default:
		return t, nil
	}
}
