package arm

import (
	"fmt"

	"github.com/conduit-lang/armgen/internal/apiversion"
	"github.com/conduit-lang/armgen/internal/merge"
	"github.com/conduit-lang/armgen/internal/schema"
)

// envelope returns the standard ARM fields of r's root definition. Every
// category carries id, name and type; tracked resources add location.
func envelope(r Resource) map[string]schema.Property {
	lifetime := apiversion.Since(r.Preview, r.GA)
	field := func(description string, m schema.Mutability, required bool) schema.Property {
		return schema.Property{
			Lifetime:    lifetime,
			Description: description,
			Type:        schema.String{},
			Mutability:  m,
			Required:    required,
		}
	}

	fields := map[string]schema.Property{
		"id":   field("Fully qualified resource ID.", schema.ReadOnly, false),
		"name": field("The name of the resource.", schema.ReadOnly, false),
		"type": field("The type of the resource.", schema.ReadOnly, false),
	}
	if r.Category == Tracked {
		fields["location"] = field("The geo-location where the resource lives.", schema.Create|schema.Read, true)
	}
	return fields
}

// rootObject is the object type of r's root definition: the envelope fields
// plus the properties bag.
func rootObject(r Resource) *schema.Object {
	properties := envelope(r)
	properties["properties"] = schema.Property{
		Lifetime:    apiversion.Since(r.Preview, r.GA),
		Description: fmt.Sprintf("The %s properties.", r.Singular),
		Type: &schema.Object{
			Name:        r.PropertiesDefinitionName(),
			Description: fmt.Sprintf("Properties of a %s.", r.Singular),
			Properties:  r.Properties,
		},
	}

	return &schema.Object{
		Name:        r.ResourceDefinitionName(),
		Description: fmt.Sprintf("A %s resource.", r.Singular),
		Properties:  properties,
	}
}

// DefinitionsFromResource returns the serialized definitions of r at target:
// the root resource shape, the properties shape and every nested object type.
func DefinitionsFromResource(r Resource, target apiversion.Target) (map[string]interface{}, error) {
	defs, err := schema.DefinitionsFromFieldType(rootObject(r), target)
	if err != nil {
		return nil, err
	}
	return schema.SerializeDefinitions(defs)
}

// PathsFromResource returns r's single path entry keyed by its full path.
func PathsFromResource(r Resource, namespace string) map[string]interface{} {
	item := make(map[string]interface{}, len(Methods))
	for _, m := range Methods {
		item[m.String()] = SerializeHandler(r, m)
	}
	return map[string]interface{}{r.FullPath(namespace): item}
}

// ParametersFromResource returns the hoisted path parameters of r keyed by
// parameter name. A resource naming the same parameter twice fails with MRG001.
func ParametersFromResource(r Resource) (map[string]interface{}, error) {
	params := make([]map[string]interface{}, 0, len(r.Path))
	for _, seg := range r.Path {
		params = append(params, map[string]interface{}{
			seg.Parameter.Name: serializeParameter(seg),
		})
	}
	return merge.Disjoint(params...)
}

func serializeParameter(seg PathSegment) map[string]interface{} {
	p := seg.Parameter
	description := p.Description
	if description == "" {
		description = fmt.Sprintf("The name of the %s resource.", seg.Name)
	}

	param := map[string]interface{}{
		"name":                    p.Name,
		"in":                      "path",
		"required":                true,
		"type":                    "string",
		"description":             description,
		"x-ms-parameter-location": "method",
	}
	if p.MinLength != nil {
		param["minLength"] = *p.MinLength
	}
	if p.MaxLength != nil {
		param["maxLength"] = *p.MaxLength
	}
	if p.Pattern != "" {
		param["pattern"] = p.Pattern
	}
	return param
}

// Fragments holds the merged dictionaries of a compiled module.
type Fragments struct {
	Paths       map[string]interface{}
	Definitions map[string]interface{}
	Parameters  map[string]interface{}
}

// CompileFragments compiles every resource of m visible at target and merges
// the results.
func CompileFragments(m Module, target apiversion.Target) (*Fragments, error) {
	var paths, defs, params []map[string]interface{}

	for _, r := range m.VisibleResources(target) {
		d, err := DefinitionsFromResource(r, target)
		if err != nil {
			return nil, fmt.Errorf("resource %s: %w", r.Plural, err)
		}
		p, err := ParametersFromResource(r)
		if err != nil {
			return nil, fmt.Errorf("resource %s: %w", r.Plural, err)
		}
		defs = append(defs, d)
		params = append(params, p)
		paths = append(paths, PathsFromResource(r, m.Namespace))
	}

	mergedPaths, err := merge.Idempotent(paths...)
	if err != nil {
		return nil, fmt.Errorf("merging paths: %w", err)
	}
	mergedDefs, err := merge.Idempotent(defs...)
	if err != nil {
		return nil, fmt.Errorf("merging definitions: %w", err)
	}
	mergedParams, err := merge.Idempotent(params...)
	if err != nil {
		return nil, fmt.Errorf("merging parameters: %w", err)
	}

	return &Fragments{
		Paths:       mergedPaths,
		Definitions: mergedDefs,
		Parameters:  mergedParams,
	}, nil
}
