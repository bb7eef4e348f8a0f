// Package loader reads module definitions from YAML files.
package loader

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/conduit-lang/armgen/internal/apiversion"
	"github.com/conduit-lang/armgen/internal/arm"
	"github.com/conduit-lang/armgen/internal/compiler/errors"
	"github.com/conduit-lang/armgen/internal/schema"
)

// Load reads and converts the module file at path. Errors carry the file
// name.
func Load(path string) (arm.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return arm.Module{}, fmt.Errorf("failed to read module file: %w", err)
	}

	m, err := Parse(data)
	if err != nil {
		if ce, ok := errors.As(err); ok {
			return arm.Module{}, ce.WithFile(path)
		}
		return arm.Module{}, err
	}
	return m, nil
}

// Parse converts a YAML module definition. Unknown keys are rejected.
func Parse(data []byte) (arm.Module, error) {
	var file moduleFile

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return arm.Module{}, errors.NewInvalidModule("module", "malformed YAML").WithDetail(err.Error())
	}

	c := &converter{types: make(map[string]*schema.Object)}
	return c.module(file)
}

// converter turns decoded files into the compiler's model. Named types are
// shared *schema.Object values so they may refer to each other and to
// themselves.
type converter struct {
	types map[string]*schema.Object
}

func (c *converter) module(file moduleFile) (arm.Module, error) {
	if file.Namespace == "" {
		return arm.Module{}, errors.NewInvalidModule("namespace", "namespace is required")
	}

	names := slices.Sorted(maps.Keys(file.Types))
	for _, name := range names {
		c.types[name] = &schema.Object{
			Name:        objectName(name, file.Types[name]),
			Description: file.Types[name].Description,
		}
	}
	for _, name := range names {
		props, err := c.properties("types."+name, file.Types[name].Properties)
		if err != nil {
			return arm.Module{}, err
		}
		c.types[name].Properties = props
	}

	m := arm.Module{
		Name:        file.Name,
		Description: file.Description,
		Namespace:   file.Namespace,
		Resources:   make([]arm.Resource, 0, len(file.Resources)),
	}
	if m.Name == "" {
		m.Name = file.Namespace
	}

	for i, rf := range file.Resources {
		r, err := c.resource(fmt.Sprintf("resources[%d]", i), rf)
		if err != nil {
			return arm.Module{}, err
		}
		m.Resources = append(m.Resources, r)
	}
	return m, nil
}

func (c *converter) resource(field string, rf resourceFile) (arm.Resource, error) {
	if rf.Name == "" {
		return arm.Resource{}, errors.NewInvalidModule(field+".name", "resource name is required")
	}
	if len(rf.Path) == 0 {
		return arm.Resource{}, errors.NewInvalidModule(field+".path", "resource path needs at least one segment")
	}

	category := arm.Tracked
	if rf.Category != "" {
		var ok bool
		category, ok = arm.ParseCategory(rf.Category)
		if !ok {
			return arm.Resource{}, errors.NewInvalidModule(field+".category",
				fmt.Sprintf("unknown category %q (want tracked, proxy or readOnlyProxy)", rf.Category))
		}
	}

	lifetime, err := convertLifetime(field+".lifetime", rf.Lifetime)
	if err != nil {
		return arm.Resource{}, err
	}

	path := make([]arm.PathSegment, 0, len(rf.Path))
	for i, sf := range rf.Path {
		segField := fmt.Sprintf("%s.path[%d]", field, i)
		if sf.Segment == "" {
			return arm.Resource{}, errors.NewInvalidModule(segField+".segment", "path segment is required")
		}
		if sf.Parameter.Name == "" {
			return arm.Resource{}, errors.NewInvalidModule(segField+".parameter.name", "path parameter name is required")
		}
		path = append(path, arm.PathSegment{
			Name: sf.Segment,
			Parameter: arm.Parameter{
				Name:        sf.Parameter.Name,
				Description: sf.Parameter.Description,
				MinLength:   sf.Parameter.MinLength,
				MaxLength:   sf.Parameter.MaxLength,
				Pattern:     sf.Parameter.Pattern,
			},
		})
	}

	props, err := c.properties(field+".properties", rf.Properties)
	if err != nil {
		return arm.Resource{}, err
	}

	plural := rf.Plural
	if plural == "" {
		plural = rf.Name + "s"
	}

	return arm.Resource{
		Lifetime:   lifetime,
		Path:       path,
		Category:   category,
		Singular:   rf.Name,
		Plural:     plural,
		Properties: props,
	}, nil
}

func (c *converter) properties(field string, files map[string]propertyFile) (map[string]schema.Property, error) {
	props := make(map[string]schema.Property, len(files))
	for _, name := range slices.Sorted(maps.Keys(files)) {
		pf := files[name]
		propField := field + "." + name

		t, err := c.fieldType(propField, pf.typeFile)
		if err != nil {
			return nil, err
		}

		mutability, ok := schema.ParseMutability(pf.Mutability)
		if !ok {
			return nil, errors.NewInvalidModule(propField+".mutability",
				fmt.Sprintf("unknown mutability in %v (want create, read or write)", pf.Mutability))
		}

		lifetime, err := convertLifetime(propField+".lifetime", pf.Lifetime)
		if err != nil {
			return nil, err
		}

		props[name] = schema.Property{
			Lifetime:    lifetime,
			Description: pf.Description,
			Type:        t,
			Mutability:  mutability,
			Required:    pf.Required,
		}
	}
	return props, nil
}

func (c *converter) fieldType(field string, tf typeFile) (schema.FieldType, error) {
	switch tf.Type {
	case "bool":
		return schema.Bool{}, nil
	case "string":
		return schema.String{}, nil
	case "int32":
		return schema.Int32{}, nil
	case "int64":
		return schema.Int64{}, nil
	case "float":
		return schema.Float{}, nil
	case "array":
		if tf.Items == nil {
			return nil, errors.NewInvalidModule(field+".items", "array types need items")
		}
		items, err := c.fieldType(field+".items", *tf.Items)
		if err != nil {
			return nil, err
		}
		return schema.ArrayOf(items), nil
	case "enum":
		if tf.Enum == nil || tf.Enum.Name == "" || len(tf.Enum.Values) == 0 {
			return nil, errors.NewInvalidModule(field+".enum", "enum types need a name and values")
		}
		return schema.Enum{Name: tf.Enum.Name, Values: tf.Enum.Values}, nil
	case "object":
		if tf.Object == nil || tf.Object.Name == "" {
			return nil, errors.NewInvalidModule(field+".object", "object types need a name")
		}
		props, err := c.properties(field+".object.properties", tf.Object.Properties)
		if err != nil {
			return nil, err
		}
		return &schema.Object{
			Name:        tf.Object.Name,
			Description: tf.Object.Description,
			Properties:  props,
		}, nil
	case "ref":
		if tf.Ref == "" {
			return nil, errors.NewInvalidModule(field+".ref", "ref types need a target")
		}
		return schema.RefTo(tf.Ref), nil
	case "":
		return nil, errors.NewInvalidModule(field+".type", "type is required")
	}

	if obj, ok := c.types[tf.Type]; ok {
		return obj, nil
	}
	return nil, errors.NewUnknownFieldType(field+".type", tf.Type)
}

func convertLifetime(field string, lf lifetimeFile) (apiversion.Lifetime, error) {
	var l apiversion.Lifetime
	var err error

	if l.Preview, err = convertDate(field+".preview", lf.Preview); err != nil {
		return l, err
	}
	if l.GA, err = convertDate(field+".ga", lf.GA); err != nil {
		return l, err
	}
	if l.Deprecated, err = convertDate(field+".deprecated", lf.Deprecated); err != nil {
		return l, err
	}
	return l, nil
}

func convertDate(field string, v dateValue) (*apiversion.Date, error) {
	if !v.set {
		return nil, nil
	}
	d, err := apiversion.ParseDate(v.raw)
	if err != nil {
		return nil, errors.NewInvalidDate(field, v.raw)
	}
	return &d, nil
}

// objectName is the definition name of a named type; it defaults to the key
// it is declared under.
func objectName(key string, of objectFile) string {
	if of.Name != "" {
		return of.Name
	}
	return key
}
