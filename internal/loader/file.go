package loader

import "gopkg.in/yaml.v3"

// moduleFile mirrors the YAML module definition.
type moduleFile struct {
	Name        string                `yaml:"name"`
	Description string                `yaml:"description"`
	Namespace   string                `yaml:"namespace"`
	Types       map[string]objectFile `yaml:"types"`
	Resources   []resourceFile        `yaml:"resources"`
}

type resourceFile struct {
	Name       string                  `yaml:"name"`
	Plural     string                  `yaml:"plural"`
	Category   string                  `yaml:"category"`
	Lifetime   lifetimeFile            `yaml:"lifetime"`
	Path       []segmentFile           `yaml:"path"`
	Properties map[string]propertyFile `yaml:"properties"`
}

type segmentFile struct {
	Segment   string        `yaml:"segment"`
	Parameter parameterFile `yaml:"parameter"`
}

type parameterFile struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	MinLength   *int   `yaml:"minLength"`
	MaxLength   *int   `yaml:"maxLength"`
	Pattern     string `yaml:"pattern"`
}

type lifetimeFile struct {
	Preview    dateValue `yaml:"preview"`
	GA         dateValue `yaml:"ga"`
	Deprecated dateValue `yaml:"deprecated"`
}

// typeFile is a field type: a type name plus the block its kind needs.
type typeFile struct {
	Type   string      `yaml:"type"`
	Items  *typeFile   `yaml:"items"`
	Enum   *enumFile   `yaml:"enum"`
	Object *objectFile `yaml:"object"`
	Ref    string      `yaml:"ref"`
}

type propertyFile struct {
	typeFile `yaml:",inline"`

	Description string       `yaml:"description"`
	Mutability  []string     `yaml:"mutability"`
	Required    bool         `yaml:"required"`
	Lifetime    lifetimeFile `yaml:"lifetime"`
}

type enumFile struct {
	Name   string   `yaml:"name"`
	Values []string `yaml:"values"`
}

type objectFile struct {
	Name        string                  `yaml:"name"`
	Description string                  `yaml:"description"`
	Properties  map[string]propertyFile `yaml:"properties"`
}

// dateValue keeps a date as written. YAML would otherwise resolve
// unquoted dates to timestamps and reject unpadded ones.
type dateValue struct {
	raw string
	set bool
}

func (d *dateValue) UnmarshalYAML(value *yaml.Node) error {
	d.raw = value.Value
	d.set = true
	return nil
}
