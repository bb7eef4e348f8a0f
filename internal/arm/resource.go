// Package arm compiles a resource-provider module into Swagger 2.0 documents
// following ARM conventions.
//
// Each visible resource contributes a path entry carrying its four CRUD
// operations, its root and properties definitions, and its hoisted path
// parameters. Fragments from all resources are combined with
// merge.Idempotent, so resources may share definitions and parent path
// parameters as long as they agree on their shape.
package arm

import (
	"fmt"
	"strings"

	"github.com/conduit-lang/armgen/internal/apiversion"
	"github.com/conduit-lang/armgen/internal/schema"
	strutil "github.com/conduit-lang/armgen/internal/util/strings"
)

// Category is the ARM resource shape.
type Category int

const (
	// Tracked resources have a location and are billed individually.
	Tracked Category = iota
	// Proxy resources live under a tracked resource.
	Proxy
	// ReadOnlyProxy resources are proxy resources clients only observe.
	ReadOnlyProxy
)

var categoryNames = map[Category]string{
	Tracked:       "tracked",
	Proxy:         "proxy",
	ReadOnlyProxy: "readOnlyProxy",
}

// String returns the category name used in module files.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseCategory parses a category name.
func ParseCategory(s string) (Category, bool) {
	for c, name := range categoryNames {
		if strings.EqualFold(name, s) {
			return c, true
		}
	}
	return 0, false
}

// Parameter describes a path parameter and its optional constraints.
type Parameter struct {
	Name        string
	Description string
	MinLength   *int
	MaxLength   *int
	Pattern     string
}

// PathSegment is a literal path segment followed by its parameter,
// e.g. "widgets/{widgetName}".
type PathSegment struct {
	Name      string
	Parameter Parameter
}

// Resource is an ARM resource type.
type Resource struct {
	apiversion.Lifetime

	Path       []PathSegment
	Category   Category
	Singular   string
	Plural     string
	Properties map[string]schema.Property
}

// Module is a resource provider: a namespace and its resource types.
type Module struct {
	Name        string
	Description string
	Namespace   string
	Resources   []Resource
}

// TypeName is the capitalized last path segment, e.g. "Widgets".
func (r Resource) TypeName() string {
	if len(r.Path) == 0 {
		return ""
	}
	return strutil.Capitalize(r.Path[len(r.Path)-1].Name)
}

// ResourceDefinitionName names the resource's root definition.
func (r Resource) ResourceDefinitionName() string {
	return r.TypeName() + "Resource"
}

// PropertiesDefinitionName names the definition of the resource's properties bag.
func (r Resource) PropertiesDefinitionName() string {
	return r.TypeName() + "Properties"
}

// PathTemplate returns the provider-relative path, e.g.
// "widgets/{widgetName}/parts/{partName}".
func (r Resource) PathTemplate() string {
	parts := make([]string, 0, 2*len(r.Path))
	for _, seg := range r.Path {
		parts = append(parts, seg.Name, "{"+seg.Parameter.Name+"}")
	}
	return strings.Join(parts, "/")
}

// FullPath returns the full ARM path of the resource within namespace.
func (r Resource) FullPath(namespace string) string {
	return fmt.Sprintf(
		"/subscriptions/{subscriptionId}/resourceGroups/{resourceGroupName}/providers/%s/%s",
		namespace, r.PathTemplate(),
	)
}

// VisibleResources returns the resources of m visible at target, in order.
func (m Module) VisibleResources(target apiversion.Target) []Resource {
	visible := make([]Resource, 0, len(m.Resources))
	for _, r := range m.Resources {
		if r.IsVisible(target) {
			visible = append(visible, r)
		}
	}
	return visible
}
