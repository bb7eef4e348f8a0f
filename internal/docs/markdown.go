package docs

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-openapi/spec"
)

// RenderMarkdown returns a Markdown summary of the document: its paths with
// their operations, then every definition with a property table
func RenderMarkdown(doc *Document) []byte {
	var buf strings.Builder
	sw := doc.Swagger

	// Header
	title := doc.Module.Namespace
	if sw.Info != nil && sw.Info.Title != "" {
		title = sw.Info.Title
	}
	buf.WriteString(fmt.Sprintf("# %s API Reference\n\n", title))

	if sw.Info != nil && sw.Info.Description != "" {
		buf.WriteString(fmt.Sprintf("%s\n\n", sw.Info.Description))
	}

	buf.WriteString(fmt.Sprintf("**Version:** %s\n\n", doc.Target))

	// Paths
	buf.WriteString("## Paths\n\n")
	if sw.Paths == nil || len(sw.Paths.Paths) == 0 {
		buf.WriteString("No resources are visible in this version.\n\n")
	} else {
		for _, path := range sortedKeys(sw.Paths.Paths) {
			writePath(&buf, path, sw.Paths.Paths[path])
		}
	}

	// Definitions
	buf.WriteString("## Definitions\n\n")
	if len(sw.Definitions) == 0 {
		buf.WriteString("No definitions.\n\n")
	} else {
		for _, name := range sortedKeys(sw.Definitions) {
			writeDefinition(&buf, name, sw.Definitions[name])
		}
	}

	return []byte(buf.String())
}

func writePath(buf *strings.Builder, path string, item spec.PathItem) {
	buf.WriteString(fmt.Sprintf("### `%s`\n\n", path))
	buf.WriteString("| Method | Operation | Description |\n")
	buf.WriteString("|--------|-----------|-------------|\n")

	ops := []struct {
		method string
		op     *spec.Operation
	}{
		{"GET", item.Get},
		{"PUT", item.Put},
		{"PATCH", item.Patch},
		{"DELETE", item.Delete},
	}
	for _, o := range ops {
		if o.op == nil {
			continue
		}
		buf.WriteString(fmt.Sprintf("| %s | `%s` | %s |\n", o.method, o.op.ID, orDash(o.op.Description)))
	}
	buf.WriteString("\n")
}

func writeDefinition(buf *strings.Builder, name string, schema spec.Schema) {
	buf.WriteString(fmt.Sprintf("### %s\n\n", name))

	if schema.Description != "" {
		buf.WriteString(fmt.Sprintf("> %s\n\n", schema.Description))
	}

	if len(schema.Properties) == 0 {
		buf.WriteString("No properties.\n\n")
		return
	}

	buf.WriteString("| Name | Type | Required | Mutability | Description |\n")
	buf.WriteString("|------|------|----------|------------|-------------|\n")
	for _, prop := range sortedKeys(schema.Properties) {
		p := schema.Properties[prop]
		required := "No"
		if slices.Contains(schema.Required, prop) {
			required = "Yes"
		}
		buf.WriteString(fmt.Sprintf("| `%s` | %s | %s | %s | %s |\n",
			prop, typeName(p), required, mutabilityOf(p), orDash(p.Description)))
	}
	buf.WriteString("\n")
}

// typeName describes a property schema for a reader
func typeName(s spec.Schema) string {
	if ref := s.Ref.String(); ref != "" {
		target := ref[strings.LastIndex(ref, "/")+1:]
		return fmt.Sprintf("[%s](#%s)", target, strings.ToLower(target))
	}

	if s.Type.Contains("array") {
		if s.Items != nil && s.Items.Schema != nil {
			return "array of " + typeName(*s.Items.Schema)
		}
		return "array"
	}

	if len(s.Enum) > 0 {
		values := make([]string, 0, len(s.Enum))
		for _, v := range s.Enum {
			values = append(values, fmt.Sprint(v))
		}
		return fmt.Sprintf("enum (%s)", strings.Join(values, ", "))
	}

	if len(s.Type) == 0 {
		return "-"
	}
	if s.Format != "" {
		return fmt.Sprintf("`%s` (%s)", s.Type[0], s.Format)
	}
	return fmt.Sprintf("`%s`", s.Type[0])
}

func mutabilityOf(s spec.Schema) string {
	var tags []string
	if raw, ok := s.Extensions.GetStringSlice("x-ms-mutability"); ok {
		tags = append(tags, raw...)
	}
	if s.ReadOnly {
		tags = append(tags, "readOnly")
	}
	if secret, ok := s.Extensions.GetBool("x-ms-secret"); ok && secret {
		tags = append(tags, "secret")
	}
	if len(tags) == 0 {
		return "-"
	}
	return strings.Join(tags, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
