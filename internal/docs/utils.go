package docs

import "strings"

// containsPathTraversal checks if a path contains path traversal sequences
func containsPathTraversal(path string) bool {
	for _, part := range splitPath(path) {
		if part == ".." {
			return true
		}
	}
	return false
}

// validNamespace reports whether ns can be used as a single directory name
func validNamespace(ns string) bool {
	return ns != "" && ns != "." && !strings.Contains(ns, "..") && !strings.ContainsAny(ns, `/\`)
}

// splitPath splits a path into its components
func splitPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
}
