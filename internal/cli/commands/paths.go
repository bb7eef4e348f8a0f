package commands

import "path/filepath"

// absPath makes a flag path absolute so it is not resolved against the
// project directory
func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
