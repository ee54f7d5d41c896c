package runtimeconfig

import "path/filepath"

// matchPattern compiles the glob against a probe name so malformed patterns
// surface during validation instead of silently matching nothing.
func matchPattern(pattern string) (bool, error) {
	return filepath.Match(pattern, "2006-01-02-probe.md")
}
