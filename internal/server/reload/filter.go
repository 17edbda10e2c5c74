// Package reload watches the site directory and tells connected pages to refresh.
package reload

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// skippedDirs are never watched.
var skippedDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	".idea":        {},
	".vscode":      {},
}

// Filter decides which changed files trigger a reload.
type Filter struct {
	Include []string
	Exclude []string
}

// Match reports whether rel, a path relative to the watched root, should trigger a
// reload. Patterns are tried against the full path and the base name.
func (f Filter) Match(rel string) bool {
	normalized := filepath.ToSlash(rel)
	if len(f.Include) > 0 && !matchesAny(normalized, f.Include) {
		return false
	}
	return !matchesAny(normalized, f.Exclude)
}

func matchesAny(rel string, patterns []string) bool {
	base := path.Base(rel)
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if ok, _ := doublestar.Match(pattern, base); ok {
				return true
			}
		}
	}
	return false
}

func skipDir(name string) bool {
	_, ok := skippedDirs[name]
	return ok
}
