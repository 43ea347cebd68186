package watch

import (
	"path/filepath"
	"strings"
)

// Filter decides whether a changed path should trigger a rebuild.
type Filter func(path string) bool

// All accepts every path.
func All(string) bool { return true }

// ExtFilter accepts paths with one of the given extensions (".scss").
func ExtFilter(exts ...string) Filter {
	return func(path string) bool {
		ext := strings.ToLower(filepath.Ext(path))
		for _, e := range exts {
			if ext == strings.ToLower(e) {
				return true
			}
		}
		return false
	}
}

// PathsFilter accepts exactly the given files.
func PathsFilter(paths ...string) Filter {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[filepath.Clean(p)] = struct{}{}
	}
	return func(path string) bool {
		_, ok := set[filepath.Clean(path)]
		return ok
	}
}

// And accepts a path only when every filter does.
func And(filters ...Filter) Filter {
	return func(path string) bool {
		for _, f := range filters {
			if !f(path) {
				return false
			}
		}
		return true
	}
}
