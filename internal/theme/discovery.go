package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrMissingRoot is returned when a directory the tool depends on does not exist.
var ErrMissingRoot = errors.New("directory not found")

// Discover returns the names of the immediate sub-directories of root.
// Each sub-directory is one theme. An empty root yields an empty list.
func Discover(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, missingRoot(root, err)
		}
		return nil, fmt.Errorf("read themes directory %s: %w", root, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// DiscoverCompiled returns compiled theme names mapped to their CSS paths.
// Source maps (<name>.css.map) are not themes and are skipped.
func DiscoverCompiled(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, missingRoot(dir, err)
		}
		return nil, fmt.Errorf("read compiled directory %s: %w", dir, err)
	}

	themes := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) != ".css" {
			continue
		}
		themes[strings.TrimSuffix(name, ".css")] = filepath.Join(dir, name)
	}
	return themes, nil
}

// SortedNames returns the keys of a compiled theme map in order.
func SortedNames(compiled map[string]string) []string {
	names := make([]string, 0, len(compiled))
	for name := range compiled {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SplitByVariant groups theme names by their inferred variant.
// Names without a light-/dark- prefix end up in other.
func SplitByVariant(names []string) (light, dark, other []string) {
	for _, name := range names {
		switch VariantOf(name) {
		case VariantLight:
			light = append(light, name)
		case VariantDark:
			dark = append(dark, name)
		default:
			other = append(other, name)
		}
	}
	return light, dark, other
}

// Candidates returns the names offered when choosing a theme for v.
// Prefixed themes are preferred; if none match, every name is offered.
func Candidates(names []string, v Variant) []string {
	var matched []string
	for _, name := range names {
		if VariantOf(name) == v {
			matched = append(matched, name)
		}
	}
	if len(matched) == 0 {
		return append([]string(nil), names...)
	}
	return matched
}

func missingRoot(dir string, err error) error {
	return fmt.Errorf("%w: %s (%w)", ErrMissingRoot, dir, err)
}
