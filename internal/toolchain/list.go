package toolchain

import (
	"context"
	"errors"
	"os"
	"sort"

	"github.com/jmylchreest/themesmith/internal/selection"
	"github.com/jmylchreest/themesmith/internal/theme"
)

// Entry describes one theme for listings.
type Entry struct {
	Name     string
	Variant  theme.Variant
	HasEntry bool  // Source folder with an entry file
	Compiled bool  // <compiled>/<name>.css exists
	Bytes    int64 // Size of the compiled CSS
	Selected bool  // Part of the saved selection
}

// List returns every known theme, from source folders and compiled
// outputs, sorted by name. A missing compiled directory is not an error.
func (t *Toolchain) List(_ context.Context) ([]Entry, error) {
	sources, err := theme.Discover(t.layout.ThemesDir)
	if err != nil {
		return nil, err
	}

	compiled, err := theme.DiscoverCompiled(t.layout.CompiledDir)
	if err != nil {
		if !errors.Is(err, theme.ErrMissingRoot) {
			return nil, err
		}
		compiled = map[string]string{}
	}

	var sel *selection.Selection
	if s, err := t.store.Load(); err == nil {
		sel = s
	}

	byName := make(map[string]*Entry)
	get := func(name string) *Entry {
		e, ok := byName[name]
		if !ok {
			e = &Entry{Name: name, Variant: theme.VariantOf(name)}
			e.Selected = sel != nil && sel.Includes(name)
			byName[name] = e
		}
		return e
	}

	for _, name := range sources {
		e := get(name)
		if _, err := os.Stat(t.layout.Theme(name).EntryPath); err == nil {
			e.HasEntry = true
		}
	}
	for name, path := range compiled {
		e := get(name)
		e.Compiled = true
		if info, err := os.Stat(path); err == nil {
			e.Bytes = info.Size()
		}
	}

	entries := make([]Entry, 0, len(byName))
	for _, e := range byName {
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}
