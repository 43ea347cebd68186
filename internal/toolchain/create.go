package toolchain

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmylchreest/themesmith/internal/console"
	"github.com/jmylchreest/themesmith/internal/theme"
)

// Create scaffolds a light/dark pair named after name, asking for the name
// when it is empty.
func (t *Toolchain) Create(ctx context.Context, name string) (*theme.ScaffoldResult, error) {
	root := t.layout.ThemesDir

	if strings.TrimSpace(name) == "" {
		var err error
		name, err = t.ask().Input(ctx, "Theme name", func(s string) error {
			base := theme.ToKebabCase(s)
			if base == "" {
				return fmt.Errorf("%w: name is required", theme.ErrInvalidName)
			}
			if existing := theme.Existing(root, base); len(existing) > 0 {
				return fmt.Errorf("%w: %s", theme.ErrThemeExists, strings.Join(existing, ", "))
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	res, err := theme.Scaffold(root, name, t.cfg.Scaffold.Template, t.layout.EntryFile)
	if err != nil {
		return nil, err
	}

	if res.FromStarter {
		t.out.Warnf("Template %q not found, using the built-in starter", t.cfg.Scaffold.Template)
	}
	for _, v := range theme.Variants {
		t.out.Infof(console.IconNew, "Created %s", t.relative(res.Dirs[v]))
	}
	t.out.Successf("Theme %q ready. Run `themesmith compile` to build it.", res.Name)
	return res, nil
}
