package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jmylchreest/themesmith/internal/compose"
	"github.com/jmylchreest/themesmith/internal/console"
	"github.com/jmylchreest/themesmith/internal/selection"
	"github.com/jmylchreest/themesmith/internal/theme"
)

func (t *Toolchain) meta() compose.Meta {
	us := t.cfg.UserStyle
	return compose.Meta{
		Name:        us.Name,
		Namespace:   us.Namespace,
		Version:     us.Version,
		Description: us.Description,
		Author:      us.Author,
	}
}

// Compose renders the userstyle for sel from the compiled CSS on disk and
// writes it to the configured output path, which is returned.
func (t *Toolchain) Compose(sel *selection.Selection) (string, error) {
	light, err := os.ReadFile(sel.Light.Path)
	if err != nil {
		return "", fmt.Errorf("read light theme: %w", err)
	}
	dark, err := os.ReadFile(sel.Dark.Path)
	if err != nil {
		return "", fmt.Errorf("read dark theme: %w", err)
	}

	out, err := compose.Compose(compose.Document{
		Meta:           t.meta(),
		Domain:         t.cfg.UserStyle.Domain,
		RewriteClasses: t.cfg.UserStyle.RewriteClasses,
		Light:          compose.Block{Theme: sel.Light.Name, CSS: string(light)},
		Dark:           compose.Block{Theme: sel.Dark.Name, CSS: string(dark)},
	})
	if err != nil {
		return "", err
	}

	path := t.cfg.OutputPath()
	if err := writeFile(path, []byte(out)); err != nil {
		return "", fmt.Errorf("write userstyle: %w", err)
	}

	t.logger.Debug("userstyle written", "path", path, "bytes", len(out))
	t.out.Infof(console.IconStyle, "Updated stylus with %s !", console.List(sel.Names()))
	return path, nil
}

// Recompose reloads the saved selection and composes it again.
func (t *Toolchain) Recompose(_ context.Context) (string, error) {
	sel, err := t.savedSelection()
	if err != nil {
		return "", err
	}
	return t.Compose(sel)
}

// savedSelection loads the selection and resolves it against the compiled set.
func (t *Toolchain) savedSelection() (*selection.Selection, error) {
	sel, err := t.store.Load()
	if err != nil {
		if errors.Is(err, selection.ErrNotFound) {
			return nil, fmt.Errorf("%w (%s)", ErrMissingSelection, t.store.Path())
		}
		return nil, err
	}

	compiled, err := theme.DiscoverCompiled(t.layout.CompiledDir)
	if err != nil {
		return nil, err
	}
	if err := sel.Resolve(compiled); err != nil {
		return nil, err
	}
	return sel, nil
}

// ComposeAll writes every compiled theme, without class rewriting, into the output file.
//
// Deprecated: use Compose with a selection.
func (t *Toolchain) ComposeAll(_ context.Context) (string, error) {
	compiled, err := theme.DiscoverCompiled(t.layout.CompiledDir)
	if err != nil {
		return "", err
	}
	if len(compiled) == 0 {
		return "", ErrNoCompiledThemes
	}

	names := theme.SortedNames(compiled)
	blocks := make([]compose.Block, 0, len(names))
	for _, name := range names {
		css, err := os.ReadFile(compiled[name])
		if err != nil {
			return "", err
		}
		blocks = append(blocks, compose.Block{Theme: name, CSS: string(css)})
	}

	out, err := compose.ComposeAll(t.meta(), t.cfg.UserStyle.Domain, blocks)
	if err != nil {
		return "", err
	}

	path := t.cfg.OutputPath()
	if err := writeFile(path, []byte(out)); err != nil {
		return "", fmt.Errorf("write userstyle: %w", err)
	}
	t.out.Infof(console.IconStyle, "Updated stylus with %s !", console.List(names))
	return path, nil
}
