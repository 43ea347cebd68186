package toolchain

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmylchreest/themesmith/internal/console"
	"github.com/jmylchreest/themesmith/internal/selection"
	"github.com/jmylchreest/themesmith/internal/theme"
)

// SelectOptions configures Select.
type SelectOptions struct {
	// Light and Dark skip the corresponding prompt when set.
	Light string
	Dark  string

	// OfferReuse asks whether to keep a still-valid previous selection.
	OfferReuse bool
}

// Select chooses the light/dark pair from the compiled themes and saves it.
func (t *Toolchain) Select(ctx context.Context, opts SelectOptions) (*selection.Selection, error) {
	compiled, err := theme.DiscoverCompiled(t.layout.CompiledDir)
	if err != nil {
		return nil, err
	}
	if len(compiled) == 0 {
		return nil, ErrNoCompiledThemes
	}

	prev := t.previousSelection(compiled)

	if prev != nil && opts.OfferReuse && opts.Light == "" && opts.Dark == "" {
		question := fmt.Sprintf("Reuse previous selection %s / %s (chosen %s)?",
			prev.Light.Name, prev.Dark.Name, console.Age(prev.SelectedAt))
		reuse, err := t.ask().Confirm(ctx, question, true)
		if err != nil {
			return nil, err
		}
		if reuse {
			t.out.Infof(console.IconStyle, "Using %s", console.List(prev.Names()))
			return prev, nil
		}
	}

	names := theme.SortedNames(compiled)

	light, err := t.pick(ctx, opts.Light, names, theme.VariantLight, prev)
	if err != nil {
		return nil, err
	}
	dark, err := t.pick(ctx, opts.Dark, names, theme.VariantDark, prev)
	if err != nil {
		return nil, err
	}

	sel, err := selection.New(light, dark, compiled)
	if err != nil {
		return nil, err
	}
	if err := t.store.Save(sel); err != nil {
		return nil, fmt.Errorf("save selection: %w", err)
	}

	t.logger.Debug("selection saved", "path", t.store.Path(), "light", light, "dark", dark)
	t.out.Infof(console.IconStyle, "Selected %s", console.List(sel.Names()))
	return sel, nil
}

// previousSelection loads the saved pair if it still matches the compiled set.
func (t *Toolchain) previousSelection(compiled map[string]string) *selection.Selection {
	prev, err := t.store.Load()
	if err != nil {
		if !errors.Is(err, selection.ErrNotFound) {
			t.out.Warnf("Ignoring saved selection: %v", err)
		}
		return nil
	}
	if err := prev.Resolve(compiled); err != nil {
		t.out.Warnf("Previous selection is no longer available: %v", err)
		return nil
	}
	return prev
}

func (t *Toolchain) pick(ctx context.Context, given string, names []string, v theme.Variant, prev *selection.Selection) (string, error) {
	if given != "" {
		return given, nil
	}

	def := ""
	if prev != nil {
		def = prev.Ref(v).Name
	}
	title := fmt.Sprintf("Choose the %s theme", v)
	return t.ask().Choose(ctx, title, theme.Candidates(names, v), def)
}
