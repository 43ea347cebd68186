package toolchain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmylchreest/themesmith/internal/compiler"
	"github.com/jmylchreest/themesmith/internal/console"
	"github.com/jmylchreest/themesmith/internal/prompt"
	"github.com/jmylchreest/themesmith/internal/selection"
	"github.com/jmylchreest/themesmith/internal/theme"
)

// CompileAll compiles every theme folder. A missing themes directory is
// fatal; per-theme problems are reported and counted in the batch.
func (t *Toolchain) CompileAll(ctx context.Context) (compiler.Batch, error) {
	names, err := theme.Discover(t.layout.ThemesDir)
	if err != nil {
		return compiler.Batch{}, err
	}

	t.out.Blank()
	t.out.Headerf(console.IconBuild, "Found %d theme(s): %s", len(names), strings.Join(names, ", "))
	t.out.Blank()

	batch, err := t.compile(ctx, names)
	if err != nil {
		return batch, err
	}

	t.out.Blank()
	t.out.Infof(console.IconDone, "Build complete! %s", batch.Summary())
	t.out.Blank()
	return batch, nil
}

// CompileThemes compiles the named themes and reports each outcome.
func (t *Toolchain) CompileThemes(ctx context.Context, names []string) (compiler.Batch, error) {
	return t.compile(ctx, names)
}

func (t *Toolchain) compile(ctx context.Context, names []string) (compiler.Batch, error) {
	var batch compiler.Batch
	err := prompt.Spin(ctx, fmt.Sprintf("Compiling %d theme(s)...", len(names)), t.spinner, func(ctx context.Context) error {
		batch = t.builder.CompileAll(ctx, names)
		return nil
	})
	if err != nil {
		return batch, err
	}

	for _, r := range batch.Results {
		t.report(r)
	}
	if err := ctx.Err(); err != nil {
		return batch, err
	}
	return batch, nil
}

func (t *Toolchain) report(r compiler.ThemeResult) {
	switch r.Status {
	case compiler.StatusCompiled:
		t.out.Successf("Compiled: %s -> %s (%s)", r.Name, r.OutputPath, console.Size(r.Bytes))
	case compiler.StatusSkipped:
		if errors.Is(r.Err, compiler.ErrMissingEntry) {
			t.out.Warnf("Skipping %s: %s not found", r.Name, t.layout.EntryFile)
		} else {
			t.out.Warnf("Skipping %s: %v", r.Name, r.Err)
		}
	case compiler.StatusFailed:
		var cerr *compiler.CompileError
		if errors.As(r.Err, &cerr) {
			t.out.Failf("Error compiling %s: %s", r.Name, cerr.Message)
		} else {
			t.out.Failf("Error compiling %s: %v", r.Name, r.Err)
		}
	}
}

// BuildOptions configures Build.
type BuildOptions struct {
	Light string
	Dark  string
}

// Build is the default flow: compile everything, choose the pair (offering
// to reuse the previous one) and write the composed userstyle.
func (t *Toolchain) Build(ctx context.Context, opts BuildOptions) (*selection.Selection, error) {
	if _, err := t.CompileAll(ctx); err != nil {
		return nil, err
	}

	sel, err := t.Select(ctx, SelectOptions{Light: opts.Light, Dark: opts.Dark, OfferReuse: true})
	if err != nil {
		return nil, err
	}

	if _, err := t.Compose(sel); err != nil {
		return nil, err
	}
	return sel, nil
}
