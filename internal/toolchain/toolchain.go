// Package toolchain implements the user-facing workflows: building themes,
// choosing the light/dark pair, composing the userstyle, watching for
// changes and scaffolding new themes.
package toolchain

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jmylchreest/themesmith/internal/compiler"
	"github.com/jmylchreest/themesmith/internal/config"
	"github.com/jmylchreest/themesmith/internal/console"
	"github.com/jmylchreest/themesmith/internal/prompt"
	"github.com/jmylchreest/themesmith/internal/selection"
	"github.com/jmylchreest/themesmith/internal/theme"
)

var (
	// ErrNoCompiledThemes is returned when selection finds nothing to choose from.
	ErrNoCompiledThemes = errors.New("no compiled themes found; run `themesmith compile` first")

	// ErrMissingSelection is returned by flows that need a saved selection.
	ErrMissingSelection = errors.New("no saved theme selection; run `themesmith select` first")
)

// Options configures a Toolchain.
type Options struct {
	Config   *config.Config
	Compiler compiler.Compiler
	Prompter prompt.Prompter
	Printer  *console.Printer
	Logger   *slog.Logger

	// Spinner shows a spinner while themes compile.
	Spinner bool
}

// Toolchain ties the components together for one project directory.
type Toolchain struct {
	cfg      *config.Config
	layout   theme.Layout
	builder  *compiler.Builder
	store    *selection.Store
	prompter prompt.Prompter
	out      *console.Printer
	logger   *slog.Logger
	spinner  bool
}

// New creates a toolchain from a validated configuration.
func New(opts Options) (*Toolchain, error) {
	if opts.Config == nil {
		return nil, errors.New("toolchain: config is required")
	}
	if opts.Compiler == nil {
		return nil, errors.New("toolchain: compiler is required")
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	out := opts.Printer
	if out == nil {
		out = console.Discard()
	}

	cfg := opts.Config
	layout := theme.Layout{
		ThemesDir:   cfg.ThemesDir(),
		CompiledDir: cfg.CompiledDir(),
		EntryFile:   cfg.Compiler.Entry,
	}

	var includes []string
	if dir := cfg.ComponentsDir(); dir != "" && isDir(dir) {
		includes = append(includes, dir)
	}

	builder := compiler.NewBuilder(opts.Compiler, compiler.BuilderOptions{
		Layout:       layout,
		IncludePaths: includes,
		SourceMap:    cfg.Compiler.SourceMap,
		Jobs:         cfg.Compiler.Jobs,
		Logger:       logger,
	})

	return &Toolchain{
		cfg:      cfg,
		layout:   layout,
		builder:  builder,
		store:    selection.NewStore(cfg.SelectionPath()),
		prompter: opts.Prompter,
		out:      out,
		logger:   logger,
		spinner:  opts.Spinner,
	}, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// asMissingRoot converts a not-exist error for dir into ErrMissingRoot.
func asMissingRoot(dir string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s (%w)", theme.ErrMissingRoot, dir, err)
	}
	return err
}

// writeFile replaces path by writing a sibling temp file and renaming it,
// so a userstyle reloader never reads a half-written file.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".themesmith-*.tmp")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Chmod(name, 0644); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}

// ask returns the configured prompter. Without one every prompt aborts,
// which is what non-interactive callers that pass all answers want.
func (t *Toolchain) ask() prompt.Prompter {
	if t.prompter == nil {
		return prompt.NewScripted()
	}
	return t.prompter
}
