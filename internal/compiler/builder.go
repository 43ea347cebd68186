package compiler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/themesmith/internal/theme"
)

// Status is the outcome of compiling one theme.
type Status int

const (
	StatusCompiled Status = iota
	StatusSkipped
	StatusFailed
)

// String returns a human-readable status.
func (s Status) String() string {
	switch s {
	case StatusCompiled:
		return "compiled"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// ThemeResult is the outcome for one theme of a batch.
type ThemeResult struct {
	Name       string
	Status     Status
	OutputPath string        // Written CSS file, set when compiled
	Bytes      int           // Size of the written CSS
	Duration   time.Duration // Time spent in the compiler
	Err        error         // ErrMissingEntry or *CompileError when not compiled
}

// Batch collects results in the order themes were requested.
type Batch struct {
	Results []ThemeResult
}

// Count returns how many results have status s.
func (b Batch) Count(s Status) int {
	n := 0
	for _, r := range b.Results {
		if r.Status == s {
			n++
		}
	}
	return n
}

// Names returns the theme names with status s.
func (b Batch) Names(s Status) []string {
	var names []string
	for _, r := range b.Results {
		if r.Status == s {
			names = append(names, r.Name)
		}
	}
	return names
}

// Compiled returns the number of themes written.
func (b Batch) Compiled() int { return b.Count(StatusCompiled) }

// Failed returns the number of themes not written, skipped ones included.
func (b Batch) Failed() int { return len(b.Results) - b.Compiled() }

// Summary renders the end-of-batch tally.
func (b Batch) Summary() string {
	if b.Failed() == 0 {
		return fmt.Sprintf("%d compiled", b.Compiled())
	}
	return fmt.Sprintf("%d compiled • %d failed", b.Compiled(), b.Failed())
}

// BuilderOptions configures a Builder.
type BuilderOptions struct {
	Layout       theme.Layout
	IncludePaths []string // Shared load paths, e.g. the components folder
	SourceMap    bool
	Jobs         int // Parallel compiles; 0 means runtime.NumCPU()
	Logger       *slog.Logger
}

// Builder compiles theme folders into the compiled directory.
type Builder struct {
	compiler     Compiler
	layout       theme.Layout
	includePaths []string
	sourceMap    bool
	jobs         int
	logger       *slog.Logger
}

// NewBuilder creates a Builder around c.
func NewBuilder(c Compiler, opts BuilderOptions) *Builder {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	return &Builder{
		compiler:     c,
		layout:       opts.Layout,
		includePaths: opts.IncludePaths,
		sourceMap:    opts.SourceMap,
		jobs:         jobs,
		logger:       logger,
	}
}

// CompileTheme compiles a single theme. It never returns an error: the
// outcome, including skips and compiler failures, is in the result.
func (b *Builder) CompileTheme(ctx context.Context, name string) ThemeResult {
	th := b.layout.Theme(name)
	result := ThemeResult{Name: name}

	if _, err := os.Stat(th.EntryPath); err != nil {
		result.Status = StatusSkipped
		if errors.Is(err, os.ErrNotExist) {
			result.Err = fmt.Errorf("%s: %w", name, ErrMissingEntry)
		} else {
			result.Err = fmt.Errorf("%s: %w", name, err)
		}
		b.logger.Debug("skipping theme", "theme", name, "entry", th.EntryPath, "error", err)
		return result
	}

	start := time.Now()
	out, err := b.compiler.Compile(ctx, Request{
		EntryPath:    th.EntryPath,
		IncludePaths: b.includePaths,
		SourceMap:    b.sourceMap,
	})
	result.Duration = time.Since(start)
	if err != nil {
		result.Status = StatusFailed
		result.Err = &CompileError{Theme: name, Message: err.Error(), Err: err}
		b.logger.Debug("compile failed", "theme", name, "error", err)
		return result
	}

	if err := b.write(th, out); err != nil {
		result.Status = StatusFailed
		result.Err = &CompileError{Theme: name, Message: err.Error(), Err: err}
		return result
	}

	result.Status = StatusCompiled
	result.OutputPath = th.OutputPath
	result.Bytes = len(out.CSS)
	b.logger.Debug("compiled theme", "theme", name, "output", th.OutputPath, "duration", result.Duration)
	return result
}

func (b *Builder) write(th theme.Theme, out Result) error {
	if err := os.MkdirAll(b.layout.CompiledDir, 0755); err != nil {
		return fmt.Errorf("create compiled directory: %w", err)
	}
	if err := os.WriteFile(th.OutputPath, []byte(out.CSS), 0644); err != nil {
		return fmt.Errorf("write %s: %w", th.OutputPath, err)
	}

	mapPath := th.OutputPath + ".map"
	if out.SourceMap == "" {
		// A map left from an earlier build no longer matches the CSS.
		if err := os.Remove(mapPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove stale %s: %w", mapPath, err)
		}
		return nil
	}
	if err := os.WriteFile(mapPath, []byte(out.SourceMap), 0644); err != nil {
		return fmt.Errorf("write %s: %w", mapPath, err)
	}
	return nil
}

// CompileAll compiles every named theme. Per-theme failures are recorded
// and never stop the remaining themes; only context cancellation ends the
// batch early, leaving unstarted themes marked failed.
func (b *Builder) CompileAll(ctx context.Context, names []string) Batch {
	results := make([]ThemeResult, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.jobs)

	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = ThemeResult{
					Name:   name,
					Status: StatusFailed,
					Err:    &CompileError{Theme: name, Message: err.Error(), Err: err},
				}
				return nil
			}
			results[i] = b.CompileTheme(gctx, name)
			return nil
		})
	}
	_ = g.Wait()

	return Batch{Results: results}
}
