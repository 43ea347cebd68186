package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bep/godartsass/v2"
)

// DartSassOptions configures the dart-sass backed compiler.
type DartSassOptions struct {
	// Binary is a Dart Sass executable that supports --embedded, such as the
	// standalone release or sass-embedded. The JavaScript "sass" CLI from npm
	// does not. Defaults to "sass" on PATH.
	Binary string

	// SilenceDeprecations lists deprecation IDs that should not be reported.
	SilenceDeprecations []string

	Logger *slog.Logger
}

// DartSass compiles SCSS through a long-lived dart-sass embedded process.
// The process is started on first use and shared by concurrent compiles.
type DartSass struct {
	mu         sync.Mutex
	opts       DartSassOptions
	logger     *slog.Logger
	transpiler *godartsass.Transpiler
}

// NewDartSass creates a dart-sass compiler. No process is started until
// the first Compile.
func NewDartSass(opts DartSassOptions) *DartSass {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Binary == "" {
		opts.Binary = "sass"
	}
	return &DartSass{opts: opts, logger: logger}
}

func (d *DartSass) start() (*godartsass.Transpiler, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.transpiler != nil && !d.transpiler.IsShutDown() {
		return d.transpiler, nil
	}

	t, err := godartsass.Start(godartsass.Options{
		DartSassEmbeddedFilename: d.opts.Binary,
		LogEventHandler:          d.logEvent,
	})
	if err != nil {
		return nil, fmt.Errorf("start dart-sass (%s, needs a Dart Sass build with --embedded support): %w", d.opts.Binary, err)
	}
	d.transpiler = t
	d.logger.Debug("dart-sass started", "binary", d.opts.Binary)
	return t, nil
}

func (d *DartSass) logEvent(e godartsass.LogEvent) {
	switch e.Type {
	case godartsass.LogEventTypeDebug:
		d.logger.Debug("sass", "message", e.Message)
	case godartsass.LogEventTypeDeprecated:
		d.logger.Debug("sass deprecation", "message", e.Message)
	default:
		d.logger.Warn("sass", "message", e.Message)
	}
}

// Compile implements Compiler.
func (d *DartSass) Compile(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	abs, err := filepath.Abs(req.EntryPath)
	if err != nil {
		return Result{}, err
	}
	src, err := os.ReadFile(abs)
	if err != nil {
		return Result{}, err
	}

	t, err := d.start()
	if err != nil {
		return Result{}, err
	}

	// Relative imports resolve from the entry's folder.
	includes := append([]string{filepath.Dir(abs)}, req.IncludePaths...)

	res, err := t.Execute(godartsass.Args{
		Source:              string(src),
		URL:                 fileURL(abs),
		SourceSyntax:        godartsass.SourceSyntaxSCSS,
		OutputStyle:         godartsass.OutputStyleExpanded,
		IncludePaths:        includes,
		EnableSourceMap:     req.SourceMap,
		SilenceDeprecations: d.opts.SilenceDeprecations,
	})
	if err != nil {
		return Result{}, err
	}

	return Result{CSS: res.CSS, SourceMap: res.SourceMap}, nil
}

// Close stops the dart-sass process if it was started.
func (d *DartSass) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.transpiler == nil {
		return nil
	}
	err := d.transpiler.Close()
	d.transpiler = nil
	return err
}

func fileURL(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		// Windows drive paths: file:///C:/...
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}
