package compiler

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/themesmith/internal/theme"
)

func TestFileURL(t *testing.T) {
	assert.Equal(t, "file:///home/me/themes/light-a/_main.scss", fileURL("/home/me/themes/light-a/_main.scss"))
	assert.Equal(t, "file:///tmp/with%20space/_main.scss", fileURL("/tmp/with space/_main.scss"))
}

func TestNewDartSass_Defaults(t *testing.T) {
	d := NewDartSass(DartSassOptions{})
	assert.Equal(t, "sass", d.opts.Binary)
	assert.NotNil(t, d.logger)
	// Closing a compiler that never started is a no-op
	assert.NoError(t, d.Close())
}

func TestDartSass_MissingEntryDoesNotStartProcess(t *testing.T) {
	d := NewDartSass(DartSassOptions{Binary: "/nonexistent/sass"})
	_, err := d.Compile(context.Background(), Request{EntryPath: filepath.Join(t.TempDir(), "_main.scss")})
	require.Error(t, err)
	assert.Nil(t, d.transpiler)
}

func TestDartSass_StartErrorNamesEmbeddedRequirement(t *testing.T) {
	entry := filepath.Join(t.TempDir(), "_main.scss")
	require.NoError(t, os.WriteFile(entry, []byte(".a{}"), 0644))

	d := NewDartSass(DartSassOptions{Binary: "/nonexistent/sass"})
	_, err := d.Compile(context.Background(), Request{EntryPath: entry})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--embedded")
	assert.Contains(t, err.Error(), "/nonexistent/sass")
}

func TestDartSass_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDartSass(DartSassOptions{}).Compile(ctx, Request{EntryPath: "x.scss"})
	assert.ErrorIs(t, err, context.Canceled)
}

// dartSass returns a compiler backed by the sass binary on PATH, skipping
// the test when none is installed or it lacks the embedded protocol.
func dartSass(t *testing.T, logger *slog.Logger) *DartSass {
	t.Helper()
	bin, err := exec.LookPath("sass")
	if err != nil {
		t.Skip("sass not found on PATH")
	}
	d := NewDartSass(DartSassOptions{
		Binary:              bin,
		SilenceDeprecations: []string{"import", "global-builtin"},
		Logger:              logger,
	})
	if _, err := d.start(); err != nil {
		t.Skipf("sass on PATH cannot run embedded: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestDartSass_CompilesThemesWithComponents(t *testing.T) {
	var logs bytes.Buffer
	d := dartSass(t, slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))

	l := newLayout(t)
	components := filepath.Join(filepath.Dir(l.ThemesDir), "components")
	require.NoError(t, os.MkdirAll(components, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(components, "_buttons.scss"),
		[]byte(".btn {\n  color: $accent;\n}\n"), 0644))

	writeEntry(t, l, "light-a", "@import \"variables\";\n.theme--light--a {\n  @import \"buttons\";\n}\n")
	require.NoError(t, os.WriteFile(filepath.Join(l.ThemesDir, "light-a", "_variables.scss"),
		[]byte("$accent: blue;\n"), 0644))
	writeEntry(t, l, "dark-bad", ".theme--dark--bad {\n  color: ;\n")

	b := NewBuilder(d, BuilderOptions{
		Layout:       l,
		IncludePaths: []string{components},
		SourceMap:    true,
	})
	batch := b.CompileAll(context.Background(), []string{"light-a", "dark-bad"})

	good := batch.Results[0]
	require.Equal(t, StatusCompiled, good.Status, "err: %v", good.Err)
	css, err := os.ReadFile(good.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(css), ".theme--light--a .btn {\n  color: blue;\n}")

	srcMap, err := os.ReadFile(good.OutputPath + ".map")
	require.NoError(t, err)
	assert.Contains(t, string(srcMap), `"version":3`)

	bad := batch.Results[1]
	assert.Equal(t, StatusFailed, bad.Status)
	var cerr *CompileError
	require.True(t, errors.As(bad.Err, &cerr))
	assert.Equal(t, "dark-bad", cerr.Theme)
	assert.Contains(t, bad.Err.Error(), "dark-bad")
	assert.NoFileExists(t, theme.CompiledPath(l.CompiledDir, "dark-bad"))

	require.NoError(t, d.Close())
	assert.NotContains(t, logs.String(), "sass deprecation")
}
