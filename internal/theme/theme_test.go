package theme

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkTheme(t *testing.T, root, name string, files map[string]string) {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func TestVariantOf(t *testing.T) {
	tests := []struct {
		name     string
		expected Variant
	}{
		{"light-ocean", VariantLight},
		{"dark-ocean", VariantDark},
		{"dark-", VariantDark},
		{"ocean", VariantUnknown},
		{"lightish", VariantUnknown},
		{"", VariantUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, VariantOf(tt.name))
		})
	}
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "ocean", BaseName("light-ocean"))
	assert.Equal(t, "ocean-blue", BaseName("dark-ocean-blue"))
	assert.Equal(t, "custom", BaseName("custom"))
}

func TestVariant_String(t *testing.T) {
	assert.Equal(t, "light", VariantLight.String())
	assert.Equal(t, "unknown", VariantUnknown.String())
}

func TestLayout_Theme(t *testing.T) {
	l := Layout{ThemesDir: "/p/themes", CompiledDir: "/p/compiled", EntryFile: "_main.scss"}

	th := l.Theme("dark-ocean")
	assert.Equal(t, "dark-ocean", th.Name)
	assert.Equal(t, VariantDark, th.Variant)
	assert.Equal(t, filepath.FromSlash("/p/themes/dark-ocean"), th.SourceDir)
	assert.Equal(t, filepath.FromSlash("/p/themes/dark-ocean/_main.scss"), th.EntryPath)
	assert.Equal(t, filepath.FromSlash("/p/compiled/dark-ocean.css"), th.OutputPath)
}

func TestLayout_ThemeOf(t *testing.T) {
	l := Layout{ThemesDir: filepath.FromSlash("/p/themes")}

	tests := []struct {
		path   string
		name   string
		within bool
	}{
		{"/p/themes/light-ocean/_main.scss", "light-ocean", true},
		{"/p/themes/light-ocean/parts/_nav.scss", "light-ocean", true},
		{"/p/themes/stray.scss", "", false},
		{"/p/themes", "", false},
		{"/p/components/_button.scss", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			name, ok := l.ThemeOf(filepath.FromSlash(tt.path))
			assert.Equal(t, tt.within, ok)
			assert.Equal(t, tt.name, name)
		})
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	mkTheme(t, root, "light-ocean", map[string]string{"_main.scss": ""})
	mkTheme(t, root, "dark-ocean", map[string]string{"_main.scss": ""})
	mkTheme(t, root, "dark-ocean/nested", nil)
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte("x"), 0644))

	names, err := Discover(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"dark-ocean", "light-ocean"}, names)
}

func TestDiscover_EmptyRoot(t *testing.T) {
	names, err := Discover(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestDiscover_MissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingRoot))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDiscoverCompiled(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"light-ocean.css", "light-ocean.css.map", "dark-ocean.css", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "old.css"), 0755))

	compiled, err := DiscoverCompiled(dir)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"light-ocean": filepath.Join(dir, "light-ocean.css"),
		"dark-ocean":  filepath.Join(dir, "dark-ocean.css"),
	}, compiled)
	assert.Equal(t, []string{"dark-ocean", "light-ocean"}, SortedNames(compiled))
}

func TestDiscoverCompiled_MissingDir(t *testing.T) {
	_, err := DiscoverCompiled(filepath.Join(t.TempDir(), "compiled"))
	assert.ErrorIs(t, err, ErrMissingRoot)
}

func TestSplitByVariant(t *testing.T) {
	light, dark, other := SplitByVariant([]string{"dark-a", "light-b", "misc", "light-c"})
	assert.Equal(t, []string{"light-b", "light-c"}, light)
	assert.Equal(t, []string{"dark-a"}, dark)
	assert.Equal(t, []string{"misc"}, other)
}

func TestCandidates(t *testing.T) {
	names := []string{"dark-a", "light-b", "misc"}
	assert.Equal(t, []string{"light-b"}, Candidates(names, VariantLight))
	assert.Equal(t, []string{"dark-a"}, Candidates(names, VariantDark))

	// Without prefixed themes every name is offered
	assert.Equal(t, []string{"misc", "other"}, Candidates([]string{"misc", "other"}, VariantDark))
}
