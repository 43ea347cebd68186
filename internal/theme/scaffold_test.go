package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToKebabCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Crimson", "crimson"},
		{"Ocean Blue", "ocean-blue"},
		{"  --Night__Owl!! ", "night-owl"},
		{"v2 Theme", "v2-theme"},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToKebabCase(tt.input))
		})
	}
}

func TestRenameThemeClass(t *testing.T) {
	css := `.theme--light--original { color: red; }
.theme--dark--original .x { color: blue; }
.theme--light--originality { color: green; }
.other--original { margin: 0; }`

	out := RenameThemeClass(css, "original", "ocean")

	assert.Contains(t, out, ".theme--light--ocean { color: red; }")
	assert.Contains(t, out, ".theme--dark--ocean .x")
	assert.Contains(t, out, ".theme--light--originality", "longer names must not be renamed")
	assert.Contains(t, out, ".other--original")
}

func TestScaffold_FromTemplate(t *testing.T) {
	root := t.TempDir()
	mkTheme(t, root, "light-original", map[string]string{
		"_main.scss":         ".theme--light--original { color: $text; }",
		"_variables.scss":    "$text: #000;",
		"parts/_layout.scss": ".theme--light--original .nav {}",
	})
	mkTheme(t, root, "dark-original", map[string]string{
		"_main.scss":      ".theme--dark--original { color: $text; }",
		"_variables.scss": "$text: #fff;",
	})

	res, err := Scaffold(root, "Ocean Blue", "original", "_main.scss")
	require.NoError(t, err)
	assert.Equal(t, "ocean-blue", res.Name)
	assert.False(t, res.FromStarter)
	assert.Equal(t, filepath.Join(root, "light-ocean-blue"), res.Dirs[VariantLight])

	lightMain, err := os.ReadFile(filepath.Join(root, "light-ocean-blue", "_main.scss"))
	require.NoError(t, err)
	assert.Equal(t, ".theme--light--ocean-blue { color: $text; }", string(lightMain))

	darkMain, err := os.ReadFile(filepath.Join(root, "dark-ocean-blue", "_main.scss"))
	require.NoError(t, err)
	assert.Equal(t, ".theme--dark--ocean-blue { color: $text; }", string(darkMain))

	// Nested files are copied verbatim, only the entry file is renamed
	nested, err := os.ReadFile(filepath.Join(root, "light-ocean-blue", "parts", "_layout.scss"))
	require.NoError(t, err)
	assert.Equal(t, ".theme--light--original .nav {}", string(nested))

	// The template is untouched
	orig, err := os.ReadFile(filepath.Join(root, "light-original", "_main.scss"))
	require.NoError(t, err)
	assert.Contains(t, string(orig), "--original")
}

func TestScaffold_FallsBackToStarter(t *testing.T) {
	root := filepath.Join(t.TempDir(), "themes")

	res, err := Scaffold(root, "Crimson", "original", "_main.scss")
	require.NoError(t, err)
	assert.True(t, res.FromStarter)

	for _, v := range Variants {
		main, err := os.ReadFile(filepath.Join(root, v.Prefix()+"crimson", "_main.scss"))
		require.NoError(t, err)
		assert.Contains(t, string(main), ".theme--"+string(v)+"--crimson")
		assert.NotContains(t, string(main), StarterName)

		_, err = os.Stat(filepath.Join(root, v.Prefix()+"crimson", "_variables.scss"))
		assert.NoError(t, err)
	}
}

func TestScaffold_RejectsExisting(t *testing.T) {
	root := t.TempDir()
	mkTheme(t, root, "dark-crimson", nil)

	_, err := Scaffold(root, "crimson", "original", "_main.scss")
	require.ErrorIs(t, err, ErrThemeExists)
	assert.Contains(t, err.Error(), "dark-crimson")

	_, statErr := os.Stat(filepath.Join(root, "light-crimson"))
	assert.True(t, os.IsNotExist(statErr), "nothing should be created on conflict")
}

func TestScaffold_RemovesPartialPairOnFailure(t *testing.T) {
	root := t.TempDir()
	mkTheme(t, root, "light-original", map[string]string{"_main.scss": ".theme--light--original {}"})
	mkTheme(t, root, "dark-original", map[string]string{"_main.scss": ".theme--dark--original {}"})
	// A dangling link makes the dark copy fail after the light copy succeeded.
	require.NoError(t, os.Symlink(filepath.Join(root, "missing.scss"), filepath.Join(root, "dark-original", "_link.scss")))

	_, err := Scaffold(root, "crimson", "original", "_main.scss")
	require.Error(t, err)

	for _, name := range []string{"light-crimson", "dark-crimson"} {
		_, statErr := os.Stat(filepath.Join(root, name))
		assert.True(t, os.IsNotExist(statErr), "%s should be removed", name)
	}

	// The name is free again once the template is fixed.
	require.NoError(t, os.Remove(filepath.Join(root, "dark-original", "_link.scss")))
	_, err = Scaffold(root, "crimson", "original", "_main.scss")
	assert.NoError(t, err)
}

func TestScaffold_RejectsEmptyName(t *testing.T) {
	_, err := Scaffold(t.TempDir(), " !! ", "original", "_main.scss")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestListStarterFiles(t *testing.T) {
	for _, v := range Variants {
		t.Run(string(v), func(t *testing.T) {
			files, err := ListStarterFiles(v)
			require.NoError(t, err)
			assert.Contains(t, files, "_main.scss")
			assert.Contains(t, files, "_variables.scss")
		})
	}
}

func TestStarter_BalancedBraces(t *testing.T) {
	for _, v := range Variants {
		t.Run(string(v), func(t *testing.T) {
			data, err := StarterFS.ReadFile("starter/" + string(v) + "/_main.scss")
			require.NoError(t, err)
			css := string(data)
			assert.Equal(t, strings.Count(css, "{"), strings.Count(css, "}"))
			assert.Contains(t, css, ".theme--"+string(v)+"--"+StarterName)
		})
	}
}
