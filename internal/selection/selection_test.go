package selection

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/themesmith/internal/theme"
)

func compiledSet(dir string) map[string]string {
	return map[string]string{
		"light-ocean": filepath.Join(dir, "light-ocean.css"),
		"dark-ocean":  filepath.Join(dir, "dark-ocean.css"),
		"dark-ember":  filepath.Join(dir, "dark-ember.css"),
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	compiled := compiledSet(dir)

	sel, err := New("light-ocean", "dark-ember", compiled)
	require.NoError(t, err)

	store := NewStore(filepath.Join(dir, "state", ".theme-selection.yaml"))
	require.NoError(t, store.Save(sel))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, sel.Light, loaded.Light)
	assert.Equal(t, sel.Dark, loaded.Dark)
	assert.True(t, sel.SelectedAt.Equal(loaded.SelectedAt))
}

func TestStore_SaveOverwrites(t *testing.T) {
	dir := t.TempDir()
	compiled := compiledSet(dir)
	store := NewStore(filepath.Join(dir, "sel.yaml"))

	first, err := New("light-ocean", "dark-ocean", compiled)
	require.NoError(t, err)
	require.NoError(t, store.Save(first))

	second, err := New("light-ocean", "dark-ember", compiled)
	require.NoError(t, err)
	require.NoError(t, store.Save(second))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "dark-ember", loaded.Dark.Name)

	// No temp files are left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_FormatIsKeyedByMode(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "sel.yaml"))
	sel := &Selection{
		Light: Ref{Name: "light-ocean", Path: "compiled/light-ocean.css"},
		Dark:  Ref{Name: "dark-ocean", Path: "compiled/dark-ocean.css"},
	}
	require.NoError(t, store.Save(sel))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, `light:
    name: light-ocean
    path: compiled/light-ocean.css
dark:
    name: dark-ocean
    path: compiled/dark-ocean.css
`, string(data))
}

func TestStore_LoadNotFound(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_LoadEmptyRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0644))

	_, err := NewStore(path).Load()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_LoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("light: [unclosed\n"), 0644))

	_, err := NewStore(path).Load()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestStore_SaveNil(t *testing.T) {
	assert.Error(t, NewStore(filepath.Join(t.TempDir(), "sel.yaml")).Save(nil))
}

func TestNew_RejectsUnknownTheme(t *testing.T) {
	compiled := compiledSet(t.TempDir())

	_, err := New("light-missing", "dark-ocean", compiled)
	require.ErrorIs(t, err, ErrUnknownTheme)
	assert.Contains(t, err.Error(), "light-missing")

	_, err = New("light-ocean", "", compiled)
	assert.ErrorIs(t, err, ErrUnknownTheme)
}

func TestNew_StampsSelectionTime(t *testing.T) {
	sel, err := New("light-ocean", "dark-ocean", compiledSet(t.TempDir()))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), sel.SelectedAt, 2*time.Second)
}

func TestSelection_Accessors(t *testing.T) {
	sel := &Selection{
		Light: Ref{Name: "light-ocean"},
		Dark:  Ref{Name: "dark-ember"},
	}
	assert.Equal(t, []string{"light-ocean", "dark-ember"}, sel.Names())
	assert.Equal(t, "dark-ember", sel.Ref(theme.VariantDark).Name)
	assert.Equal(t, "light-ocean", sel.Ref(theme.VariantLight).Name)
	assert.True(t, sel.Includes("dark-ember"))
	assert.False(t, sel.Includes("dark-ocean"))
}

func TestSelection_Resolve(t *testing.T) {
	sel := &Selection{
		Light: Ref{Name: "light-ocean", Path: "/old/light-ocean.css"},
		Dark:  Ref{Name: "dark-ocean", Path: "/old/dark-ocean.css"},
	}
	dir := t.TempDir()
	require.NoError(t, sel.Resolve(compiledSet(dir)))
	assert.Equal(t, filepath.Join(dir, "light-ocean.css"), sel.Light.Path)

	stale := &Selection{Light: Ref{Name: "light-gone"}, Dark: Ref{Name: "dark-ocean"}}
	assert.ErrorIs(t, stale.Resolve(compiledSet(dir)), ErrUnknownTheme)
}
