// Package selection persists the user's chosen light/dark theme pair.
package selection

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/themesmith/internal/theme"
)

var (
	// ErrNotFound is returned by Load when no selection has been saved.
	ErrNotFound = errors.New("no theme selection saved")

	// ErrUnknownTheme is returned when a selected theme is not in the compiled set.
	ErrUnknownTheme = errors.New("selected theme is not compiled")
)

// Ref points at one compiled theme.
type Ref struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// Selection is the chosen theme pair.
type Selection struct {
	Light      Ref       `yaml:"light"`
	Dark       Ref       `yaml:"dark"`
	SelectedAt time.Time `yaml:"selected_at,omitempty"`
}

// New builds a selection from compiled theme names and their CSS paths.
func New(light, dark string, compiled map[string]string) (*Selection, error) {
	sel := &Selection{
		Light:      Ref{Name: light, Path: compiled[light]},
		Dark:       Ref{Name: dark, Path: compiled[dark]},
		SelectedAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := sel.Validate(compiled); err != nil {
		return nil, err
	}
	return sel, nil
}

// Ref returns the reference for a variant.
func (s *Selection) Ref(v theme.Variant) Ref {
	if v == theme.VariantDark {
		return s.Dark
	}
	return s.Light
}

// Names returns the selected theme names, light first.
func (s *Selection) Names() []string {
	return []string{s.Light.Name, s.Dark.Name}
}

// Includes reports whether name is one of the selected themes.
func (s *Selection) Includes(name string) bool {
	return name == s.Light.Name || name == s.Dark.Name
}

// Validate checks that both refs name a theme in the compiled set.
func (s *Selection) Validate(compiled map[string]string) error {
	for _, v := range theme.Variants {
		ref := s.Ref(v)
		if ref.Name == "" {
			return fmt.Errorf("%w: no %s theme selected", ErrUnknownTheme, v)
		}
		if _, ok := compiled[ref.Name]; !ok {
			return fmt.Errorf("%w: %s theme %q", ErrUnknownTheme, v, ref.Name)
		}
	}
	return nil
}

// Resolve refreshes the stored paths from the compiled set, since the
// compiled directory may have moved since the selection was saved.
func (s *Selection) Resolve(compiled map[string]string) error {
	if err := s.Validate(compiled); err != nil {
		return err
	}
	s.Light.Path = compiled[s.Light.Name]
	s.Dark.Path = compiled[s.Dark.Name]
	return nil
}

// Store reads and writes the selection record.
type Store struct {
	path string
}

// NewStore creates a store backed by the YAML file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the record location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the saved selection. Returns ErrNotFound if none exists.
func (s *Store) Load() (*Selection, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read selection: %w", err)
	}

	var sel Selection
	if err := yaml.Unmarshal(data, &sel); err != nil {
		return nil, fmt.Errorf("parse selection %s: %w", s.path, err)
	}
	if sel.Light.Name == "" && sel.Dark.Name == "" {
		return nil, ErrNotFound
	}
	return &sel, nil
}

// Save overwrites the record. The file is written next to the target and
// renamed into place so readers never see a partial record.
func (s *Store) Save(sel *Selection) error {
	if sel == nil {
		return errors.New("nil selection")
	}

	data, err := yaml.Marshal(sel)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create selection directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace selection: %w", err)
	}
	return nil
}
