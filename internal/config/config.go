// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultConfigFile    = "themesmith.toml"
	DefaultThemesDir     = "themes"
	DefaultCompiledDir   = "compiled"
	DefaultComponentsDir = "components"
	DefaultOutputFile    = "user-style.styl"
	DefaultSelectionFile = ".theme-selection.yaml"
	DefaultEntryFile     = "_main.scss"
	DefaultSassBinary    = "sass"
	DefaultDebounce      = "250ms"
	DefaultPollInterval  = "500ms"
	DefaultDomain        = "warframe.market"
	DefaultTemplate      = "original"
)

// DefaultSilencedDeprecations are the legacy Sass features the themes still rely on.
var DefaultSilencedDeprecations = []string{"import", "global-builtin"}

// Config represents the themesmith configuration.
type Config struct {
	Paths     PathsConfig     `toml:"paths"`
	Compiler  CompilerConfig  `toml:"compiler"`
	UserStyle UserStyleConfig `toml:"userstyle"`
	Watch     WatchConfig     `toml:"watch"`
	Scaffold  ScaffoldConfig  `toml:"scaffold"`

	// baseDir anchors relative paths. It is the directory of the loaded
	// config file, or the working directory when no file was read.
	baseDir string
}

// PathsConfig holds the project layout.
type PathsConfig struct {
	Themes     string `toml:"themes"`     // One sub-directory per theme
	Compiled   string `toml:"compiled"`   // Compiled <theme>.css files
	Components string `toml:"components"` // Shared partials; a change rebuilds every theme
	Output     string `toml:"output"`     // Composed userstyle
	Selection  string `toml:"selection"`  // Persisted light/dark choice
}

// CompilerConfig holds Sass compiler options.
type CompilerConfig struct {
	Binary              string   `toml:"binary"`               // Dart Sass executable with --embedded support
	Entry               string   `toml:"entry"`                // Entry file inside each theme folder
	SourceMap           bool     `toml:"source_map"`           // Write <theme>.css.map next to the CSS
	SilenceDeprecations []string `toml:"silence_deprecations"` // Deprecation IDs passed to sass
	Jobs                int      `toml:"jobs"`                 // Parallel compiles (0 = number of CPUs)
}

// UserStyleConfig holds the metadata and scope of the composed userstyle.
type UserStyleConfig struct {
	Name           string `toml:"name"`
	Namespace      string `toml:"namespace"`
	Version        string `toml:"version"`
	Description    string `toml:"description"`
	Author         string `toml:"author"`
	Domain         string `toml:"domain"`
	RewriteClasses bool   `toml:"rewrite_classes"` // .theme--<mode>--<name> becomes .theme--<mode>
}

// WatchConfig holds watch mode settings.
type WatchConfig struct {
	Debounce     string `toml:"debounce"`      // Quiet period before a rebuild
	Poll         bool   `toml:"poll"`          // Poll compiled outputs in --watch-only instead of fsnotify
	PollInterval string `toml:"poll_interval"` // Interval used when poll is enabled
}

// ScaffoldConfig holds settings for `themesmith create`.
type ScaffoldConfig struct {
	Template string `toml:"template"` // Copies light-<template> and dark-<template>
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			Themes:     DefaultThemesDir,
			Compiled:   DefaultCompiledDir,
			Components: DefaultComponentsDir,
			Output:     DefaultOutputFile,
			Selection:  DefaultSelectionFile,
		},
		Compiler: CompilerConfig{
			Binary:              DefaultSassBinary,
			Entry:               DefaultEntryFile,
			SourceMap:           false,
			SilenceDeprecations: append([]string(nil), DefaultSilencedDeprecations...),
			Jobs:                0,
		},
		UserStyle: UserStyleConfig{
			Name:           "Warframe Market live theme updater",
			Namespace:      "github.com/openstyles/stylus",
			Version:        "1.0.0",
			Description:    "Live update user CSS themes from Sass watch.",
			Author:         "themesmith",
			Domain:         DefaultDomain,
			RewriteClasses: true,
		},
		Watch: WatchConfig{
			Debounce:     DefaultDebounce,
			PollInterval: DefaultPollInterval,
		},
		Scaffold: ScaffoldConfig{
			Template: DefaultTemplate,
		},
	}
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses themesmith.toml in the working directory.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFile
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	cfg.baseDir = filepath.Dir(abs)

	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultConfigFile
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	required := map[string]string{
		"paths.themes":    c.Paths.Themes,
		"paths.compiled":  c.Paths.Compiled,
		"paths.output":    c.Paths.Output,
		"paths.selection": c.Paths.Selection,
		"compiler.entry":  c.Compiler.Entry,
	}
	for key, value := range required {
		if value == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
	}

	if c.Compiler.Jobs < 0 {
		return fmt.Errorf("compiler.jobs must be >= 0, got %d", c.Compiler.Jobs)
	}

	if _, err := c.DebounceDuration(); err != nil {
		return err
	}
	if _, err := c.PollDuration(); err != nil {
		return err
	}

	return nil
}

// DebounceDuration parses the watch quiet period.
func (c *Config) DebounceDuration() (time.Duration, error) {
	return positiveDuration("watch.debounce", c.Watch.Debounce, DefaultDebounce)
}

// PollDuration parses the compiled-output polling interval.
func (c *Config) PollDuration() (time.Duration, error) {
	return positiveDuration("watch.poll_interval", c.Watch.PollInterval, DefaultPollInterval)
}

func positiveDuration(key, value, fallback string) (time.Duration, error) {
	if value == "" {
		value = fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}

// SetBaseDir overrides the directory relative paths are resolved against.
func (c *Config) SetBaseDir(dir string) { c.baseDir = dir }

// BaseDir returns the directory relative paths are resolved against.
func (c *Config) BaseDir() string { return c.baseDir }

// ThemesDir returns the resolved themes directory.
func (c *Config) ThemesDir() string { return c.resolve(c.Paths.Themes) }

// CompiledDir returns the resolved compiled CSS directory.
func (c *Config) CompiledDir() string { return c.resolve(c.Paths.Compiled) }

// ComponentsDir returns the resolved shared components directory.
func (c *Config) ComponentsDir() string {
	if c.Paths.Components == "" {
		return ""
	}
	return c.resolve(c.Paths.Components)
}

// OutputPath returns the resolved userstyle output path.
func (c *Config) OutputPath() string { return c.resolve(c.Paths.Output) }

// SelectionPath returns the resolved selection record path.
func (c *Config) SelectionPath() string { return c.resolve(c.Paths.Selection) }

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) || c.baseDir == "" {
		return p
	}
	return filepath.Join(c.baseDir, p)
}
