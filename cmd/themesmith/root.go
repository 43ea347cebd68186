// Package main provides the CLI entrypoint for themesmith.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/themesmith/internal/compiler"
	"github.com/jmylchreest/themesmith/internal/config"
	"github.com/jmylchreest/themesmith/internal/console"
	"github.com/jmylchreest/themesmith/internal/prompt"
	"github.com/jmylchreest/themesmith/internal/toolchain"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
	}
	logger *slog.Logger
)

var rootOpts struct {
	watch     bool
	watchOnly bool
	light     string
	dark      string
}

// rootCmd compiles, selects and composes when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "themesmith",
	Short: "Build SCSS themes into a Stylus userstyle",
	Long: `themesmith compiles SCSS theme folders to CSS, lets you pick a light
and a dark theme, and writes one userstyle for the Stylus extension.

Running themesmith without a subcommand compiles every theme, asks which
pair to use (offering the previous one) and writes the userstyle.

Examples:
  # Build once
  themesmith

  # Build, then rebuild whenever a .scss file changes
  themesmith --watch

  # Only recompose when the selected compiled themes change
  themesmith --watch-only`,
	Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		logger.Debug("config loaded", "base_dir", cfg.BaseDir(), "themes", cfg.ThemesDir())
		return nil
	},
	RunE: runRoot,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ./themesmith.toml)")

	rootCmd.Flags().BoolVarP(&rootOpts.watch, "watch", "w", false,
		"Keep running and rebuild when theme sources change")
	rootCmd.Flags().BoolVar(&rootOpts.watchOnly, "watch-only", false,
		"Skip compiling and selection; recompose when the selected compiled themes change")
	rootCmd.Flags().StringVar(&rootOpts.light, "light", "",
		"Light theme to use (skips the prompt)")
	rootCmd.Flags().StringVar(&rootOpts.dark, "dark", "",
		"Dark theme to use (skips the prompt)")
	rootCmd.MarkFlagsMutuallyExclusive("watch", "watch-only")
}

func runRoot(cmd *cobra.Command, args []string) error {
	return withToolchain(cmd, func(ctx context.Context, tc *toolchain.Toolchain) error {
		if rootOpts.watchOnly {
			return tc.WatchCompiled(ctx)
		}

		if _, err := tc.Build(ctx, toolchain.BuildOptions{Light: rootOpts.light, Dark: rootOpts.dark}); err != nil {
			return err
		}

		if rootOpts.watch {
			return tc.WatchSources(ctx)
		}
		return nil
	})
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// withToolchain builds a toolchain for the loaded config, runs fn and
// shuts the Sass compiler down afterwards. An aborted prompt is reported
// as a short message instead of an error dump.
func withToolchain(cmd *cobra.Command, fn func(ctx context.Context, tc *toolchain.Toolchain) error) error {
	sass := compiler.NewDartSass(compiler.DartSassOptions{
		Binary:              cfg.Compiler.Binary,
		SilenceDeprecations: cfg.Compiler.SilenceDeprecations,
		Logger:              logger,
	})
	defer func() {
		if err := sass.Close(); err != nil {
			logger.Debug("failed to stop dart-sass", "error", err)
		}
	}()

	out := console.New(cmd.OutOrStdout())
	tc, err := toolchain.New(toolchain.Options{
		Config:   cfg,
		Compiler: sass,
		Prompter: prompt.NewHuh(prompt.HuhOptions{
			Input:      cmd.InOrStdin(),
			Output:     cmd.ErrOrStderr(),
			Accessible: prompt.Accessible(os.Stdin),
		}),
		Printer: out,
		Logger:  logger,
		Spinner: term.IsTerminal(int(os.Stderr.Fd())) && !globalOpts.verbose,
	})
	if err != nil {
		return err
	}

	err = fn(cmd.Context(), tc)
	if errors.Is(err, prompt.ErrAborted) || errors.Is(err, context.Canceled) {
		out.Warnf("Cancelled.")
		cmd.SilenceErrors = true
	}
	return err
}
