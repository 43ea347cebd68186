package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themesmith/internal/toolchain"
)

var compileOpts struct {
	watch bool
}

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile every theme folder to CSS",
	Long: `Compile every theme folder's entry file into the compiled directory.

Themes without an entry file are skipped. A failing theme is reported and
the rest still compile. The userstyle is not touched.

Examples:
  # Compile once
  themesmith compile

  # Recompile a theme when its sources change; a change in the
  # components folder recompiles every theme
  themesmith compile --watch`,
	Args: cobra.NoArgs,
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().BoolVarP(&compileOpts.watch, "watch", "w", false,
		"Keep running and recompile on changes")
}

func runCompile(cmd *cobra.Command, args []string) error {
	return withToolchain(cmd, func(ctx context.Context, tc *toolchain.Toolchain) error {
		if _, err := tc.CompileAll(ctx); err != nil {
			return err
		}
		if compileOpts.watch {
			return tc.WatchSources(ctx)
		}
		return nil
	})
}
