package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themesmith/internal/console"
	"github.com/jmylchreest/themesmith/internal/toolchain"
)

var composeOpts struct {
	all bool
}

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Write the userstyle from the saved selection",
	Long: `Write the userstyle from the saved light/dark selection and the
compiled CSS on disk.

--all is the legacy mode: every compiled theme is concatenated without a
selection or class rewriting. It is deprecated and will be removed.`,
	Args: cobra.NoArgs,
	RunE: runCompose,
}

func init() {
	rootCmd.AddCommand(composeCmd)

	composeCmd.Flags().BoolVar(&composeOpts.all, "all", false,
		"Concatenate every compiled theme (deprecated)")
}

func runCompose(cmd *cobra.Command, args []string) error {
	return withToolchain(cmd, func(ctx context.Context, tc *toolchain.Toolchain) error {
		if composeOpts.all {
			console.New(cmd.ErrOrStderr()).Warnf("compose --all is deprecated; use `themesmith select` instead")
			_, err := tc.ComposeAll(ctx)
			return err
		}
		_, err := tc.Recompose(ctx)
		return err
	})
}
