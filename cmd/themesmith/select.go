package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themesmith/internal/toolchain"
)

var selectOpts struct {
	light string
	dark  string
}

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Choose the light and dark theme and write the userstyle",
	Long: `Choose the light and dark theme from the compiled themes, save the
choice and write the userstyle. Nothing is compiled.

Examples:
  # Interactive
  themesmith select

  # Non-interactive
  themesmith select --light light-ocean --dark dark-ocean`,
	Args: cobra.NoArgs,
	RunE: runSelect,
}

func init() {
	rootCmd.AddCommand(selectCmd)

	selectCmd.Flags().StringVar(&selectOpts.light, "light", "",
		"Light theme to use (skips the prompt)")
	selectCmd.Flags().StringVar(&selectOpts.dark, "dark", "",
		"Dark theme to use (skips the prompt)")
}

func runSelect(cmd *cobra.Command, args []string) error {
	return withToolchain(cmd, func(ctx context.Context, tc *toolchain.Toolchain) error {
		sel, err := tc.Select(ctx, toolchain.SelectOptions{Light: selectOpts.light, Dark: selectOpts.dark})
		if err != nil {
			return err
		}
		_, err = tc.Compose(sel)
		return err
	})
}
