package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themesmith/internal/toolchain"
)

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Scaffold a new light/dark theme pair",
	Long: `Create light-<name> and dark-<name> by copying the template pair set
in [scaffold] template, renaming the theme class in each entry file. When
the template pair does not exist a built-in starter is written instead.

The name is converted to kebab-case. Without a name you are asked for one.`,
	Args: cobra.ArbitraryArgs,
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	return withToolchain(cmd, func(ctx context.Context, tc *toolchain.Toolchain) error {
		_, err := tc.Create(ctx, strings.Join(args, " "))
		return err
	})
}
