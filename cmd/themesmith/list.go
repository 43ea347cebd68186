package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themesmith/internal/console"
	"github.com/jmylchreest/themesmith/internal/theme"
	"github.com/jmylchreest/themesmith/internal/toolchain"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List themes grouped by variant",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	return withToolchain(cmd, func(ctx context.Context, tc *toolchain.Toolchain) error {
		entries, err := tc.List(ctx)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No themes found")
			return nil
		}
		writeList(cmd.OutOrStdout(), entries)
		return nil
	})
}

func writeList(w io.Writer, entries []toolchain.Entry) {
	groups := []struct {
		title   string
		variant theme.Variant
	}{
		{"Light themes", theme.VariantLight},
		{"Dark themes", theme.VariantDark},
		{"Other", theme.VariantUnknown},
	}

	out := console.New(w)
	for _, g := range groups {
		var group []toolchain.Entry
		for _, e := range entries {
			if e.Variant == g.variant {
				group = append(group, e)
			}
		}
		if len(group) == 0 {
			continue
		}

		out.Headerf("", "%s", g.title)
		tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
		for _, e := range group {
			mark := " "
			if e.Selected {
				mark = "*"
			}
			status := "not compiled"
			if e.Compiled {
				status = "compiled " + console.Size(int(e.Bytes))
			}
			if !e.HasEntry {
				status += ", no entry file"
			}
			fmt.Fprintf(tw, "  %s %s\t%s\n", mark, e.Name, status)
		}
		tw.Flush()
		out.Blank()
	}
}
