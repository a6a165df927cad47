package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tristendillon/gohb/core/lens"
)

var lensCmd = &cobra.Command{
	Use:   "lens <file.go>",
	Short: "Show the route annotations for a single Go file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		a, err := newApp(".")
		if err != nil {
			return err
		}

		lenses := lens.ForFile(cmd.Context(), a.parser, a.store, file)
		if len(lenses) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No routes found.")
			return nil
		}
		for _, l := range lenses {
			fmt.Fprintf(cmd.OutOrStdout(), "%s:%d: %s\n", file, l.Line, l.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lensCmd)
}
