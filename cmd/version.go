package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tristendillon/gohb/core/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the version of gohb",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gohb %s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
