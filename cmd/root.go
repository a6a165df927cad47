package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tristendillon/gohb/core/logger"
)

var rootCmd = &cobra.Command{
	Use:   "gohb",
	Short: "Find, organize and call the HTTP routes of your Go projects.",
	Long: `gohb scans a workspace for Go projects, lists the HTTP routes they
register grouped by resource, and lets you store a request body per route
and a bearer token to fire live requests against a running API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetVerbose(verbose)
		logger.SetColor(!noColor && os.Getenv("NO_COLOR") == "")
		if logfile != "" {
			closer, err := logger.SetLogFile(logfile)
			if err != nil {
				return err
			}
			logCloser = closer
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	},
}

var (
	logfile   string
	verbose   bool
	noColor   bool
	apiHost   string
	parserBin string
	stateFile string

	logCloser io.Closer
)

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logfile, "logfile", "", "File to write logs to")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&apiHost, "api-host", "", "Base URL routes are called against (default http://localhost:8080)")
	rootCmd.PersistentFlags().StringVar(&parserBin, "parser", "", "Path to the parse_routes executable")
	rootCmd.PersistentFlags().StringVar(&stateFile, "state", "", "Path to the request state file")
}
