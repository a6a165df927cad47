package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tristendillon/gohb/core/grouper"
	"github.com/tristendillon/gohb/core/logger"
	"github.com/tristendillon/gohb/core/models"
)

var byFile bool

var routesCmd = &cobra.Command{
	Use:   "routes [workspace]",
	Short: "List the routes of every project grouped by resource",
	Long: `Discovers every project (a directory with a main.go) in the workspace,
parses its Go files for route registrations and prints them grouped by
resource. Use --by-file to group by source file instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("routes called")
		a, err := newApp(workspaceArg(args))
		if err != nil {
			return err
		}

		projects := a.workspace.Refresh(cmd.Context())
		if len(projects) == 0 {
			logger.Info("No projects with %s found in %s", a.cfg.EntryFile, a.dir)
			return nil
		}

		var nodes []*models.Node
		if byFile {
			for _, p := range projects {
				nodes = append(nodes, grouper.ByFile(p.Root, p.Routes))
			}
		} else {
			nodes = a.workspace.Tree()
		}
		grouper.Print(nodes, logger.INFO)

		total := 0
		for _, p := range projects {
			total += len(p.Routes)
		}
		logger.Info("Found %d routes in %d projects", total, len(projects))
		return nil
	},
}

var projectsCmd = &cobra.Command{
	Use:   "projects [workspace]",
	Short: "List the project roots found in the workspace",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(workspaceArg(args))
		if err != nil {
			return err
		}
		for _, p := range a.workspace.Refresh(cmd.Context()) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d routes\n", p.Root.Label, p.Root.FullPath, len(p.Routes))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(projectsCmd)

	routesCmd.Flags().BoolVar(&byFile, "by-file", false, "Group routes by source file")
}
