package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tristendillon/gohb/core/grouper"
	"github.com/tristendillon/gohb/core/logger"
	"github.com/tristendillon/gohb/core/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [workspace]",
	Short: "Print the route tree and refresh it whenever Go files change",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(workspaceArg(args))
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		refresh := func() error {
			a.workspace.Refresh(ctx)
			grouper.Print(a.workspace.Tree(), logger.INFO)
			return nil
		}

		fw, err := watcher.NewFileWatcher(a.dir, a.cfg.ExcludeDirs(), a.cfg.Watch.Debounce, refresh)
		if err != nil {
			return err
		}
		defer fw.Close()

		if err := refresh(); err != nil {
			return err
		}
		logger.Info("Watching %s for changes", a.dir)

		if err := fw.Watch(ctx); err != nil {
			return fmt.Errorf("watch stopped: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
