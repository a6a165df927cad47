package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tristendillon/gohb/core/invoker"
	"github.com/tristendillon/gohb/core/logger"
)

var runCmd = &cobra.Command{
	Use:   "run <METHOD> <path>",
	Short: "Call a route with its stored body and the bearer token",
	Long: `Sends METHOD <api-host><path> with the stored bearer token. POST, PUT
and PATCH also send the body stored for the route. Path parameters are
sent as written.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(".")
		if err != nil {
			return err
		}

		route := routeArg(args)
		res, err := a.invoker.Invoke(cmd.Context(), route, a.store.GetBody(route), a.store.GetToken())
		if errors.Is(err, invoker.ErrMissingToken) {
			logger.Warn("No bearer token set. Run `gohb token set` first.")
			return err
		}
		if err != nil {
			logger.Error("%v", err)
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %s -> %d\n%s\n", route.Method, a.invoker.URL(route), res.Status, res.BodyPreview)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
