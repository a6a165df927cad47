package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tristendillon/gohb/core/models"
	"github.com/tristendillon/gohb/core/state"
)

var bodyCmd = &cobra.Command{
	Use:   "body",
	Short: "Manage the stored request body of a route",
}

var bodyGetCmd = &cobra.Command{
	Use:   "get <METHOD> <path>",
	Short: "Print the request body stored for a route",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(".")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), a.store.GetBody(routeArg(args)))
		return nil
	},
}

var bodySetCmd = &cobra.Command{
	Use:   "set <METHOD> <path> [json]",
	Short: "Store the request body for a route",
	Long: `Stores a JSON request body for every route with this method and path.
The body is read from stdin when omitted or given as "-". It must be valid
JSON; an empty body clears it.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := inputArg(cmd, args, 2)
		if err != nil {
			return err
		}
		if err := state.ValidateBody(text); err != nil {
			return err
		}

		a, err := newApp(".")
		if err != nil {
			return err
		}
		route := routeArg(args)
		if err := a.store.SetBody(route, text); err != nil {
			return fmt.Errorf("failed to store body: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved request body for %s\n", route)
		return nil
	},
}

// routeArg builds the route identity from METHOD and path arguments.
// Parsed methods are upper case, so user input is too.
func routeArg(args []string) models.Route {
	return models.Route{Method: strings.ToUpper(args[0]), Path: args[1]}
}

// inputArg returns args[i], or stdin when it is absent or "-".
func inputArg(cmd *cobra.Command, args []string, i int) (string, error) {
	if len(args) > i && args[i] != "-" {
		return args[i], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func init() {
	rootCmd.AddCommand(bodyCmd)
	bodyCmd.AddCommand(bodyGetCmd)
	bodyCmd.AddCommand(bodySetCmd)
}
