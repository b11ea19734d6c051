// Package cli — all.go implements the "langtour all" command.
//
// The all command runs every local demo in a fixed order, stopping at the
// first failure. The WebSocket demo needs a reachable endpoint, so it only
// runs when --network is given or when it is named in --only.
package cli

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/langtour/internal/config"
	"github.com/shinji-kodama/langtour/internal/model"
)

// allFlags holds the flag values for the all command.
type allFlags struct {
	network bool     // --network: include the WebSocket demo
	only    []string // --only: run just these demos, in the standard order
}

// NewAllCommand creates the "all" cobra command.
func NewAllCommand() *cobra.Command {
	flags := &allFlags{}

	cmd := &cobra.Command{
		Use:   "all",
		Short: "Run every demo in sequence",
		Long: `Run every local demo in sequence: toarray, stacktrace, suppressed, fileio,
lambda, strings. Add --network to finish with the websocket demo.

Settings come from --config when given, otherwise from the built-in
defaults.

Examples:
  langtour all
  langtour all --network
  langtour all --only strings,lambda`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			demos, err := selectDemos(flags)
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runAll(cmd.Context(), streamsOf(cmd), cfg, demos)
		},
	}

	cmd.Flags().BoolVar(&flags.network, "network", false, "Also run the websocket demo")
	cmd.Flags().StringSliceVar(&flags.only, "only", nil, "Comma-separated demos to run (default: all local demos)")

	return cmd
}

// selectDemos resolves the --only and --network flags into the ordered
// list of demos to run.
func selectDemos(flags *allFlags) ([]model.DemoName, error) {
	order := append([]model.DemoName{}, model.LocalDemos...)
	order = append(order, model.DemoWebSocket)

	if len(flags.only) == 0 {
		if flags.network {
			return order, nil
		}
		return lo.Reject(order, func(d model.DemoName, _ int) bool {
			return d.IsNetwork()
		}), nil
	}

	wanted := make(map[model.DemoName]bool, len(flags.only))
	for _, s := range flags.only {
		name, err := model.ParseDemoName(s)
		if err != nil {
			return nil, model.WrapCLIError(model.ExitInvalidArgument, "invalid --only value", err)
		}
		wanted[name] = true
	}

	selected := make([]model.DemoName, 0, len(wanted))
	for _, d := range order {
		if wanted[d] {
			selected = append(selected, d)
		}
	}
	return selected, nil
}

// runAll runs each demo in order and returns the first error.
func runAll(ctx context.Context, s streams, cfg *config.Config, demos []model.DemoName) error {
	for _, d := range demos {
		VerboseLog("Running demo %s", d)
		if !IsJSONOutput() {
			fmt.Fprintf(s.out, "=== %s ===\n", d)
		}
		if err := runDemo(ctx, s, cfg, d); err != nil {
			return err
		}
	}
	return nil
}

// runDemo dispatches a single demo by name.
func runDemo(ctx context.Context, s streams, cfg *config.Config, d model.DemoName) error {
	switch d {
	case model.DemoToArray:
		return runToArray(s)
	case model.DemoStackTrace:
		return runStackTrace(s)
	case model.DemoSuppressed:
		return runSuppressed(s)
	case model.DemoFileIO:
		return runFileIO(s, cfg.File)
	case model.DemoWebSocket:
		return runWebSocket(ctx, s, cfg.WebSocket)
	case model.DemoLambda:
		return runLambda(ctx, s, cfg.Lambda)
	case model.DemoStrings:
		return runStrings(s, summarySample, 3)
	default:
		return model.NewCLIError(model.ExitInvalidArgument, fmt.Sprintf("unknown demo %q", d))
	}
}
