// Package cli — lambda.go implements the "langtour lambda" command.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/langtour/internal/config"
	"github.com/shinji-kodama/langtour/internal/lambda"
	"github.com/shinji-kodama/langtour/internal/model"
)

// lambdaFlags holds the flag values for the lambda command.
type lambdaFlags struct {
	concurrency int // --concurrency: workers for the lengths stream
}

// NewLambdaCommand creates the "lambda" cobra command.
func NewLambdaCommand() *cobra.Command {
	flags := &lambdaFlags{}

	cmd := &cobra.Command{
		Use:   "lambda",
		Short: "Use function values over slices and maps",
		Long: `Run four small function-value examples:
  - map "a", "bb", "ccc", "dd" to their lengths, keeping order
  - a two-argument function computing x*y+10
  - a two-argument string concatenation
  - print every key: value pair of a map (order unspecified)

Examples:
  langtour lambda
  langtour lambda --concurrency 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("concurrency") {
				cfg.Lambda.Concurrency = flags.concurrency
			}
			if err := validateOverrides(cfg); err != nil {
				return err
			}
			return runLambda(cmd.Context(), streamsOf(cmd), cfg.Lambda)
		},
	}

	cmd.Flags().IntVar(&flags.concurrency, "concurrency", 1, "Workers computing string lengths")

	return cmd
}

// lambdaPairJSON is a single map entry in the JSON output.
type lambdaPairJSON struct {
	Key   string `json:"key"`
	Value int    `json:"value"`
}

// lambdaResultJSON is the JSON output structure of the lambda command.
type lambdaResultJSON struct {
	Lengths        []int            `json:"lengths"`
	MultiplyAndAdd int              `json:"multiplyAndAdd"`
	Concat         string           `json:"concat"`
	Pairs          []lambdaPairJSON `json:"pairs"`
}

func runLambda(ctx context.Context, s streams, lc config.LambdaConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}

	lengths, err := lambda.Lengths(ctx, lambda.Words, lc.Concurrency)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "lambda demo failed", err)
	}
	product := lambda.MultiplyAndAdd.Apply(3, 5)
	joined := lambda.Concat.Apply("hello", "world")
	pairs := lambda.Pairs(lambda.Scores)
	VerboseLog("Computed %d lengths with concurrency %d", len(lengths), lc.Concurrency)

	if IsJSONOutput() {
		result := lambdaResultJSON{
			Lengths:        lengths,
			MultiplyAndAdd: product,
			Concat:         joined,
			Pairs:          make([]lambdaPairJSON, 0, len(pairs)),
		}
		for _, p := range pairs {
			result.Pairs = append(result.Pairs, lambdaPairJSON{Key: p.Key, Value: p.Value})
		}
		return printJSON(s.out, result)
	}

	fmt.Fprintf(s.out, "Lengths of strings: %v\n", lengths)
	fmt.Fprintf(s.out, "Result of multiplyAndAdd(3, 5): %d\n", product)
	fmt.Fprintf(s.out, "Concatenation of 'hello' and 'world': %s\n", joined)
	for _, p := range pairs {
		fmt.Fprintln(s.out, lambda.FormatPair(p))
	}
	return nil
}
