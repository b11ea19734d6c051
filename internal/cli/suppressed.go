// Package cli — suppressed.go implements the "langtour suppressed" command.
//
// The command builds a primary error, attaches a secondary error that was
// caught along the way, and prints both to stderr. Only the primary error
// is returned to the caller; the secondary one is reachable through
// failure.SuppressedOf.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/langtour/internal/failure"
)

// NewSuppressedCommand creates the "suppressed" cobra command.
func NewSuppressedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "suppressed",
		Short: "Attach a suppressed error to a primary error",
		Long: `Build "Primary Exception", catch "Suppressed Exception" in a nested scope
and attach it to the primary, then return the primary. The caller sees the
primary error and can list the suppressed one for diagnostics.

Examples:
  langtour suppressed
  langtour suppressed --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuppressed(streamsOf(cmd))
		},
	}
}

// suppressedResultJSON is the JSON output structure of the suppressed command.
type suppressedResultJSON struct {
	Caught     string   `json:"caught"`
	Suppressed []string `json:"suppressed"`
}

func runSuppressed(s streams) error {
	err := failure.ThrowWithSuppressed()
	suppressed := failure.SuppressedOf(err)
	VerboseLog("Primary error carries %d suppressed errors", len(suppressed))

	if IsJSONOutput() {
		result := suppressedResultJSON{
			Caught:     err.Error(),
			Suppressed: make([]string, 0, len(suppressed)),
		}
		for _, e := range suppressed {
			result.Suppressed = append(result.Suppressed, e.Error())
		}
		return printJSON(s.out, result)
	}

	fmt.Fprintf(s.err, "Caught: %v\n", err)
	for _, e := range suppressed {
		fmt.Fprintf(s.err, "Suppressed: %v\n", e)
	}
	return nil
}
