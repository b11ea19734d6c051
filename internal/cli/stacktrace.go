// Package cli — stacktrace.go implements the "langtour stacktrace" command.
//
// The command calls a function that always fails, catches the error at the
// call site, and prints the message followed by the recorded call stack,
// one frame per line, innermost first. The trace goes to stderr; in JSON
// mode the result is printed on stdout like every other demo.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/langtour/internal/failure"
)

// NewStackTraceCommand creates the "stacktrace" cobra command.
func NewStackTraceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stacktrace",
		Short: "Raise an error and print its call stack",
		Long: `Raise an error carrying the message "Exception with stack trace", catch it,
and print the message followed by one call-stack frame per line.

Examples:
  langtour stacktrace
  langtour stacktrace --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStackTrace(streamsOf(cmd))
		},
	}
}

// stackTraceResultJSON is the JSON output structure of the stacktrace command.
type stackTraceResultJSON struct {
	Caught string          `json:"caught"`
	Frames []failure.Frame `json:"frames"`
}

func runStackTrace(s streams) error {
	err := failure.ThrowWithStackTrace()
	// The error is the demo's subject, not a failure of the command.
	frames := failure.StackFrames(err)
	VerboseLog("Captured %d frames", len(frames))

	if IsJSONOutput() {
		return printJSON(s.out, stackTraceResultJSON{Caught: err.Error(), Frames: frames})
	}

	fmt.Fprintf(s.err, "Caught: %v\n", err)
	for _, f := range frames {
		fmt.Fprintf(s.err, "\tat %s\n", f)
	}
	return nil
}
