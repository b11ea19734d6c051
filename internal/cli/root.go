// Package cli implements the cobra-based CLI commands for langtour.
//
// Each demo subcommand (toarray, stacktrace, suppressed, fileio, websocket,
// lambda, strings) is defined in its own file within this package, along
// with the "all" command that runs them in sequence. This file defines the
// root command that serves as the parent for all subcommands and handles
// global flags.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/langtour/internal/config"
	"github.com/shinji-kodama/langtour/internal/model"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	// When true, every demo prints one indented JSON document on stdout.
	// When false (default), output uses human-readable text format.
	jsonOutput bool

	// verbose enables detailed logging output for debugging.
	// When true, additional information about operations is printed to stderr.
	verbose bool

	// configPath is the optional YAML or JSONC settings file.
	configPath string
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
//
// The root command itself does not perform any action; it only provides
// help text and global flags. Each demo is a subcommand.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "langtour",
		Short: "A tour of small, self-contained language feature demos",
		Long: `langtour runs small, self-contained demonstrations of everyday language
features: collection to array conversion, stack traces, suppressed errors,
file round trips, a one-shot WebSocket echo client, function values, and
whitespace-aware string helpers.

Every demo is independent. Run one by name, or all of them with "all".`,

		// SilenceUsage prevents cobra from printing usage on every error.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Settings file (.yaml, .yml, .json, .jsonc)")

	rootCmd.AddCommand(NewToArrayCommand())
	rootCmd.AddCommand(NewStackTraceCommand())
	rootCmd.AddCommand(NewSuppressedCommand())
	rootCmd.AddCommand(NewFileIOCommand())
	rootCmd.AddCommand(NewWebSocketCommand())
	rootCmd.AddCommand(NewLambdaCommand())
	rootCmd.AddCommand(NewStringsCommand())
	rootCmd.AddCommand(NewAllCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// CLIError types carry their own exit codes; other errors default to
// exit code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			printError(os.Stderr, cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(os.Stderr, err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(w io.Writer, message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// Errors go to stderr even in JSON mode, because stdout is
		// reserved for successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}

// streams bundles the output writers of a command. Demos write results to
// out and diagnostics to err, so tests can capture both.
type streams struct {
	out io.Writer
	err io.Writer
}

// streamsOf returns the writers configured on cmd (stdout/stderr unless a
// test replaced them).
func streamsOf(cmd *cobra.Command) streams {
	return streams{out: cmd.OutOrStdout(), err: cmd.ErrOrStderr()}
}

// printJSON writes v as indented JSON followed by a newline.
func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// loadConfig reads the --config file, or returns the defaults when no file
// was given.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		VerboseLog("Loading settings from %s", configPath)
	}
	return config.Load(configPath)
}

// validateOverrides re-checks cfg after flag values were applied on top of
// it. Bad flag values are reported as invalid arguments, not config errors.
func validateOverrides(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return model.WrapCLIError(model.ExitInvalidArgument, "invalid flag value", err)
	}
	return nil
}
