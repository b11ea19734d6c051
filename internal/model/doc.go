// Package model defines the shared value types for the langtour CLI.
//
// The demos hosted by langtour share no state, so this package stays small:
// it names the demos (DemoName), defines the process exit codes (ExitCode),
// and provides a custom error type (CLIError) that carries an exit code for
// proper OS process exit handling.
package model
