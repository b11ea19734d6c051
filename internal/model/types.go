package model

import (
	"fmt"
	"strings"
)

// DemoName identifies one of the self-contained feature demonstrations.
// Each demo is exposed as a subcommand of the same name.
type DemoName string

const (
	// DemoToArray converts an ordered collection into a fixed-size array.
	DemoToArray DemoName = "toarray"

	// DemoStackTrace raises an error and prints its captured call stack.
	DemoStackTrace DemoName = "stacktrace"

	// DemoSuppressed attaches a secondary error to a primary one.
	DemoSuppressed DemoName = "suppressed"

	// DemoFileIO writes a file and reads it back.
	DemoFileIO DemoName = "fileio"

	// DemoWebSocket connects to an echo endpoint and waits for one event.
	// It is the only demo that touches the network.
	DemoWebSocket DemoName = "websocket"

	// DemoLambda exercises function values over slices and maps.
	DemoLambda DemoName = "lambda"

	// DemoStrings runs the whitespace and repetition checks.
	DemoStrings DemoName = "strings"
)

// LocalDemos lists the demos that run without network access, in the
// order the "all" command executes them.
var LocalDemos = []DemoName{
	DemoToArray,
	DemoStackTrace,
	DemoSuppressed,
	DemoFileIO,
	DemoLambda,
	DemoStrings,
}

// String returns the string representation of DemoName.
func (d DemoName) String() string {
	return string(d)
}

// IsValid checks whether the DemoName value is one of the predefined demos.
func (d DemoName) IsValid() bool {
	switch d {
	case DemoToArray, DemoStackTrace, DemoSuppressed, DemoFileIO,
		DemoWebSocket, DemoLambda, DemoStrings:
		return true
	default:
		return false
	}
}

// IsNetwork returns true if the demo needs a remote endpoint.
func (d DemoName) IsNetwork() bool {
	return d == DemoWebSocket
}

// ParseDemoName converts a string to a DemoName.
// Matching is case-insensitive and ignores surrounding blanks.
func ParseDemoName(s string) (DemoName, error) {
	name := DemoName(strings.ToLower(strings.TrimSpace(s)))
	if !name.IsValid() {
		return "", fmt.Errorf("invalid demo name: %q (valid: toarray, stacktrace, suppressed, fileio, websocket, lambda, strings)", s)
	}
	return name, nil
}

// ExitCode defines standard CLI exit codes. These codes allow scripts
// to tell which demo failed and why.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitConfigError indicates the configuration file could not be read,
	// parsed, or validated.
	ExitConfigError ExitCode = 2

	// ExitFileIOError indicates the file round trip failed (permission
	// denied, disk full, missing directory).
	ExitFileIOError ExitCode = 3

	// ExitWebSocketError indicates the WebSocket dial failed or the
	// transport reported an error before any message or close arrived.
	ExitWebSocketError ExitCode = 4

	// ExitWebSocketTimeout indicates neither a message nor a close frame
	// arrived within the configured wait.
	ExitWebSocketTimeout ExitCode = 5

	// ExitInvalidArgument indicates a flag or argument value was rejected.
	ExitInvalidArgument ExitCode = 6
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
