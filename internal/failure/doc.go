// Package failure demonstrates stack-carrying errors and suppressed errors.
//
// Errors created through github.com/pkg/errors record the call stack at the
// point of creation. StackFrames turns that record into plain Frame values,
// innermost first, so the CLI can print one frame per line.
//
// Suppressing wraps a primary error and keeps an ordered list of secondary
// errors that were caught while the primary was being produced. The
// secondary errors never change what errors.Is or errors.As see on the
// primary chain; they exist only for diagnostics.
package failure
