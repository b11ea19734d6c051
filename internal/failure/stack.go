package failure

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
)

// StackTraceMessage is the fixed message of the error raised by
// ThrowWithStackTrace.
const StackTraceMessage = "Exception with stack trace"

// Frame is a single call-stack entry.
type Frame struct {
	// Function is the fully qualified function name
	// (e.g., "github.com/shinji-kodama/langtour/internal/failure.ThrowWithStackTrace").
	Function string `json:"function"`

	// File is the absolute source file path recorded at build time.
	File string `json:"file"`

	// Line is the source line within File.
	Line int `json:"line"`
}

// String renders the frame as "function(file.go:line)".
func (f Frame) String() string {
	return fmt.Sprintf("%s(%s:%d)", f.Function, filepath.Base(f.File), f.Line)
}

// stackTracer is implemented by errors from github.com/pkg/errors that
// carry a recorded call stack.
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// ThrowWithStackTrace unconditionally returns an error with
// StackTraceMessage. The stack is captured here, so this function is the
// innermost frame.
//
//go:noinline
func ThrowWithStackTrace() error {
	return errors.New(StackTraceMessage)
}

// StackFrames returns the call stack recorded by the first error in the
// chain that carries one, innermost frame first. Returns nil if no error
// in the chain recorded a stack.
func StackFrames(err error) []Frame {
	var st stackTracer
	if !errors.As(err, &st) {
		return nil
	}

	trace := st.StackTrace()
	frames := make([]Frame, 0, len(trace))
	for _, f := range trace {
		frames = append(frames, toFrame(f))
	}
	return frames
}

// toFrame resolves a program counter recorded by pkg/errors.
// Frame values are return addresses, so pc-1 lands inside the call
// instruction itself.
func toFrame(f errors.Frame) Frame {
	pc := uintptr(f) - 1
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return Frame{Function: "unknown", File: "unknown"}
	}
	file, line := fn.FileLine(pc)
	return Frame{Function: fn.Name(), File: file, Line: line}
}
