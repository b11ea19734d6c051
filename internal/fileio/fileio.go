// Package fileio implements a whole-file write followed by a whole-file read.
//
// WriteString always truncates: the file holds exactly the written content
// afterwards, whether it existed before or not. Errors are wrapped with the
// path and returned unchanged otherwise; there is no retry and no attempt to
// recover a partially written file.
package fileio

import (
	"fmt"
	"io"
	"os"

	"github.com/shinji-kodama/langtour/internal/failure"
)

// Defaults used by the fileio demo.
const (
	DefaultPath    = "example.txt"
	DefaultContent = "Hello, World!"
)

// filePerm is the mode for newly created files (rw-r--r--).
const filePerm = 0o644

// writableFile is the part of *os.File that WriteString uses.
type writableFile interface {
	io.StringWriter
	io.Closer
}

// openForWrite opens path truncated for writing. Tests replace it to inject
// write and close failures.
var openForWrite = func(path string) (writableFile, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
}

// WriteString writes content to path, creating the file if needed and
// replacing any previous content.
//
// The file handle is released before returning. If both the write and the
// close fail, the close error is attached to the write error as a
// suppressed error (see failure.SuppressedOf).
func WriteString(path, content string) (err error) {
	f, err := openForWrite(path)
	if err != nil {
		return fmt.Errorf("failed to open %s for writing: %w", path, err)
	}
	defer func() {
		closeErr := f.Close()
		if closeErr == nil {
			return
		}
		if err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, closeErr)
			return
		}
		primary := failure.WithSuppressed(err)
		primary.AddSuppressed(closeErr)
		err = primary
	}()

	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ReadString returns the entire content of path.
func ReadString(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// RoundTrip writes content to path and reads it back.
func RoundTrip(path, content string) (string, error) {
	if err := WriteString(path, content); err != nil {
		return "", err
	}
	return ReadString(path)
}
