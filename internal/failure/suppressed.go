package failure

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Fixed messages used by ThrowWithSuppressed.
const (
	PrimaryMessage    = "Primary Exception"
	SuppressedMessage = "Suppressed Exception"
)

// Suppressing is a primary error with secondary errors attached for
// diagnostics. Error, Unwrap, errors.Is and errors.As all behave as if
// the primary error were returned directly.
//
// Suppressing is not safe for concurrent AddSuppressed calls.
type Suppressing struct {
	err        error
	suppressed []error
}

// WithSuppressed wraps err so that secondary errors can be attached to it.
// Returns nil if err is nil.
func WithSuppressed(err error) *Suppressing {
	if err == nil {
		return nil
	}
	return &Suppressing{err: err}
}

// AddSuppressed appends err to the suppressed list. Attachment order is
// kept and duplicates are allowed. A nil error and the Suppressing itself
// are ignored.
func (s *Suppressing) AddSuppressed(err error) {
	if err == nil || err == error(s) {
		return
	}
	s.suppressed = append(s.suppressed, err)
}

// Suppressed returns a copy of the attached errors in attachment order.
func (s *Suppressing) Suppressed() []error {
	out := make([]error, len(s.suppressed))
	copy(out, s.suppressed)
	return out
}

// Error returns the primary error's message only.
func (s *Suppressing) Error() string {
	return s.err.Error()
}

// Unwrap returns the primary error.
func (s *Suppressing) Unwrap() error {
	return s.err
}

// Format implements fmt.Formatter. %+v prints the primary error with its
// stack (when it has one) followed by one "Suppressed: ..." line per
// attached error; other verbs print the primary message.
func (s *Suppressing) Format(st fmt.State, verb rune) {
	switch verb {
	case 'v':
		if st.Flag('+') {
			fmt.Fprintf(st, "%+v", s.err)
			for _, e := range s.suppressed {
				fmt.Fprintf(st, "\nSuppressed: %v", e)
			}
			return
		}
		fallthrough
	case 's':
		_, _ = io.WriteString(st, s.Error())
	case 'q':
		fmt.Fprintf(st, "%q", s.Error())
	}
}

// SuppressedOf returns the suppressed errors of the first Suppressing in
// err's chain, or nil if there is none.
func SuppressedOf(err error) []error {
	var s *Suppressing
	if !errors.As(err, &s) {
		return nil
	}
	return s.Suppressed()
}

// ThrowWithSuppressed builds the primary error, raises and catches a
// secondary error in a nested scope, attaches it, then returns the primary.
func ThrowWithSuppressed() error {
	primary := WithSuppressed(errors.New(PrimaryMessage))

	func() {
		if err := raise(SuppressedMessage); err != nil {
			primary.AddSuppressed(err)
		}
	}()

	return primary
}

func raise(message string) error {
	return errors.New(message)
}
