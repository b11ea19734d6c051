package wsclient

import "sync"

// OutcomeKind names what ended the wait in SendAndWait.
type OutcomeKind string

const (
	// OutcomeMessage means a text message arrived first.
	OutcomeMessage OutcomeKind = "message"

	// OutcomeClosed means the peer sent a close frame first.
	OutcomeClosed OutcomeKind = "closed"

	// OutcomeError means the transport failed first.
	OutcomeError OutcomeKind = "error"

	// OutcomeTimeout means nothing arrived within the configured wait.
	OutcomeTimeout OutcomeKind = "timeout"
)

// String returns the string representation of OutcomeKind.
func (k OutcomeKind) String() string {
	return string(k)
}

// Outcome is the single event that released the wait.
type Outcome struct {
	Kind OutcomeKind `json:"kind"`

	// Message is set for OutcomeMessage.
	Message string `json:"message,omitempty"`

	// CloseCode and CloseReason are set for OutcomeClosed.
	CloseCode   int    `json:"closeCode,omitempty"`
	CloseReason string `json:"closeReason,omitempty"`

	// Err is set for OutcomeError.
	Err error `json:"-"`
}

// handoff is a one-shot gate. release may be called any number of times
// from any goroutine; only the first call delivers its Outcome.
type handoff struct {
	once sync.Once
	ch   chan Outcome
}

func newHandoff() *handoff {
	return &handoff{ch: make(chan Outcome, 1)}
}

// release delivers o if no Outcome has been delivered yet and reports
// whether this call won.
func (h *handoff) release(o Outcome) bool {
	won := false
	h.once.Do(func() {
		h.ch <- o
		won = true
	})
	return won
}

// wait returns the channel that receives the winning Outcome.
func (h *handoff) wait() <-chan Outcome {
	return h.ch
}
