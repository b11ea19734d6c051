package wsclient

// Listener receives connection events. Implementations must not block and
// must be safe for concurrent use: OnText, OnError and OnClose run on the
// read loop goroutine.
type Listener interface {
	// OnOpen is called once after the handshake succeeds.
	OnOpen()

	// OnText is called for every text message received before shutdown.
	OnText(data string)

	// OnError is called when the transport fails without a close frame.
	OnError(err error)

	// OnClose is called when the peer sends a close frame.
	OnClose(code int, reason string)
}

// ListenerFuncs adapts plain functions to the Listener interface.
// Nil fields are treated as no-ops, so callers only set what they need.
type ListenerFuncs struct {
	Open  func()
	Text  func(data string)
	Error func(err error)
	Close func(code int, reason string)
}

// OnOpen calls l.Open if set.
func (l ListenerFuncs) OnOpen() {
	if l.Open != nil {
		l.Open()
	}
}

// OnText calls l.Text if set.
func (l ListenerFuncs) OnText(data string) {
	if l.Text != nil {
		l.Text(data)
	}
}

// OnError calls l.Error if set.
func (l ListenerFuncs) OnError(err error) {
	if l.Error != nil {
		l.Error(err)
	}
}

// OnClose calls l.Close if set.
func (l ListenerFuncs) OnClose(code int, reason string) {
	if l.Close != nil {
		l.Close(code, reason)
	}
}
