package wsclient

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// Defaults used by the websocket demo.
const (
	DefaultURL     = "wss://echo.websocket.org"
	DefaultMessage = "Hello, WebSocket!"
	DefaultTimeout = 10 * time.Second
)

const (
	// defaultHandshakeTimeout bounds the opening handshake.
	defaultHandshakeTimeout = 10 * time.Second

	// closeGrace is how long shutdown waits for the peer to answer our
	// close frame before dropping the connection.
	closeGrace = time.Second
)

// Options configures a Client. Zero values select the defaults.
type Options struct {
	// Timeout bounds the wait for the first message, close, or error
	// after the text frame is sent. Defaults to DefaultTimeout.
	Timeout time.Duration

	// HandshakeTimeout bounds the opening handshake.
	HandshakeTimeout time.Duration

	// Listener receives connection events. Defaults to a no-op listener.
	Listener Listener
}

// Client sends one text frame per SendAndWait call and waits for the
// first reply event. A Client holds no connection state between calls and
// can be reused.
type Client struct {
	dialer   *websocket.Dialer
	timeout  time.Duration
	listener Listener
}

// NewClient creates a Client from opts.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.HandshakeTimeout <= 0 {
		opts.HandshakeTimeout = defaultHandshakeTimeout
	}
	if opts.Listener == nil {
		opts.Listener = ListenerFuncs{}
	}

	return &Client{
		dialer: &websocket.Dialer{
			Proxy:            websocket.DefaultDialer.Proxy,
			HandshakeTimeout: opts.HandshakeTimeout,
		},
		timeout:  opts.Timeout,
		listener: opts.Listener,
	}
}

// SendAndWait connects to url, sends text as a single text frame, and waits
// for the first of: a text message, a close frame, a transport error, or
// the timeout. The connection is closed before returning.
//
// A failed handshake or a cancelled ctx is returned as an error. Every
// other ending, including the timeout, is an Outcome.
func (c *Client) SendAndWait(ctx context.Context, url, text string) (Outcome, error) {
	conn, _, err := c.dialer.DialContext(ctx, url, nil)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to connect to %s: %w", url, err)
	}

	s := &session{
		conn:     conn,
		listener: c.listener,
		gate:     newHandoff(),
		readDone: make(chan struct{}),
	}

	// OnOpen must run before the read loop starts; that is what makes it
	// precede every other callback.
	s.listener.OnOpen()
	go s.readLoop()

	if err := conn.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		s.fail(fmt.Errorf("failed to send message: %w", err))
	}

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	var (
		out    Outcome
		ctxErr error
	)
	select {
	case out = <-s.gate.wait():
	case <-timer.C:
		out = Outcome{Kind: OutcomeTimeout}
	case <-ctx.Done():
		ctxErr = ctx.Err()
	}

	s.shutdown()
	if ctxErr != nil {
		return Outcome{}, ctxErr
	}
	return out, nil
}

// session is the state of one SendAndWait call.
type session struct {
	conn     *websocket.Conn
	listener Listener
	gate     *handoff

	// closing is set once the caller has stopped waiting. Errors seen by
	// the read loop after that point are the result of our own shutdown
	// and are not reported.
	closing  atomic.Bool
	readDone chan struct{}
}

// readLoop delivers events until the connection fails or is closed.
func (s *session) readLoop() {
	defer close(s.readDone)

	for {
		messageType, data, err := s.conn.ReadMessage()
		if err != nil {
			if s.closing.Load() {
				return
			}
			var closeErr *websocket.CloseError
			// 1006 is never sent on the wire; gorilla reports a dropped
			// connection that way, which is a transport error, not a close.
			if errors.As(err, &closeErr) && closeErr.Code != websocket.CloseAbnormalClosure {
				s.listener.OnClose(closeErr.Code, closeErr.Text)
				s.gate.release(Outcome{
					Kind:        OutcomeClosed,
					CloseCode:   closeErr.Code,
					CloseReason: closeErr.Text,
				})
				return
			}
			s.fail(err)
			return
		}

		if messageType != websocket.TextMessage || s.closing.Load() {
			continue
		}
		text := string(data)
		s.listener.OnText(text)
		s.gate.release(Outcome{Kind: OutcomeMessage, Message: text})
	}
}

// fail reports err and releases the wait with it.
func (s *session) fail(err error) {
	s.listener.OnError(err)
	s.gate.release(Outcome{Kind: OutcomeError, Err: err})
}

// shutdown sends a normal close frame, gives the peer closeGrace to answer,
// then drops the connection and waits for the read loop to exit.
func (s *session) shutdown() {
	s.closing.Store(true)

	deadline := time.Now().Add(closeGrace)
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	// The peer may already be gone; a failed close frame changes nothing.
	_ = s.conn.WriteControl(websocket.CloseMessage, msg, deadline)

	select {
	case <-s.readDone:
	case <-time.After(closeGrace):
	}
	_ = s.conn.Close()
	<-s.readDone
}
