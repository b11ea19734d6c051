// Package cli — websocket.go implements the "langtour websocket" command.
//
// The command connects to an echo endpoint, sends one text frame, and waits
// for the first message, close frame, or transport error, whichever comes
// first. The wait is bounded by --timeout; running out of time ends the
// command with ExitWebSocketTimeout instead of hanging.
package cli

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/langtour/internal/config"
	"github.com/shinji-kodama/langtour/internal/model"
	"github.com/shinji-kodama/langtour/internal/wsclient"
)

// webSocketFlags holds the flag values for the websocket command.
type webSocketFlags struct {
	url     string        // --url: ws:// or wss:// endpoint
	message string        // --message: text frame to send
	timeout time.Duration // --timeout: bound on the wait for a reply event
}

// NewWebSocketCommand creates the "websocket" cobra command.
func NewWebSocketCommand() *cobra.Command {
	flags := &webSocketFlags{}

	cmd := &cobra.Command{
		Use:   "websocket",
		Short: "Send one message to a WebSocket echo endpoint",
		Long: `Connect to a WebSocket endpoint, send a single text message, and wait for
the first reply message or close frame. Every event is printed as it
arrives. A transport error also ends the wait.

Examples:
  langtour websocket
  langtour websocket --url ws://localhost:8080/echo --timeout 2s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("url") {
				cfg.WebSocket.URL = flags.url
			}
			if cmd.Flags().Changed("message") {
				cfg.WebSocket.Message = flags.message
			}
			if cmd.Flags().Changed("timeout") {
				cfg.WebSocket.Timeout = flags.timeout.String()
			}
			if err := validateOverrides(cfg); err != nil {
				return err
			}
			return runWebSocket(cmd.Context(), streamsOf(cmd), cfg.WebSocket)
		},
	}

	cmd.Flags().StringVar(&flags.url, "url", wsclient.DefaultURL, "WebSocket endpoint (ws:// or wss://)")
	cmd.Flags().StringVar(&flags.message, "message", wsclient.DefaultMessage, "Text message to send")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", wsclient.DefaultTimeout, "Maximum wait for a reply or close")

	return cmd
}

// webSocketEventJSON is one listener event in the JSON output.
type webSocketEventJSON struct {
	Event   string `json:"event"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Error   string `json:"error,omitempty"`
}

// webSocketResultJSON is the JSON output structure of the websocket command.
type webSocketResultJSON struct {
	URL     string               `json:"url"`
	Events  []webSocketEventJSON `json:"events"`
	Outcome wsclient.Outcome     `json:"outcome"`
}

// eventLog is a Listener that records every event and, in text mode,
// prints it immediately. Callbacks arrive from the read loop goroutine,
// so access is serialized.
type eventLog struct {
	mu     sync.Mutex
	s      streams
	print  bool
	events []webSocketEventJSON
}

func (l *eventLog) record(e webSocketEventJSON, line string, toErr bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
	if !l.print {
		return
	}
	if toErr {
		fmt.Fprintln(l.s.err, line)
	} else {
		fmt.Fprintln(l.s.out, line)
	}
}

func (l *eventLog) OnOpen() {
	l.record(webSocketEventJSON{Event: "open"}, "WebSocket opened", false)
}

func (l *eventLog) OnText(data string) {
	l.record(webSocketEventJSON{Event: "message", Message: data},
		"Received message: "+data, false)
}

func (l *eventLog) OnError(err error) {
	l.record(webSocketEventJSON{Event: "error", Error: err.Error()},
		fmt.Sprintf("WebSocket error: %v", err), true)
}

func (l *eventLog) OnClose(code int, reason string) {
	l.record(webSocketEventJSON{Event: "close", Code: code, Reason: reason},
		fmt.Sprintf("WebSocket closed with status %d, reason: %s", code, reason), false)
}

func (l *eventLog) snapshot() []webSocketEventJSON {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]webSocketEventJSON, len(l.events))
	copy(out, l.events)
	return out
}

func runWebSocket(ctx context.Context, s streams, wc config.WebSocketConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}

	timeout, err := wc.TimeoutDuration()
	if err != nil {
		return model.WrapCLIError(model.ExitInvalidArgument, "invalid timeout", err)
	}

	events := &eventLog{s: s, print: !IsJSONOutput()}
	client := wsclient.NewClient(wsclient.Options{Timeout: timeout, Listener: events})

	VerboseLog("Connecting to %s (timeout %s)", wc.URL, timeout)
	out, err := client.SendAndWait(ctx, wc.URL, wc.Message)
	if err != nil {
		return model.WrapCLIError(model.ExitWebSocketError, "WebSocket session failed", err)
	}
	VerboseLog("Wait released by %s", out.Kind)

	if IsJSONOutput() {
		if err := printJSON(s.out, webSocketResultJSON{
			URL:     wc.URL,
			Events:  events.snapshot(),
			Outcome: out,
		}); err != nil {
			return err
		}
	}

	switch out.Kind {
	case wsclient.OutcomeError:
		return model.WrapCLIError(model.ExitWebSocketError, "WebSocket transport failed", out.Err)
	case wsclient.OutcomeTimeout:
		return model.NewCLIError(model.ExitWebSocketTimeout,
			fmt.Sprintf("no message or close frame received within %s", timeout))
	default:
		return nil
	}
}
