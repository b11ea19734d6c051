// Package wsclient implements a one-shot WebSocket echo client.
//
// The client connects, sends a single text frame, and then waits for the
// first of three events: a text message from the peer, a close frame from
// the peer, or a transport error. Each event is reported to a Listener as it
// happens; the first one also fills a single-slot handoff that the waiting
// caller receives. The wait is bounded, and running out of time is reported
// as its own Outcome kind instead of blocking forever.
//
// Callback ordering for one connection:
//
//	OnOpen → (OnText)* → OnClose | OnError
//
// OnOpen runs on the caller's goroutine before the read loop starts, so it
// always precedes every other callback. The remaining callbacks run on the
// read loop goroutine.
package wsclient
