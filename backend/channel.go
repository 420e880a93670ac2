package backend

import (
	"context"
	"errors"

	"github.com/kbukum/validator-gateway/protocol"
)

var (
	// ErrDisconnected is returned by Send while no connection is established.
	ErrDisconnected = errors.New("backend: not connected to validator")
	// ErrSendTimeout is returned when the outbound queue stays full for the
	// whole send timeout.
	ErrSendTimeout = errors.New("backend: send timed out")
	// ErrClosed is returned by Send after the channel was stopped.
	ErrClosed = errors.New("backend: channel closed")
)

// Listener receives what the validator sends back. Calls may arrive from any
// goroutine and must not block for long.
type Listener interface {
	// HandleResponse is called for every correlated message.
	HandleResponse(msg *protocol.Message)
	// HandleDisconnect is called once per lost connection.
	HandleDisconnect(err error)
	// HandleNotReady is called when the validator reports it has no usable state.
	HandleNotReady()
}

// Channel dispatches messages to the validator.
type Channel interface {
	// Send queues msg for delivery. It returns once msg is queued, not when a
	// response arrives.
	Send(ctx context.Context, msg *protocol.Message) error
	// Bind sets the listener. It must be called before the channel starts.
	Bind(l Listener)
}
