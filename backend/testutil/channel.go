// Package testutil provides a scripted in-memory backend.Channel.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/kbukum/validator-gateway/backend"
	"github.com/kbukum/validator-gateway/protocol"
)

// Action is what the scripted validator does with one sent message.
type Action struct {
	// Content is the response body. Ignored when Drop is set.
	Content []byte
	// Delay postpones the response.
	Delay time.Duration
	// Drop sends no response at all.
	Drop bool
	// Err is returned from Send instead of accepting the message.
	Err error
	// Type overrides the response message type.
	Type protocol.MessageType
}

// Respond replies immediately with content.
func Respond(content []byte) Action { return Action{Content: content} }

// RespondStatus replies with a response that carries only status.
func RespondStatus(status protocol.ResponseStatus) Action {
	return Respond((&protocol.StatusOnlyResponse{Status: status}).Marshal())
}

// RespondAfter replies with content after d.
func RespondAfter(d time.Duration, content []byte) Action {
	return Action{Content: content, Delay: d}
}

// Drop accepts the message and never replies.
func Drop() Action { return Action{Drop: true} }

// Fail rejects the message with err.
func Fail(err error) Action { return Action{Err: err} }

// Handler decides the action for the attempt-th message (1-based).
type Handler func(attempt int, msg *protocol.Message) Action

// Sequence plays actions in order and repeats the last one.
func Sequence(actions ...Action) Handler {
	return func(attempt int, _ *protocol.Message) Action {
		if attempt > len(actions) {
			return actions[len(actions)-1]
		}
		return actions[attempt-1]
	}
}

// Channel is a backend.Channel whose validator is a Handler.
type Channel struct {
	mu       sync.Mutex
	handler  Handler
	listener backend.Listener
	sent     []*protocol.Message
	sentAt   []time.Time
	wg       sync.WaitGroup
}

var _ backend.Channel = (*Channel)(nil)

// NewChannel creates a channel driven by handler.
func NewChannel(handler Handler) *Channel {
	return &Channel{handler: handler}
}

func (c *Channel) Bind(l backend.Listener) {
	c.mu.Lock()
	c.listener = l
	c.mu.Unlock()
}

func (c *Channel) Send(_ context.Context, msg *protocol.Message) error {
	c.mu.Lock()
	c.sent = append(c.sent, msg)
	c.sentAt = append(c.sentAt, time.Now())
	attempt := len(c.sent)
	handler, listener := c.handler, c.listener
	c.mu.Unlock()

	action := handler(attempt, msg)
	if action.Err != nil {
		return action.Err
	}
	if action.Drop {
		return nil
	}

	reply := msg.Reply(action.Content)
	if action.Type != protocol.DefaultMessageType {
		reply.MessageType = action.Type
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if action.Delay > 0 {
			time.Sleep(action.Delay)
		}
		listener.HandleResponse(reply)
	}()
	return nil
}

// Disconnect signals a lost connection to the listener.
func (c *Channel) Disconnect(err error) {
	c.listenerOf().HandleDisconnect(err)
}

// NotReady signals the global not-ready broadcast to the listener.
func (c *Channel) NotReady() {
	c.listenerOf().HandleNotReady()
}

// Deliver hands msg to the listener as if the validator had sent it.
func (c *Channel) Deliver(msg *protocol.Message) {
	c.listenerOf().HandleResponse(msg)
}

// Sent returns every message passed to Send, in order.
func (c *Channel) Sent() []*protocol.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*protocol.Message(nil), c.sent...)
}

// SentAt returns the time of each Send call, in order.
func (c *Channel) SentAt() []time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Time(nil), c.sentAt...)
}

// Attempts returns the number of Send calls.
func (c *Channel) Attempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sent)
}

// Wait blocks until every scheduled response has been delivered.
func (c *Channel) Wait() {
	c.wg.Wait()
}

func (c *Channel) listenerOf() backend.Listener {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listener
}
