package backend

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kbukum/validator-gateway/component"
	"github.com/kbukum/validator-gateway/logger"
	"github.com/kbukum/validator-gateway/protocol"
	"github.com/kbukum/validator-gateway/resilience"
)

// StreamChannel is a Channel over a single TCP connection to the validator.
type StreamChannel struct {
	cfg      Config
	log      *logger.Logger
	listener Listener

	outbound  chan frame
	connected atomic.Bool
	closed    atomic.Bool

	mu     sync.Mutex
	conn   net.Conn
	gen    uint64 // bumped per connection, guarded by mu
	cancel context.CancelFunc
	done   chan struct{}
}

// frame is a queued message bound to the connection it was accepted for.
// A writer only sends frames of its own connection.
type frame struct {
	gen uint64
	msg *protocol.Message
}

var _ Channel = (*StreamChannel)(nil)
var _ component.Component = (*StreamChannel)(nil)

// NewStreamChannel creates a channel. It does not connect until Start.
func NewStreamChannel(cfg Config, log *logger.Logger) *StreamChannel {
	cfg.ApplyDefaults()
	return &StreamChannel{
		cfg:      cfg,
		log:      log.WithComponent("backend"),
		outbound: make(chan frame, cfg.SendQueue),
	}
}

func (s *StreamChannel) Bind(l Listener) { s.listener = l }

// Connected reports whether a connection is currently established.
func (s *StreamChannel) Connected() bool { return s.connected.Load() }

// Send queues msg on the current connection.
func (s *StreamChannel) Send(ctx context.Context, msg *protocol.Message) error {
	if s.closed.Load() {
		return ErrClosed
	}
	gen, ok := s.generation()
	if !ok {
		return ErrDisconnected
	}
	return s.enqueue(ctx, frame{gen: gen, msg: msg})
}

// generation returns the current connection's generation, or false while
// disconnected.
func (s *StreamChannel) generation() (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen, s.conn != nil
}

func (s *StreamChannel) enqueue(ctx context.Context, f frame) error {
	select {
	case s.outbound <- f:
		return nil
	default:
	}

	timer := time.NewTimer(s.cfg.SendTimeout)
	defer timer.Stop()
	select {
	case s.outbound <- f:
		return nil
	case <-timer.C:
		return ErrSendTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *StreamChannel) Name() string { return "backend" }

// Start launches the connection loop and returns immediately. Requests made
// before the first connection succeeds fail with ErrDisconnected.
func (s *StreamChannel) Start(ctx context.Context) error {
	if s.listener == nil {
		return errors.New("backend: no listener bound")
	}
	addr, err := s.cfg.HostPort()
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.mu.Lock()
	s.cancel = cancel
	s.done = make(chan struct{})
	s.mu.Unlock()

	go s.run(runCtx, addr)
	return nil
}

// Stop closes the connection and waits for the connection loop to exit.
func (s *StreamChannel) Stop(ctx context.Context) error {
	s.closed.Store(true)

	s.mu.Lock()
	cancel, done, conn := s.cancel, s.done, s.conn
	s.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()
	if conn != nil {
		_ = conn.Close()
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("backend: stop: %w", ctx.Err())
	}
}

func (s *StreamChannel) Health(_ context.Context) component.Health {
	h := component.Health{Name: s.Name(), Status: component.StatusHealthy}
	if !s.connected.Load() {
		h.Status = component.StatusUnhealthy
		h.Message = "not connected to " + s.cfg.Address
	}
	return h
}

func (s *StreamChannel) Describe() component.Description {
	return component.Description{
		Name:    "Validator",
		Type:    "backend",
		Details: fmt.Sprintf("%s queue=%d", s.cfg.Address, s.cfg.SendQueue),
	}
}

func (s *StreamChannel) run(ctx context.Context, addr string) {
	defer close(s.done)

	redial := resilience.RetryConfig{
		MaxAttempts:    -1,
		InitialBackoff: s.cfg.ReconnectBackoff,
		MaxBackoff:     s.cfg.MaxReconnectBackoff,
		Jitter:         0.1,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			s.log.Warn("validator unreachable, retrying",
				logger.RetryFields(attempt, backoff, err),
				logger.Fields(logger.FieldAddress, s.cfg.Address),
			)
		},
	}
	dialer := &net.Dialer{Timeout: s.cfg.DialTimeout}

	for ctx.Err() == nil {
		conn, err := resilience.Retry(ctx, redial, func(int) (net.Conn, error) {
			return dialer.DialContext(ctx, "tcp", addr)
		})
		if err != nil {
			return
		}

		s.log.Info("connected to validator", logger.Fields(logger.FieldAddress, s.cfg.Address))
		err = s.serve(ctx, conn)
		if ctx.Err() != nil {
			s.listener.HandleDisconnect(ErrClosed)
			return
		}
		s.log.Warn("validator connection lost", logger.Fields(
			logger.FieldAddress, s.cfg.Address,
			logger.FieldError, err.Error(),
		))
		s.listener.HandleDisconnect(err)

		if err := resilience.Sleep(ctx, s.cfg.ReconnectBackoff); err != nil {
			return
		}
	}
}

// serve owns conn until it fails. The returned error is the read or write
// failure that ended it.
func (s *StreamChannel) serve(ctx context.Context, conn net.Conn) error {
	s.drain()
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.conn = conn
	s.mu.Unlock()
	s.connected.Store(true)

	writerDone := make(chan error, 1)
	stop := make(chan struct{})
	go func() { writerDone <- s.writeLoop(conn, gen, stop) }()

	readErr := s.readLoop(conn, gen)

	s.mu.Lock()
	s.conn = nil
	s.mu.Unlock()
	s.connected.Store(false)
	close(stop)
	_ = conn.Close()
	writeErr := <-writerDone
	s.drain()

	if writeErr != nil {
		return writeErr
	}
	return readErr
}

func (s *StreamChannel) writeLoop(conn net.Conn, gen uint64, stop <-chan struct{}) error {
	w := bufio.NewWriter(conn)
	for {
		select {
		case <-stop:
			return nil
		case f := <-s.outbound:
			if f.gen != gen {
				s.log.Debug("dropping frame queued for a previous connection",
					logger.MessageFields(f.msg.CorrelationID, f.msg.MessageType.String()))
				continue
			}
			if err := WriteFrame(w, f.msg); err != nil {
				_ = conn.Close()
				return fmt.Errorf("backend: write: %w", err)
			}
			if len(s.outbound) == 0 {
				if err := w.Flush(); err != nil {
					_ = conn.Close()
					return fmt.Errorf("backend: flush: %w", err)
				}
			}
		}
	}
}

func (s *StreamChannel) readLoop(conn net.Conn, gen uint64) error {
	r := bufio.NewReader(conn)
	for {
		msg, err := ReadFrame(r, s.cfg.MaxFrameSize)
		if err != nil {
			return err
		}

		switch msg.MessageType {
		case protocol.PingRequest:
			s.reply(frame{gen: gen, msg: msg.Reply(nil)})
		case protocol.ValidatorNotReady:
			s.log.Debug("validator not ready")
			s.listener.HandleNotReady()
		default:
			s.listener.HandleResponse(msg)
		}
	}
}

// reply queues a keepalive answer without blocking the read loop.
func (s *StreamChannel) reply(f frame) {
	select {
	case s.outbound <- f:
	default:
		s.log.Warn("outbound queue full, ping response dropped", logger.Fields(
			logger.FieldCorrelationID, f.msg.CorrelationID,
		))
	}
}

// drain discards frames queued for a connection that no longer exists.
// Their requests have been resolved as disconnected.
func (s *StreamChannel) drain() {
	for {
		select {
		case <-s.outbound:
		default:
			return
		}
	}
}
