package dispatcher

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/validator-gateway/backend"
	gwerrors "github.com/kbukum/validator-gateway/errors"
	"github.com/kbukum/validator-gateway/logger"
	"github.com/kbukum/validator-gateway/observability"
	"github.com/kbukum/validator-gateway/protocol"
	"github.com/kbukum/validator-gateway/resilience"
)

// outcome is the single resolution of one attempt: a response or an error.
type outcome struct {
	msg *protocol.Message
	err *gwerrors.GatewayError
}

type pendingRequest struct {
	result chan outcome
	timer  *time.Timer
}

// Dispatcher correlates requests sent over a backend.Channel with the
// responses that come back on it.
type Dispatcher struct {
	channel backend.Channel
	policy  RetryPolicy
	log     *logger.Logger
	metrics *observability.Metrics
	newID   func() string

	mu      sync.Mutex
	pending map[string]*pendingRequest
}

var _ backend.Listener = (*Dispatcher)(nil)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithMetrics records attempts, retries and pending requests on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

// WithIDGenerator replaces the uuid v4 correlation id source.
func WithIDGenerator(fn func() string) Option {
	return func(d *Dispatcher) { d.newID = fn }
}

// New creates a Dispatcher and binds it as the listener of ch.
func New(ch backend.Channel, policy RetryPolicy, log *logger.Logger, opts ...Option) *Dispatcher {
	policy.ApplyDefaults()
	d := &Dispatcher{
		channel: ch,
		policy:  policy,
		log:     log.WithComponent("dispatcher"),
		newID:   uuid.NewString,
		pending: make(map[string]*pendingRequest),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.metrics == nil {
		d.metrics = observability.MustMetrics(observability.Meter("dispatcher"))
	}
	ch.Bind(d)
	return d
}

// Pending returns the number of attempts awaiting resolution.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Send delivers content as a msgType request and waits for its response.
// Full queues and not-ready validators are retried with backoff; every other
// failure is returned at once as a *errors.GatewayError. The returned
// response has a status other than QUEUE_FULL and NOT_READY.
//
// Cancelling ctx stops the wait but not the attempt in flight, which is still
// resolved by its response or its timer.
func (d *Dispatcher) Send(ctx context.Context, msgType protocol.MessageType, content []byte) (*protocol.Response, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanDispatch,
		trace.WithAttributes(attribute.String(observability.AttrMessageType, msgType.String())),
	)
	defer span.End()

	cfg := d.policy.retryConfig()
	cfg.OnRetry = func(attempt int, err error, backoff time.Duration) {
		reason := gwerrors.Wrap(err).Kind.String()
		d.metrics.RecordRetry(ctx, msgType.String(), reason)
		d.log.WithContext(ctx).Info("retrying request",
			logger.RetryFields(attempt, backoff, nil),
			logger.Fields(logger.FieldMessageType, msgType.String(), logger.FieldStatus, reason),
		)
	}

	resp, err := resilience.Retry(ctx, cfg, func(attempt int) (*protocol.Response, error) {
		span.SetAttributes(attribute.Int(observability.AttrAttempt, attempt))
		return d.attempt(ctx, msgType, content)
	})
	if err != nil {
		gwErr, ok := gwerrors.AsGatewayError(err)
		if !ok {
			gwErr = gwerrors.New(gwerrors.ValidatorTimedOut).WithCause(err)
		}
		span.RecordError(gwErr)
		span.SetStatus(codes.Error, gwErr.Kind.String())
		return nil, gwErr
	}
	return resp, nil
}

// attempt runs one correlated round trip.
func (d *Dispatcher) attempt(ctx context.Context, msgType protocol.MessageType, content []byte) (*protocol.Response, error) {
	id := d.newID()
	req := &pendingRequest{result: make(chan outcome, 1)}

	d.mu.Lock()
	d.pending[id] = req
	req.timer = time.AfterFunc(d.policy.TimeoutPerAttempt, func() { d.expire(id) })
	d.mu.Unlock()
	d.metrics.AddPending(ctx, 1)

	started := time.Now()
	msg := &protocol.Message{MessageType: msgType, CorrelationID: id, Content: content}
	if err := d.channel.Send(ctx, msg); err != nil {
		d.resolve(id, outcome{err: d.sendError(ctx, err)})
	}

	select {
	case out := <-req.result:
		label := "response"
		if out.err != nil {
			label = out.err.Kind.String()
		}
		d.metrics.RecordAttempt(ctx, msgType.String(), label, time.Since(started))
		if out.err != nil {
			return nil, out.err
		}
		return interpret(msgType, out.msg)
	case <-ctx.Done():
		d.log.WithContext(ctx).Debug("caller stopped waiting", logger.MessageFields(id, msgType.String()))
		return nil, gwerrors.New(gwerrors.ValidatorTimedOut).WithCause(ctx.Err())
	}
}

func (d *Dispatcher) sendError(ctx context.Context, err error) *gwerrors.GatewayError {
	switch {
	case stderrors.Is(err, backend.ErrSendTimeout):
		return gwerrors.New(gwerrors.SendBackoffTimeout).WithCause(err)
	case stderrors.Is(err, backend.ErrDisconnected), stderrors.Is(err, backend.ErrClosed):
		return gwerrors.New(gwerrors.ValidatorDisconnected).WithCause(err)
	case ctx.Err() != nil:
		return gwerrors.New(gwerrors.ValidatorTimedOut).WithCause(err)
	default:
		return gwerrors.New(gwerrors.UnknownValidator).WithCause(err)
	}
}

// resolve removes id from the table and hands out to its waiter. Only the
// first resolution of an id succeeds.
func (d *Dispatcher) resolve(id string, out outcome) bool {
	d.mu.Lock()
	req, ok := d.pending[id]
	if ok {
		delete(d.pending, id)
	}
	d.mu.Unlock()
	if !ok {
		return false
	}

	req.timer.Stop()
	d.metrics.AddPending(context.Background(), -1)
	req.result <- out
	return true
}

func (d *Dispatcher) expire(id string) {
	if d.resolve(id, outcome{err: gwerrors.New(gwerrors.ValidatorTimedOut)}) {
		d.log.Warn("validator response timed out", logger.Fields(
			logger.FieldCorrelationID, id,
			"timeout_ms", d.policy.TimeoutPerAttempt.Milliseconds(),
		))
	}
}

// HandleResponse resolves the request waiting on msg's correlation id.
func (d *Dispatcher) HandleResponse(msg *protocol.Message) {
	if d.resolve(msg.CorrelationID, outcome{msg: msg}) {
		return
	}
	d.metrics.RecordLateResponse(context.Background(), msg.MessageType.String())
	d.log.Debug("discarding response without pending request",
		logger.MessageFields(msg.CorrelationID, msg.MessageType.String()))
}

// HandleDisconnect fails every pending request with ValidatorDisconnected.
func (d *Dispatcher) HandleDisconnect(err error) {
	n := d.resolveAll(func() *gwerrors.GatewayError {
		return gwerrors.New(gwerrors.ValidatorDisconnected).WithCause(err)
	})
	if n > 0 {
		d.log.Warn("validator disconnected with requests in flight", logger.Fields(
			logger.FieldPending, n,
			logger.FieldError, fmt.Sprint(err),
		))
	}
}

// HandleNotReady fails every pending request with ValidatorNotReady, which
// Send retries.
func (d *Dispatcher) HandleNotReady() {
	n := d.resolveAll(func() *gwerrors.GatewayError {
		return gwerrors.New(gwerrors.ValidatorNotReady)
	})
	d.log.Debug("validator not ready", logger.Fields(logger.FieldPending, n))
}

// resolveAll swaps out the whole table under the lock, then resolves each
// entry with a fresh error from newErr.
func (d *Dispatcher) resolveAll(newErr func() *gwerrors.GatewayError) int {
	d.mu.Lock()
	dropped := d.pending
	d.pending = make(map[string]*pendingRequest)
	d.mu.Unlock()

	for _, req := range dropped {
		req.timer.Stop()
		req.result <- outcome{err: newErr()}
	}
	if len(dropped) > 0 {
		d.metrics.AddPending(context.Background(), -int64(len(dropped)))
	}
	return len(dropped)
}

// interpret turns a correlated response into a Response, or into the error
// its status stands for when that status is handled by the dispatcher.
func interpret(msgType protocol.MessageType, msg *protocol.Message) (*protocol.Response, error) {
	if want := msgType.ResponseType(); msg.MessageType != want {
		return nil, gwerrors.New(gwerrors.ValidatorResponseInvalid).
			WithCause(fmt.Errorf("expected %s, got %s", want, msg.MessageType))
	}

	status, err := protocol.PeekStatus(msg.Content)
	if err != nil {
		return nil, gwerrors.New(gwerrors.ValidatorResponseInvalid).WithCause(err)
	}

	switch status {
	case protocol.StatusQueueFull:
		return nil, gwerrors.New(gwerrors.BatchQueueFull)
	case protocol.StatusNotReady:
		return nil, gwerrors.New(gwerrors.ValidatorNotReady)
	}
	return &protocol.Response{Type: msg.MessageType, Status: status, Content: msg.Content}, nil
}

// retryable selects the failures Send repeats.
func retryable(err error) bool {
	return gwerrors.Is(err, gwerrors.BatchQueueFull) || gwerrors.Is(err, gwerrors.ValidatorNotReady)
}
