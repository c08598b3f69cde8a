package protocol

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/wagiedev/webostv-go/internal/errors"
)

const (
	// DefaultTimeout is the default wait for a blocking request and for
	// each registration milestone.
	DefaultTimeout = 60 * time.Second

	// defaultSweepMaxAge is how long an unanswered one-shot waiter stays
	// registered before the eviction sweep removes it.
	defaultSweepMaxAge = 60 * time.Second
)

// Transport defines the minimal interface needed for session operations.
//
// This interface is satisfied by transport.WebSocket but allows for testing
// with mock transports.
type Transport interface {
	Start(ctx context.Context) error
	ReadMessages(ctx context.Context) (<-chan map[string]any, <-chan error)
	SendMessage(ctx context.Context, data []byte) error
	Close() error
}

// Handler is invoked with each inbound message for a correlation id.
//
// Handlers run on the session's single dispatch goroutine: a handler that
// blocks delays delivery of subsequent frames, so long work should be
// handed off by the handler itself.
type Handler func(msg *Message)

// waiter is one registry entry awaiting inbound messages for its id.
type waiter struct {
	handle Handler

	// createdAt is zero for subscriptions, which are exempt from the
	// stale-entry sweep.
	createdAt time.Time

	// subscription keeps the entry registered across responses until an
	// explicit unsubscribe, instead of one-shot removal.
	subscription bool
}

// Session multiplexes request/response and subscription exchanges over a
// single TV connection.
//
// The Session handles:
//   - Sending messages with unique correlation ids
//   - Routing inbound frames to the waiter registered for their id
//   - One-shot waiter removal and stale-waiter eviction
//   - The pairing handshake (see Register)
//
// All inbound frames are processed strictly in arrival order by one
// dispatch goroutine started by Connect.
type Session struct {
	log       *slog.Logger
	transport Transport

	// Correlation registry
	waitersMu   sync.Mutex
	waiters     map[string]*waiter
	subscribers map[string]string // correlation id -> uri

	// Pairing credential, set once registration succeeds
	keyMu     sync.RWMutex
	clientKey string

	// Eviction policy; now is swappable for tests
	maxAge time.Duration
	now    func() time.Time

	// Connect/Close lifecycle
	stateMu    sync.Mutex
	started    bool
	connecting bool

	errMu    sync.RWMutex
	fatalErr error

	closeOnce sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

// NewSession creates a session over the given transport.
//
// The logger receives debug, info, warn, and error messages during protocol
// operations. Connect must be called before any request is issued.
func NewSession(log *slog.Logger, transport Transport) *Session {
	return &Session{
		log:         log.With("component", "session"),
		transport:   transport,
		waiters:     make(map[string]*waiter, 10),
		subscribers: make(map[string]string, 10),
		maxAge:      defaultSweepMaxAge,
		now:         time.Now,
		done:        make(chan struct{}),
	}
}

// ClientKey returns the pairing credential, or "" before registration.
func (s *Session) ClientKey() string {
	s.keyMu.RLock()
	defer s.keyMu.RUnlock()

	return s.clientKey
}

// SetClientKey stores a pairing credential for re-authentication.
func (s *Session) SetClientKey(key string) {
	s.keyMu.Lock()
	defer s.keyMu.Unlock()

	s.clientKey = key
}

// NextID returns a fresh correlation id, unique within the session.
func (s *Session) NextID() string {
	return ulid.Make().String()
}

// Connect establishes the transport connection and starts the dispatch
// goroutine. Calling Connect while already connected, or while another
// connection attempt is in flight, is a no-op.
func (s *Session) Connect(ctx context.Context) error {
	s.stateMu.Lock()

	if s.started || s.connecting {
		s.stateMu.Unlock()

		return nil
	}

	s.connecting = true
	s.stateMu.Unlock()

	defer func() {
		s.stateMu.Lock()
		s.connecting = false
		s.stateMu.Unlock()
	}()

	if err := s.transport.Start(ctx); err != nil {
		return err
	}

	messages, errs := s.transport.ReadMessages(ctx)

	s.wg.Add(1)

	go s.readLoop(ctx, messages, errs)

	s.stateMu.Lock()
	s.started = true
	s.stateMu.Unlock()

	s.log.Info("Session connected")

	return nil
}

// Close tears down the session.
//
// The transport is closed first, which ends the dispatch goroutine; Close
// waits for it before returning. Pending one-shot waiters are failed with
// ErrSessionClosed rather than left to time out. Safe to call multiple times.
func (s *Session) Close() error {
	s.stateMu.Lock()

	if !s.started {
		s.stateMu.Unlock()

		return nil
	}

	s.started = false
	s.stateMu.Unlock()

	s.log.Debug("Closing session")

	err := s.transport.Close()

	s.closeDone()
	s.wg.Wait()

	// Abandon every remaining registry entry.
	s.waitersMu.Lock()
	s.waiters = make(map[string]*waiter, 10)
	s.subscribers = make(map[string]string, 10)
	s.waitersMu.Unlock()

	s.log.Info("Session closed")

	return err
}

// Done returns a channel that is closed when the session stops.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// FatalError returns the transport error that ended the dispatch loop, if any.
func (s *Session) FatalError() error {
	s.errMu.RLock()
	defer s.errMu.RUnlock()

	return s.fatalErr
}

func (s *Session) closeDone() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

func (s *Session) setFatalError(err error) {
	s.errMu.Lock()

	if s.fatalErr == nil {
		s.fatalErr = err
	}

	s.errMu.Unlock()

	s.closeDone()
}

// Send writes one message to the TV, connecting first if needed.
func (s *Session) Send(ctx context.Context, msg *Message) error {
	if err := s.Connect(ctx); err != nil {
		return err
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	return s.transport.SendMessage(ctx, data)
}

// SendWithHandler registers handler for the message's correlation id and
// then sends it. One-shot waiters carry a creation timestamp and are
// subject to the eviction sweep; subscription waiters persist until
// RemoveWaiter. The waiter is removed again if the send fails.
func (s *Session) SendWithHandler(
	ctx context.Context,
	msg *Message,
	handler Handler,
	subscription bool,
) error {
	w := &waiter{handle: handler, subscription: subscription}
	if !subscription {
		w.createdAt = s.now()
	}

	s.addWaiter(msg.ID, w)

	if err := s.Send(ctx, msg); err != nil {
		s.RemoveWaiter(msg.ID)

		return err
	}

	return nil
}

// Request sends a one-shot request and blocks until the response arrives,
// the timeout expires, the context is cancelled, or the session closes.
//
// A timeout of zero uses DefaultTimeout. The returned message may be a
// protocol-level error frame; callers distinguish via Message.IsError.
func (s *Session) Request(
	ctx context.Context,
	uri string,
	payload map[string]any,
	timeout time.Duration,
) (*Message, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	id := s.NextID()

	s.log.Debug("Sending request", "id", id, "uri", uri)

	response := make(chan *Message, 1)

	msg := &Message{Type: TypeRequest, ID: id, URI: uri, Payload: payload}

	err := s.SendWithHandler(ctx, msg, func(m *Message) {
		select {
		case response <- m:
		default:
		}
	}, false)
	if err != nil {
		return nil, err
	}

	select {
	case resp := <-response:
		s.log.Debug("Received response", "id", id)

		return resp, nil

	case <-s.done:
		s.RemoveWaiter(id)

		if err := s.FatalError(); err != nil {
			return nil, fmt.Errorf("transport error: %w", err)
		}

		return nil, errors.ErrSessionClosed

	case <-time.After(timeout):
		s.RemoveWaiter(id)

		s.log.Warn("Request timed out", "id", id, "uri", uri, "timeout", timeout)

		return nil, fmt.Errorf("%w after %s", errors.ErrRequestTimeout, timeout)

	case <-ctx.Done():
		s.RemoveWaiter(id)

		return nil, ctx.Err()
	}
}

// Subscribe registers handler as a standing waiter for id and sends the
// subscribe request. Every future push for id is delivered to handler
// until Unsubscribe.
func (s *Session) Subscribe(
	ctx context.Context,
	uri string,
	id string,
	payload map[string]any,
	handler Handler,
) error {
	s.log.Debug("Subscribing", "id", id, "uri", uri)

	s.waitersMu.Lock()
	s.subscribers[id] = uri
	s.waitersMu.Unlock()

	msg := &Message{Type: TypeSubscribe, ID: id, URI: uri, Payload: payload}

	if err := s.SendWithHandler(ctx, msg, handler, true); err != nil {
		s.waitersMu.Lock()
		delete(s.subscribers, id)
		s.waitersMu.Unlock()

		return err
	}

	return nil
}

// Unsubscribe releases the standing waiter for id and asks the TV to stop
// pushing for it. Returns ErrNotSubscribed for an unknown id.
func (s *Session) Unsubscribe(ctx context.Context, id string) error {
	s.waitersMu.Lock()

	uri, ok := s.subscribers[id]
	if ok {
		delete(s.subscribers, id)
		delete(s.waiters, id)
	}

	s.waitersMu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrNotSubscribed, id)
	}

	s.log.Debug("Unsubscribing", "id", id, "uri", uri)

	return s.Send(ctx, &Message{Type: TypeUnsubscribe, ID: s.NextID(), URI: uri})
}

// addWaiter inserts or overwrites the registry entry for id.
// At most one entry exists per id; avoiding concurrent reuse of an id is
// the caller's responsibility.
func (s *Session) addWaiter(id string, w *waiter) {
	s.waitersMu.Lock()
	defer s.waitersMu.Unlock()

	s.waiters[id] = w
}

// RemoveWaiter deletes the registry entry for id, if present.
func (s *Session) RemoveWaiter(id string) {
	s.waitersMu.Lock()
	defer s.waitersMu.Unlock()

	delete(s.waiters, id)
}

// resolveWaiter looks up the entry for id without side effects.
func (s *Session) resolveWaiter(id string) (*waiter, bool) {
	s.waitersMu.Lock()
	defer s.waitersMu.Unlock()

	w, ok := s.waiters[id]

	return w, ok
}

// readLoop is the single consumer of the inbound stream. It routes each
// frame to its waiter and then sweeps stale one-shot entries.
func (s *Session) readLoop(
	ctx context.Context,
	messages <-chan map[string]any,
	errs <-chan error,
) {
	defer s.wg.Done()
	defer s.closeDone()
	defer s.log.Debug("Dispatch loop stopped")

	for {
		select {
		case raw, ok := <-messages:
			if !ok {
				s.log.Debug("Message channel closed")

				return
			}

			s.dispatch(raw)

		case err, ok := <-errs:
			if !ok {
				s.log.Debug("Error channel closed")

				return
			}

			if err == nil {
				continue
			}

			// Malformed frames are logged and skipped, never fatal.
			var decodeErr *errors.DecodeError
			if stderrors.As(err, &decodeErr) {
				s.log.Warn("Skipping malformed frame", "error", err)

				continue
			}

			s.log.Debug("Transport error in dispatch loop", "error", err)
			s.setFatalError(err)

			return

		case <-s.done:
			s.log.Debug("Session stop signal received")

			return

		case <-ctx.Done():
			s.log.Debug("Context cancelled in dispatch loop")

			return
		}
	}
}

// dispatch routes one inbound frame: waiter lookup by correlation id,
// handler invocation, one-shot removal, then the eviction sweep.
func (s *Session) dispatch(raw map[string]any) {
	msg := messageFromMap(raw)

	if msg.ID != "" {
		if w, ok := s.resolveWaiter(msg.ID); ok {
			s.invoke(w, msg)

			if !w.subscription {
				s.RemoveWaiter(msg.ID)
			}
		} else {
			s.log.Debug("No waiter for message", "id", msg.ID, "type", msg.Type)
		}
	}

	s.sweep()
}

// invoke runs a waiter handler, isolating the dispatch loop from panics.
func (s *Session) invoke(w *waiter, msg *Message) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Handler panicked", "id", msg.ID, "panic", r)
		}
	}()

	w.handle(msg)
}

// sweep evicts one-shot waiters whose responses never arrived.
// Victim ids are collected before deletion; subscription entries have a
// zero createdAt and are never evicted by age.
func (s *Session) sweep() {
	cutoff := s.now().Add(-s.maxAge)

	s.waitersMu.Lock()
	defer s.waitersMu.Unlock()

	var victims []string

	for id, w := range s.waiters {
		if !w.createdAt.IsZero() && w.createdAt.Before(cutoff) {
			victims = append(victims, id)
		}
	}

	for _, id := range victims {
		s.log.Debug("Evicting stale waiter", "id", id)
		delete(s.waiters, id)
	}
}
