package command

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wagiedev/webostv-go/internal/errors"
	"github.com/wagiedev/webostv-go/internal/protocol"
)

// Validator checks a response payload, returning a ValidationError with
// the remote-supplied message on failure.
type Validator func(payload map[string]any) error

// Transform converts a validated response payload into the command's
// caller-facing result.
type Transform func(payload map[string]any) (any, error)

// Descriptor declares one TV operation: its service URI, an optional
// payload template (literals and ArgRefs), an optional response validator
// and transform, and whether the operation supports subscriptions.
type Descriptor struct {
	URI          string
	Payload      any
	Validation   Validator
	Transform    Transform
	Subscription bool
}

// StandardValidation checks the TV's conventional success envelope: a
// boolean returnValue with an errorText message on failure.
func StandardValidation(payload map[string]any) error {
	if ok, _ := payload["returnValue"].(bool); ok {
		return nil
	}

	msg, _ := payload["errorText"].(string)
	if msg == "" {
		msg = "unknown error"
	}

	return &errors.ValidationError{Message: msg}
}

// SubscriptionHandler receives each push for a standing subscription in a
// uniform shape: the transformed payload on success, or the validation or
// protocol error otherwise.
type SubscriptionHandler func(result any, err error)

// Dispatcher executes command descriptors against a session and owns the
// subscription name registry for one control surface.
//
// Subscription names are unique per Dispatcher instance; all mutation of
// the name registry funnels through Subscribe and Unsubscribe.
type Dispatcher struct {
	log     *slog.Logger
	session *protocol.Session
	timeout time.Duration

	mu            sync.Mutex
	subscriptions map[string]string // name -> correlation id
}

// NewDispatcher creates a dispatcher over session. A timeout of zero uses
// the protocol default for blocking requests.
func NewDispatcher(log *slog.Logger, session *protocol.Session, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		log:           log.With("component", "command"),
		session:       session,
		timeout:       timeout,
		subscriptions: make(map[string]string, 8),
	}
}

// Execute resolves the descriptor's payload template against args, sends
// the request, and returns the validated, transformed result.
//
// Failure modes are distinguishable:
//   - ErrMissingArgument before any network activity
//   - ProtocolError for a type "error" reply
//   - ValidationError when the descriptor's validator rejects the payload
//   - ErrRequestTimeout when no reply arrives in time
func (d *Dispatcher) Execute(ctx context.Context, desc Descriptor, args Args) (any, error) {
	payload, err := resolvePayloadObject(desc.Payload, args)
	if err != nil {
		return nil, err
	}

	resp, err := d.session.Request(ctx, desc.URI, payload, d.timeout)
	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, &errors.ProtocolError{Message: resp.ErrorMessage()}
	}

	if desc.Validation != nil {
		if err := desc.Validation(resp.Payload); err != nil {
			return nil, err
		}
	}

	if desc.Transform != nil {
		return desc.Transform(resp.Payload)
	}

	return resp.Payload, nil
}

// Subscribe turns the descriptor into a standing registration under name.
//
// Every future push is validated and transformed per the descriptor before
// reaching handler. Returns ErrNotSubscribable for descriptors without
// subscription support and ErrAlreadySubscribed for a name already in use.
func (d *Dispatcher) Subscribe(
	ctx context.Context,
	name string,
	desc Descriptor,
	handler SubscriptionHandler,
) error {
	if !desc.Subscription {
		return fmt.Errorf("%w: %s", errors.ErrNotSubscribable, name)
	}

	d.mu.Lock()

	if _, exists := d.subscriptions[name]; exists {
		d.mu.Unlock()

		return fmt.Errorf("%w: %s", errors.ErrAlreadySubscribed, name)
	}

	id := uuid.NewString()
	d.subscriptions[name] = id

	d.mu.Unlock()

	d.log.Debug("Subscribing", "name", name, "id", id, "uri", desc.URI)

	wrapped := func(msg *protocol.Message) {
		if msg.IsError() {
			handler(nil, &errors.ProtocolError{Message: msg.ErrorMessage()})

			return
		}

		payload := msg.Payload

		if desc.Validation != nil {
			if err := desc.Validation(payload); err != nil {
				handler(nil, err)

				return
			}
		}

		if desc.Transform != nil {
			handler(desc.Transform(payload))

			return
		}

		handler(payload, nil)
	}

	if err := d.session.Subscribe(ctx, desc.URI, id, nil, wrapped); err != nil {
		d.mu.Lock()
		delete(d.subscriptions, name)
		d.mu.Unlock()

		return err
	}

	return nil
}

// Unsubscribe releases the subscription under name, freeing the name and
// the session's registry slot. Returns ErrNotSubscribed for unknown names.
func (d *Dispatcher) Unsubscribe(ctx context.Context, name string) error {
	d.mu.Lock()

	id, ok := d.subscriptions[name]
	if ok {
		delete(d.subscriptions, name)
	}

	d.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrNotSubscribed, name)
	}

	d.log.Debug("Unsubscribing", "name", name, "id", id)

	return d.session.Unsubscribe(ctx, id)
}
