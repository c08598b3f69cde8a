package webostv

import (
	"context"
	"log/slog"

	"github.com/wagiedev/webostv-go/internal/command"
	"github.com/wagiedev/webostv-go/internal/protocol"
	"github.com/wagiedev/webostv-go/internal/transport"
)

// Client is a stateful connection to one TV.
//
// Lifecycle: New, Connect, Register (blocking until the user accepts the
// on-screen prompt on first pairing), then commands via the control
// groups. Clients are single-use; after Close, create a new one with New.
type Client struct {
	log     *slog.Logger
	host    string
	options *ClientOptions
	session *protocol.Session

	media  *MediaControl
	tv     *TVControl
	system *SystemControl
	apps   *ApplicationControl
	source *SourceControl
	input  *InputControl
}

// New creates a client for the TV at host. No network activity happens
// until Connect.
func New(host string, opts ...Option) *Client {
	options := applyClientOptions(opts)

	log := options.Logger
	if log == nil {
		log = NopLogger()
	}

	ws := transport.NewWebSocket(log, transport.EndpointURL(host, options.Secure), options.Dialer)
	session := protocol.NewSession(log, ws)

	if options.ClientKey != "" {
		session.SetClientKey(options.ClientKey)
	}

	c := &Client{
		log:     log.With("component", "client"),
		host:    host,
		options: options,
		session: session,
	}

	c.media = &MediaControl{d: c.newDispatcher()}
	c.tv = &TVControl{d: c.newDispatcher()}
	c.system = &SystemControl{d: c.newDispatcher()}
	c.apps = &ApplicationControl{d: c.newDispatcher()}
	c.source = &SourceControl{d: c.newDispatcher()}
	c.input = &InputControl{
		d:       c.newDispatcher(),
		pointer: command.NewPointerInput(log, session, options.Dialer),
	}

	return c
}

func (c *Client) newDispatcher() *command.Dispatcher {
	return command.NewDispatcher(c.log, c.session, c.options.Timeout)
}

// Connect establishes the websocket connection and starts the read loop.
// Calling Connect on an already connected client is a no-op.
func (c *Client) Connect(ctx context.Context) error {
	return c.session.Connect(ctx)
}

// Register performs the pairing handshake and blocks until the TV issues
// a client key or the handshake fails.
//
// When a key is available (from WithClientKey or the Store) it is offered
// to the TV; an accepted key skips the on-screen prompt. A newly issued
// key is written back to the Store.
func (c *Client) Register(ctx context.Context) (string, error) {
	events, errs := c.RegisterWithProgress(ctx)

	for status := range events {
		if status == StatusPrompted {
			c.log.Info("Waiting for pairing confirmation on the TV screen")
		}
	}

	if err, ok := <-errs; ok && err != nil {
		return "", err
	}

	return c.session.ClientKey(), nil
}

// RegisterWithProgress starts the pairing handshake and reports progress
// on the returned channels. The event channel emits StatusPrompted and
// then StatusRegistered on success; failures arrive on the error channel.
// Both channels close when the handshake finishes either way.
func (c *Client) RegisterWithProgress(ctx context.Context) (<-chan RegisterStatus, <-chan error) {
	key := c.loadClientKey()

	events, errs := c.session.Register(ctx, key, c.options.Timeout)

	out := make(chan RegisterStatus, 2)
	outErrs := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(outErrs)

		registered := false

		for status := range events {
			if status == StatusRegistered {
				registered = true
			}

			out <- status
		}

		if err, ok := <-errs; ok && err != nil {
			outErrs <- err

			return
		}

		if registered {
			c.persistClientKey(key)
		}
	}()

	return out, outErrs
}

// loadClientKey resolves the key to offer during pairing: an explicitly
// set key wins, then the store's persisted key.
func (c *Client) loadClientKey() string {
	if key := c.session.ClientKey(); key != "" {
		return key
	}

	if c.options.Store == nil {
		return ""
	}

	key, err := c.options.Store.ClientKey()
	if err != nil {
		c.log.Warn("Failed to load client key from store", "error", err)

		return ""
	}

	if key != "" {
		c.session.SetClientKey(key)
	}

	return key
}

// persistClientKey writes a newly issued key back to the store. A
// persistence failure does not fail the pairing; the session keeps the
// key in memory either way.
func (c *Client) persistClientKey(previous string) {
	key := c.session.ClientKey()
	if c.options.Store == nil || key == "" || key == previous {
		return
	}

	if err := c.options.Store.SetClientKey(key); err != nil {
		c.log.Warn("Failed to persist client key", "error", err)
	}
}

// ClientKey returns the pairing key for the current session, or "" before
// a successful Register.
func (c *Client) ClientKey() string {
	return c.session.ClientKey()
}

// Media returns the audio and playback control group.
func (c *Client) Media() *MediaControl { return c.media }

// TV returns the live TV (channel) control group.
func (c *Client) TV() *TVControl { return c.tv }

// System returns the system control group.
func (c *Client) System() *SystemControl { return c.system }

// Apps returns the application management control group.
func (c *Client) Apps() *ApplicationControl { return c.apps }

// Source returns the external input source control group.
func (c *Client) Source() *SourceControl { return c.source }

// Input returns the text and pointer input control group.
func (c *Client) Input() *InputControl { return c.input }

// Close terminates the connection, fails any pending requests with
// ErrSessionClosed, and releases the pointer input socket if open.
// Safe to call multiple times.
func (c *Client) Close() error {
	if err := c.input.pointer.Close(); err != nil {
		c.log.Warn("Failed to close pointer input socket", "error", err)
	}

	return c.session.Close()
}
