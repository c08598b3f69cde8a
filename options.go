package webostv

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

// ClientOptions configures a Client. Use the functional options with New
// rather than constructing this directly.
type ClientOptions struct {
	// Logger receives debug output. If nil, logging is disabled.
	Logger *slog.Logger

	// Secure selects the TLS endpoint (port 3001) instead of the plain
	// one (port 3000).
	Secure bool

	// ClientKey is a previously issued pairing key. Takes precedence over
	// the Store's key when both are set.
	ClientKey string

	// Store persists the client key across sessions.
	Store Store

	// Timeout bounds blocking command requests and each phase of the
	// pairing handshake. Zero uses the protocol default (60s).
	Timeout time.Duration

	// Dialer overrides the websocket dialer used for the control and
	// pointer connections.
	Dialer *websocket.Dialer
}

// Option configures ClientOptions using the functional options pattern.
type Option func(*ClientOptions)

func applyClientOptions(opts []Option) *ClientOptions {
	options := &ClientOptions{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *ClientOptions) {
		o.Logger = logger
	}
}

// WithSecure connects to the TV's TLS endpoint on port 3001.
func WithSecure(secure bool) Option {
	return func(o *ClientOptions) {
		o.Secure = secure
	}
}

// WithClientKey supplies a previously issued pairing key directly.
func WithClientKey(key string) Option {
	return func(o *ClientOptions) {
		o.ClientKey = key
	}
}

// WithStore sets the persistence backend for the client key.
func WithStore(store Store) Option {
	return func(o *ClientOptions) {
		o.Store = store
	}
}

// WithTimeout bounds blocking requests and each pairing phase.
func WithTimeout(timeout time.Duration) Option {
	return func(o *ClientOptions) {
		o.Timeout = timeout
	}
}

// WithDialer overrides the websocket dialer, e.g. to set a custom
// TLS configuration for the secure endpoint.
func WithDialer(dialer *websocket.Dialer) Option {
	return func(o *ClientOptions) {
		o.Dialer = dialer
	}
}
