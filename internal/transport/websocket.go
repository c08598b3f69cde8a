package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wagiedev/webostv-go/internal/errors"
)

const (
	// PlainPort is the websocket port for unencrypted connections.
	PlainPort = 3000
	// SecurePort is the websocket port for TLS connections.
	SecurePort = 3001

	// defaultHandshakeTimeout bounds the websocket opening handshake.
	defaultHandshakeTimeout = 10 * time.Second
	// writeTimeout bounds a single outbound frame write.
	writeTimeout = 10 * time.Second
)

// EndpointURL builds the service websocket URL for a TV host. A bare
// hostname gets the default port for the scheme; an explicit host:port
// is used as given.
func EndpointURL(host string, secure bool) string {
	scheme, port := "ws", PlainPort
	if secure {
		scheme, port = "wss", SecurePort
	}

	if _, _, err := net.SplitHostPort(host); err == nil {
		return fmt.Sprintf("%s://%s/", scheme, host)
	}

	return fmt.Sprintf("%s://%s:%d/", scheme, host, port)
}

// WebSocket implements the session transport over a single websocket
// connection to the TV.
//
// It owns the connection exclusively: all writes go through SendMessage
// (mutex guarded, gorilla connections allow only one concurrent writer)
// and all reads happen in the single goroutine started by ReadMessages.
type WebSocket struct {
	log    *slog.Logger
	url    string
	dialer *websocket.Dialer

	mu      sync.Mutex // protects conn and closing
	conn    *websocket.Conn
	closing bool
}

// NewWebSocket creates a websocket transport for the given URL.
//
// A nil dialer falls back to a default with a bounded handshake timeout.
// The connection is not established until Start is called.
func NewWebSocket(log *slog.Logger, url string, dialer *websocket.Dialer) *WebSocket {
	if dialer == nil {
		dialer = &websocket.Dialer{HandshakeTimeout: defaultHandshakeTimeout}
	}

	return &WebSocket{
		log:    log.With("component", "transport"),
		url:    url,
		dialer: dialer,
	}
}

// Start dials the TV. It is a no-op if a connection is already established.
//
// Returns ConnectionError if the websocket handshake fails; the error is
// surfaced to the caller and never retried internally.
func (t *WebSocket) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn != nil {
		return nil
	}

	t.log.Info("Connecting to TV", "url", t.url)

	conn, _, err := t.dialer.DialContext(ctx, t.url, nil)
	if err != nil {
		t.log.Error("Websocket dial failed", "url", t.url, "error", err)

		return &errors.ConnectionError{URL: t.url, Err: err}
	}

	t.conn = conn
	t.closing = false

	t.log.Debug("Websocket connection established")

	return nil
}

// ReadMessages reads JSON frames from the websocket.
//
// This method starts a goroutine that reads text frames from the connection
// and parses each one as a JSON object. Parsed messages are delivered on the
// message channel; a frame that fails to parse is reported as a DecodeError
// on the error channel and reading continues.
//
// The goroutine exits and closes both channels when the connection closes
// (a normal closure or intentional Close is not reported as an error), the
// context is cancelled, or a terminal read error occurs.
func (t *WebSocket) ReadMessages(ctx context.Context) (<-chan map[string]any, <-chan error) {
	messages := make(chan map[string]any)
	errs := make(chan error, 1)

	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()

	go func() {
		defer close(messages)
		defer close(errs)
		defer t.log.Debug("ReadMessages goroutine stopped")

		if conn == nil {
			errs <- errors.ErrNotConnected

			return
		}

		for {
			_, frame, err := conn.ReadMessage()
			if err != nil {
				if t.isClosing() || websocket.IsCloseError(err,
					websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					t.log.Info("Websocket connection closed")

					return
				}

				t.log.Error("Websocket read error", "error", err)

				errs <- fmt.Errorf("websocket read: %w", err)

				return
			}

			select {
			case <-ctx.Done():
				return
			default:
			}

			var msg map[string]any

			if err := json.Unmarshal(frame, &msg); err != nil {
				t.log.Warn("Received invalid JSON frame", "error", err)

				select {
				case errs <- &errors.DecodeError{RawData: string(frame), Err: err}:
				case <-ctx.Done():
					return
				}

				continue
			}

			select {
			case messages <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	return messages, errs
}

// SendMessage writes one complete JSON message as a text frame.
//
// Safe for concurrent use. Returns ErrNotConnected if Start has not
// succeeded or the connection was closed.
func (t *WebSocket) SendMessage(ctx context.Context, data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		return errors.ErrNotConnected
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	t.log.Debug("Sending message to TV", "data_len", len(data))

	if err := t.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}

	if err := t.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		t.log.Error("Failed to write message", "error", err)

		return fmt.Errorf("websocket write: %w", err)
	}

	return nil
}

// IsReady reports whether the transport has an established connection.
func (t *WebSocket) IsReady() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.conn != nil
}

// Close terminates the websocket connection.
//
// A best-effort close frame is written before the underlying connection is
// torn down so the TV sees a clean shutdown. Safe to call multiple times.
func (t *WebSocket) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		return nil
	}

	t.closing = true

	t.log.Debug("Closing websocket connection")

	deadline := time.Now().Add(writeTimeout)
	_ = t.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)

	err := t.conn.Close()
	t.conn = nil

	if err != nil {
		return fmt.Errorf("close websocket: %w", err)
	}

	return nil
}

func (t *WebSocket) isClosing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.closing
}
