package transport

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdkerrors "github.com/wagiedev/webostv-go/internal/errors"
)

// testServer is a minimal websocket endpoint that records inbound frames
// and can push arbitrary frames back to the client.
type testServer struct {
	*httptest.Server
	received chan []byte
	send     chan []byte
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ts := &testServer{
		received: make(chan []byte, 16),
		send:     make(chan []byte, 16),
	}

	upgrader := websocket.Upgrader{}

	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		done := make(chan struct{})

		go func() {
			defer close(done)

			for {
				_, frame, err := conn.ReadMessage()
				if err != nil {
					return
				}
				ts.received <- frame
			}
		}()

		for {
			select {
			case frame, ok := <-ts.send:
				if !ok {
					return
				}

				if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}))

	t.Cleanup(ts.Close)

	return ts
}

func (ts *testServer) wsURL() string {
	return "ws" + strings.TrimPrefix(ts.URL, "http")
}

func TestWebSocket_StartAndSend(t *testing.T) {
	server := newTestServer(t)
	transport := NewWebSocket(slog.Default(), server.wsURL(), nil)

	ctx := context.Background()
	require.NoError(t, transport.Start(ctx))

	defer transport.Close()

	assert.True(t, transport.IsReady())

	require.NoError(t, transport.SendMessage(ctx, []byte(`{"type":"request","id":"1"}`)))

	select {
	case frame := <-server.received:
		assert.JSONEq(t, `{"type":"request","id":"1"}`, string(frame))
	case <-time.After(2 * time.Second):
		t.Fatal("server did not receive frame")
	}
}

func TestWebSocket_Start_Idempotent(t *testing.T) {
	server := newTestServer(t)
	transport := NewWebSocket(slog.Default(), server.wsURL(), nil)

	ctx := context.Background()
	require.NoError(t, transport.Start(ctx))

	defer transport.Close()

	// Second Start on an established connection is a no-op.
	require.NoError(t, transport.Start(ctx))
	assert.True(t, transport.IsReady())
}

func TestWebSocket_Start_ConnectionRefused(t *testing.T) {
	transport := NewWebSocket(slog.Default(), "ws://127.0.0.1:1/", nil)

	err := transport.Start(context.Background())
	require.Error(t, err)

	var connErr *sdkerrors.ConnectionError

	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, "ws://127.0.0.1:1/", connErr.URL)
	assert.False(t, transport.IsReady())
}

func TestWebSocket_SendMessage_NotConnected(t *testing.T) {
	transport := NewWebSocket(slog.Default(), "ws://127.0.0.1:3000/", nil)

	err := transport.SendMessage(context.Background(), []byte(`{}`))
	require.ErrorIs(t, err, sdkerrors.ErrNotConnected)
}

func TestWebSocket_ReadMessages_SkipsMalformedFrames(t *testing.T) {
	server := newTestServer(t)
	transport := NewWebSocket(slog.Default(), server.wsURL(), nil)

	ctx := context.Background()
	require.NoError(t, transport.Start(ctx))

	defer transport.Close()

	messages, errs := transport.ReadMessages(ctx)

	server.send <- []byte("{not valid json")
	server.send <- []byte(`{"type":"response","id":"abc"}`)

	// The malformed frame surfaces as a DecodeError, not a terminal failure.
	select {
	case err := <-errs:
		var decodeErr *sdkerrors.DecodeError

		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, "{not valid json", decodeErr.RawData)
	case <-time.After(2 * time.Second):
		t.Fatal("expected decode error")
	}

	// The following well-formed frame is still delivered.
	select {
	case msg := <-messages:
		assert.Equal(t, "response", msg["type"])
		assert.Equal(t, "abc", msg["id"])
	case <-time.After(2 * time.Second):
		t.Fatal("expected message after malformed frame")
	}
}

func TestWebSocket_ReadMessages_CleanCloseEndsLoop(t *testing.T) {
	server := newTestServer(t)
	transport := NewWebSocket(slog.Default(), server.wsURL(), nil)

	ctx := context.Background()
	require.NoError(t, transport.Start(ctx))

	messages, errs := transport.ReadMessages(ctx)

	require.NoError(t, transport.Close())

	// Both channels close without a terminal error.
	for messages != nil || errs != nil {
		select {
		case _, ok := <-messages:
			if !ok {
				messages = nil
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil

				continue
			}

			t.Fatalf("unexpected error on clean close: %v", err)
		case <-time.After(2 * time.Second):
			t.Fatal("channels did not close after Close")
		}
	}
}

func TestWebSocket_Close_Idempotent(t *testing.T) {
	server := newTestServer(t)
	transport := NewWebSocket(slog.Default(), server.wsURL(), nil)

	require.NoError(t, transport.Start(context.Background()))
	require.NoError(t, transport.Close())
	require.NoError(t, transport.Close())
	assert.False(t, transport.IsReady())
}

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "ws://192.168.1.50:3000/", EndpointURL("192.168.1.50", false))
	assert.Equal(t, "wss://192.168.1.50:3001/", EndpointURL("192.168.1.50", true))

	// An explicit port wins over the scheme default.
	assert.Equal(t, "ws://192.168.1.50:8080/", EndpointURL("192.168.1.50:8080", false))
	assert.Equal(t, "wss://192.168.1.50:8080/", EndpointURL("192.168.1.50:8080", true))
}
