package webostv

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tvServer simulates the TV's service endpoint: inbound frames are decoded
// onto received, frames pushed to send go back to the client.
type tvServer struct {
	*httptest.Server
	received chan map[string]any
	send     chan map[string]any
}

func newTVServer(t *testing.T) *tvServer {
	t.Helper()

	ts := &tvServer{
		received: make(chan map[string]any, 16),
		send:     make(chan map[string]any, 16),
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

				var decoded map[string]any
				if err := json.Unmarshal(frame, &decoded); err != nil {
					continue
				}

				ts.received <- decoded
			}
		}()

		for {
			select {
			case frame, ok := <-ts.send:
				if !ok {
					return
				}

				data, err := json.Marshal(frame)
				if err != nil {
					return
				}

				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
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

// host returns the simulator's host:port for use with New.
func (ts *tvServer) host() string {
	return strings.TrimPrefix(ts.URL, "http://")
}

func (ts *tvServer) awaitFrame(t *testing.T) map[string]any {
	t.Helper()

	select {
	case frame := <-ts.received:
		return frame
	case <-time.After(2 * time.Second):
		t.Fatal("no frame received")

		return nil
	}
}

// respond replies to frame, echoing its correlation id.
func (ts *tvServer) respond(frame map[string]any, msgType string, payload map[string]any) {
	reply := map[string]any{"type": msgType, "id": frame["id"]}
	if payload != nil {
		reply["payload"] = payload
	}

	ts.send <- reply
}

func newTestClient(t *testing.T, server *tvServer, opts ...Option) *Client {
	t.Helper()

	client := New(server.host(), append([]Option{WithTimeout(2 * time.Second)}, opts...)...)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Connect(context.Background()))

	return client
}

func TestClient_RegisterFreshPairing(t *testing.T) {
	server := newTVServer(t)
	store := &MemoryStore{}
	client := newTestClient(t, server, WithStore(store))

	go func() {
		frame := <-server.received
		if frame["type"] != "register" {
			return
		}

		// Prompt first, then accept.
		server.respond(frame, "response", map[string]any{
			"pairingType": "PROMPT",
			"returnValue": true,
		})
		server.respond(frame, "registered", map[string]any{
			"client-key": "key-fresh",
		})
	}()

	key, err := client.Register(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "key-fresh", key)
	assert.Equal(t, "key-fresh", client.ClientKey())

	// The issued key landed in the store.
	stored, err := store.ClientKey()
	require.NoError(t, err)
	assert.Equal(t, "key-fresh", stored)
}

func TestClient_RegisterOffersStoredKey(t *testing.T) {
	server := newTVServer(t)

	store := &MemoryStore{}
	require.NoError(t, store.SetClientKey("key-stored"))

	client := newTestClient(t, server, WithStore(store))

	keyOffered := make(chan string, 1)

	go func() {
		frame := <-server.received

		payload, _ := frame["payload"].(map[string]any)
		offered, _ := payload["client-key"].(string)
		keyOffered <- offered

		// Known key: no prompt, straight to registered.
		server.respond(frame, "registered", map[string]any{
			"client-key": "key-stored",
		})
	}()

	key, err := client.Register(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "key-stored", key)
	assert.Equal(t, "key-stored", <-keyOffered)
}

func TestClient_RegisterDenied(t *testing.T) {
	server := newTVServer(t)
	client := newTestClient(t, server)

	go func() {
		frame := <-server.received

		server.send <- map[string]any{
			"type":  "error",
			"id":    frame["id"],
			"error": "403 pairing denied",
		}
	}()

	_, err := client.Register(context.Background())

	var protoErr *ProtocolError

	require.ErrorAs(t, err, &protoErr)
	assert.Empty(t, client.ClientKey())
}

func TestClient_Notify(t *testing.T) {
	server := newTVServer(t)
	client := newTestClient(t, server)

	done := make(chan error, 1)

	go func() {
		done <- client.System().Notify(context.Background(), "hello")
	}()

	frame := server.awaitFrame(t)
	assert.Equal(t, "request", frame["type"])
	assert.Equal(t, "ssap://system.notifications/createToast", frame["uri"])

	payload, _ := frame["payload"].(map[string]any)
	assert.Equal(t, "hello", payload["message"])

	server.respond(frame, "response", map[string]any{"returnValue": true})
	require.NoError(t, <-done)
}

func TestClient_AppsTransform(t *testing.T) {
	server := newTVServer(t)
	client := newTestClient(t, server)

	go func() {
		frame := <-server.received
		server.respond(frame, "response", map[string]any{
			"returnValue": true,
			"apps": []any{
				map[string]any{"id": "netflix", "title": "Netflix"},
			},
		})
	}()

	apps, err := client.Apps().Apps(context.Background())
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "netflix", apps[0].ID())
	assert.Equal(t, "Netflix", apps[0].Title())
}

func TestClient_SubscribeVolume(t *testing.T) {
	server := newTVServer(t)
	client := newTestClient(t, server)

	ctx := context.Background()

	type push struct {
		status map[string]any
		err    error
	}

	pushes := make(chan push, 4)

	require.NoError(t, client.Media().SubscribeVolume(ctx, func(status map[string]any, err error) {
		pushes <- push{status, err}
	}))

	frame := server.awaitFrame(t)
	assert.Equal(t, "subscribe", frame["type"])
	assert.Equal(t, "ssap://audio/getVolume", frame["uri"])

	// Two pushes on the same correlation id.
	for _, volume := range []float64{7, 8} {
		server.respond(frame, "response", map[string]any{
			"returnValue": true,
			"volume":      volume,
		})
	}

	first := <-pushes
	require.NoError(t, first.err)
	assert.Equal(t, float64(7), first.status["volume"])

	second := <-pushes
	require.NoError(t, second.err)
	assert.Equal(t, float64(8), second.status["volume"])

	require.NoError(t, client.Media().UnsubscribeVolume(ctx))

	unsub := server.awaitFrame(t)
	assert.Equal(t, "unsubscribe", unsub["type"])

	// Repeated unsubscribe reports the missing subscription.
	err := client.Media().UnsubscribeVolume(ctx)
	require.ErrorIs(t, err, ErrNotSubscribed)
}

func TestClient_CommandTimeout(t *testing.T) {
	server := newTVServer(t)
	client := newTestClient(t, server, WithTimeout(50*time.Millisecond))

	// No reply from the simulator.
	err := client.System().Notify(context.Background(), "hello")
	require.ErrorIs(t, err, ErrRequestTimeout)
}

func TestClient_Close_Idempotent(t *testing.T) {
	server := newTVServer(t)
	client := newTestClient(t, server)

	require.NoError(t, client.Close())
	require.NoError(t, client.Close())
}

func TestClient_WithClientKeyWinsOverStore(t *testing.T) {
	server := newTVServer(t)

	store := &MemoryStore{}
	require.NoError(t, store.SetClientKey("key-stored"))

	client := newTestClient(t, server, WithStore(store), WithClientKey("key-explicit"))

	go func() {
		frame := <-server.received

		server.respond(frame, "registered", map[string]any{
			"client-key": "key-explicit",
		})
	}()

	key, err := client.Register(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "key-explicit", key)
}
