package webostv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithClient(t *testing.T) {
	server := newTVServer(t)

	go func() {
		register := <-server.received
		server.respond(register, "registered", map[string]any{
			"client-key": "key-1",
		})

		notify := <-server.received
		server.respond(notify, "response", map[string]any{"returnValue": true})
	}()

	var keyInCallback string

	err := WithClient(context.Background(), server.host(), func(c *Client) error {
		keyInCallback = c.ClientKey()

		return c.System().Notify(context.Background(), "hi")
	}, WithTimeout(2*time.Second))

	require.NoError(t, err)
	assert.Equal(t, "key-1", keyInCallback)
}

func TestWithClient_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithClient(ctx, "192.0.2.1", func(*Client) error { return nil })
	require.ErrorIs(t, err, context.Canceled)
}

func TestWithClient_CallbackError(t *testing.T) {
	server := newTVServer(t)

	go func() {
		register := <-server.received
		server.respond(register, "registered", map[string]any{
			"client-key": "key-1",
		})
	}()

	err := WithClient(context.Background(), server.host(), func(*Client) error {
		return assert.AnError
	}, WithTimeout(2*time.Second))

	require.ErrorIs(t, err, assert.AnError)
}
