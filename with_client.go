package webostv

import (
	"context"
	"fmt"
)

// WithClient manages client lifecycle with automatic cleanup.
//
// This helper creates a client for host, connects, completes the pairing
// handshake, executes the callback, and ensures cleanup via Close when
// done. On an unpaired TV the handshake blocks until the user accepts the
// on-screen prompt, so pass a Store (or WithClientKey) to skip the prompt
// on subsequent runs.
//
// If the callback returns an error, it is returned to the caller.
// If Close fails, a warning is logged but does not override the callback's error.
//
// Example usage:
//
//	err := webostv.WithClient(ctx, "192.168.1.50", func(c *webostv.Client) error {
//	    return c.System().Notify(ctx, "Hello from Go")
//	},
//	    webostv.WithLogger(log),
//	    webostv.WithStore(store),
//	)
func WithClient(ctx context.Context, host string, fn func(*Client) error, opts ...Option) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	client := New(host, opts...)

	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			client.log.Warn("Failed to close client", "error", closeErr)
		}
	}()

	if err := client.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	if _, err := client.Register(ctx); err != nil {
		return fmt.Errorf("failed to register: %w", err)
	}

	return fn(client)
}
