// Package webostv is a client SDK for LG webOS televisions.
//
// The TV exposes a JSON-over-websocket control service. All exchanges —
// one-shot commands, the pairing handshake, and standing subscriptions —
// are multiplexed over a single persistent connection and correlated by
// message ID.
//
// Basic usage:
//
//	client := webostv.New("192.168.1.50",
//	    webostv.WithLogger(slog.Default()),
//	    webostv.WithStore(store),
//	)
//	defer client.Close()
//
//	if err := client.Connect(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	// First Register on an unpaired TV shows an on-screen prompt; the
//	// call blocks until the user accepts. The issued client key is
//	// persisted to the store and reused on later connections.
//	if _, err := client.Register(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	client.System().Notify(ctx, "Hello from Go")
//	client.Media().SetVolume(ctx, 15)
//
// Subscriptions deliver every state push to a handler until unsubscribed:
//
//	client.Media().SubscribeVolume(ctx, func(status map[string]any, err error) {
//	    // ...
//	})
//
// Clients are single-use: after Close, create a new client with New.
package webostv
