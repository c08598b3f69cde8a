// Package protocol implements the connection/session multiplexer for the
// webOS service bus.
//
// A Session correlates many concurrent request/response and subscription
// exchanges over one websocket connection. Every outbound request carries
// a unique correlation id; a single dispatch goroutine reads inbound
// frames in arrival order and routes each one to the waiter registered
// for its id. One-shot waiters are removed after their first response and
// swept if no response ever arrives; subscription waiters persist until
// an explicit unsubscribe.
//
// Sessions are single-use: once Close returns, create a new Session to
// reconnect.
//
// Example usage:
//
//	ws := transport.NewWebSocket(log, transport.EndpointURL(host, false), nil)
//	session := protocol.NewSession(log, ws)
//
//	events, errs := session.Register(ctx, storedKey, 0)
//	for status := range events {
//	    // StatusPrompted, then StatusRegistered
//	}
//	if err := <-errs; err != nil { ... }
//
//	resp, err := session.Request(ctx, "ssap://audio/getVolume", nil, 0)
package protocol
