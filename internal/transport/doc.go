// Package transport implements the websocket connection to a webOS TV.
//
// The TV exposes its service bus on port 3000 (ws) or 3001 (wss). The
// transport owns exactly one connection, serializes outbound frames, and
// surfaces inbound frames one at a time through the channel pair returned
// by ReadMessages.
package transport
