// Package errors defines error types used throughout the webOS TV SDK.
//
// It provides sentinel errors for common conditions (not connected, timeout,
// duplicate subscription) and typed errors that carry additional context
// (connection failures, protocol errors from the TV, response validation
// failures). All typed errors implement the WebOSError marker interface.
package errors
