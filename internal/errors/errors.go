package errors

import (
	"errors"
	"fmt"
)

// WebOSError is the base interface for all SDK errors.
type WebOSError interface {
	error
	IsWebOSError() bool
}

// Compile-time verification that all error types implement WebOSError.
var (
	_ WebOSError = (*ConnectionError)(nil)
	_ WebOSError = (*ProtocolError)(nil)
	_ WebOSError = (*ValidationError)(nil)
	_ WebOSError = (*DecodeError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrNotConnected indicates the session has no established transport.
	ErrNotConnected = errors.New("session not connected")

	// ErrSessionClosed indicates the session was closed while an operation
	// was still waiting for a reply.
	ErrSessionClosed = errors.New("session closed")

	// ErrRequestTimeout indicates a request timed out waiting for a response.
	ErrRequestTimeout = errors.New("request timeout")

	// ErrRegistrationTimeout indicates pairing exceeded its deadline before
	// the TV prompted or issued a client key.
	ErrRegistrationTimeout = errors.New("registration timeout")

	// ErrAlreadySubscribed indicates a subscription name is already in use.
	ErrAlreadySubscribed = errors.New("already subscribed")

	// ErrNotSubscribed indicates an unsubscribe for an unknown subscription name.
	ErrNotSubscribed = errors.New("not subscribed")

	// ErrNotSubscribable indicates a command that does not support subscriptions.
	ErrNotSubscribable = errors.New("command does not support subscription")

	// ErrNoPointerSocket indicates the TV did not return a pointer input socket path.
	ErrNoPointerSocket = errors.New("no pointer input socket path in response")

	// ErrMissingArgument indicates a command was invoked without a required argument.
	ErrMissingArgument = errors.New("missing command argument")
)

// ConnectionError indicates failure to establish or use the websocket connection.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to %s: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsWebOSError implements WebOSError.
func (e *ConnectionError) IsWebOSError() bool { return true }

// ProtocolError indicates the TV answered a request with a type "error" frame.
type ProtocolError struct {
	Message string
}

func (e *ProtocolError) Error() string {
	if e.Message == "" {
		return "unknown communication error"
	}

	return fmt.Sprintf("TV returned error: %s", e.Message)
}

// IsWebOSError implements WebOSError.
func (e *ProtocolError) IsWebOSError() bool { return true }

// ValidationError indicates a response payload failed the command's validation,
// typically a false returnValue. Distinct from ProtocolError: the request
// succeeded at the protocol level but the operation itself was refused.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return "response validation failed"
	}

	return fmt.Sprintf("response validation failed: %s", e.Message)
}

// IsWebOSError implements WebOSError.
func (e *ValidationError) IsWebOSError() bool { return true }

// DecodeError indicates an inbound frame could not be decoded as JSON.
// This error preserves the original raw data that failed to parse.
type DecodeError struct {
	RawData string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode frame: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsWebOSError implements WebOSError.
func (e *DecodeError) IsWebOSError() bool { return true }
