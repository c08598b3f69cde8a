package webostv

import "github.com/wagiedev/webostv-go/internal/errors"

// Re-export error types from internal package

// ConnectionError indicates failure to establish or use the websocket connection.
type ConnectionError = errors.ConnectionError

// ProtocolError indicates the TV rejected a request with an error frame.
type ProtocolError = errors.ProtocolError

// ValidationError indicates a response payload failed command validation.
type ValidationError = errors.ValidationError

// DecodeError indicates a frame from the TV could not be decoded as JSON.
type DecodeError = errors.DecodeError

// WebOSError is the base interface for all SDK errors.
type WebOSError = errors.WebOSError

// Re-export sentinel errors from internal package.
var (
	// ErrNotConnected indicates the session has no established transport.
	ErrNotConnected = errors.ErrNotConnected

	// ErrSessionClosed indicates the session was closed while an operation
	// was still waiting for a reply.
	ErrSessionClosed = errors.ErrSessionClosed

	// ErrRequestTimeout indicates a request timed out.
	ErrRequestTimeout = errors.ErrRequestTimeout

	// ErrRegistrationTimeout indicates pairing exceeded its deadline.
	ErrRegistrationTimeout = errors.ErrRegistrationTimeout

	// ErrAlreadySubscribed indicates a subscription is already active.
	ErrAlreadySubscribed = errors.ErrAlreadySubscribed

	// ErrNotSubscribed indicates an unsubscribe without an active subscription.
	ErrNotSubscribed = errors.ErrNotSubscribed

	// ErrNotSubscribable indicates a command without subscription support.
	ErrNotSubscribable = errors.ErrNotSubscribable

	// ErrNoPointerSocket indicates the TV did not hand out a pointer socket path.
	ErrNoPointerSocket = errors.ErrNoPointerSocket

	// ErrMissingArgument indicates a command was invoked without a required argument.
	ErrMissingArgument = errors.ErrMissingArgument
)
