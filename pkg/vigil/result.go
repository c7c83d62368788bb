// result.go defines the closed set of submission outcomes and the typed
// delivery-failure reasons.

package vigil

import (
	"errors"
	"fmt"
)

// Status is the outcome class of one submission. Exactly one Status is
// produced per Send call.
type Status int

const (
	// StatusAccepted means the event was handed to the transport. The
	// Result carries the acknowledged event identifier, or an empty
	// identifier for fire-and-forget dispatch.
	StatusAccepted Status = iota

	// StatusUnsampled means the sampling decision dropped the event
	// before any processing.
	StatusUnsampled

	// StatusExcluded means a pre-send hook suppressed the event.
	StatusExcluded

	// StatusFailed means the transport reported a delivery failure. The
	// Result carries the classified reason.
	StatusFailed
)

// String returns the wire-style name of the status.
func (s Status) String() string {
	switch s {
	case StatusAccepted:
		return "accepted"
	case StatusUnsampled:
		return "unsampled"
	case StatusExcluded:
		return "excluded"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is the outcome of one submission.
type Result struct {
	Status Status

	// EventID is set for StatusAccepted under blocking dispatch.
	EventID string

	// Err is the delivery-failure reason for StatusFailed: either
	// ErrInvalidDestination, an *EncodingError, or a *TransportError.
	Err error
}

// ErrInvalidDestination reports that the transport destination (e.g. a
// DSN) is missing or malformed.
var ErrInvalidDestination = errors.New("invalid destination configuration")

// EncodingError reports that a rendered payload could not be encoded for
// the wire.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode payload: %v", e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// TransportError reports a delivery failure at the transport layer. Err
// may be a *PanicError when the transport caught a fault.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// PanicError is a fault caught inside the transport, with the execution
// trace captured at the recovery point.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// ConfigurationError is a programmer error: malformed hook configuration
// or use of a retired completion mode. It is raised via panic, never
// returned as a Result.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}
