// transport.go defines the delivery boundary for rendered payloads.

package vigil

import "context"

// Payload is the flattened, sanitized, transport-ready form of an Event.
// It is never mutated after Render produces it.
type Payload map[string]any

// Transport delivers rendered payloads to their destination.
// Implementations must be safe for concurrent use.
type Transport interface {
	// Post delivers a batch synchronously and returns the acknowledged
	// event identifier. retries is advisory; the pipeline itself never
	// retries. Failures are reported as ErrInvalidDestination,
	// *EncodingError, or *TransportError.
	Post(ctx context.Context, batch []Payload, retries int) (string, error)

	// SendAsync hands a payload to an asynchronous sender and returns
	// immediately. No delivery confirmation is available.
	SendAsync(payload Payload)

	// Flush blocks until queued payloads have been handed off.
	// For synchronous transports, this may be a no-op.
	Flush(ctx context.Context) error

	// Close releases resources held by the transport.
	Close() error
}

// discardTransport is the internal default when no transport is
// configured; it accepts and drops everything.
type discardTransport struct{}

func (discardTransport) Post(ctx context.Context, batch []Payload, retries int) (string, error) {
	if len(batch) == 0 {
		return "", nil
	}
	id, _ := batch[len(batch)-1]["event_id"].(string)
	return id, nil
}

func (discardTransport) SendAsync(payload Payload) {}

func (discardTransport) Flush(ctx context.Context) error { return nil }

func (discardTransport) Close() error { return nil }
