// Package noop provides a transport that discards all payloads. Useful
// for tests and for disabling reporting entirely.
package noop

import (
	"context"

	"github.com/BobbyMcWho/vigil-go/pkg/vigil"
)

// noopTransport discards all payloads.
type noopTransport struct{}

// NewTransport creates a transport that discards everything. Post still
// acknowledges with the payload's own event identifier so the pipeline
// behaves as if delivery succeeded.
func NewTransport() vigil.Transport {
	return &noopTransport{}
}

// Post discards the batch and acknowledges the last event.
func (t *noopTransport) Post(ctx context.Context, batch []vigil.Payload, retries int) (string, error) {
	if len(batch) == 0 {
		return "", nil
	}
	id, _ := batch[len(batch)-1]["event_id"].(string)
	return id, nil
}

// SendAsync discards the payload.
func (t *noopTransport) SendAsync(payload vigil.Payload) {}

// Flush is a no-op and returns nil.
func (t *noopTransport) Flush(ctx context.Context) error {
	return nil
}

// Close is a no-op and returns nil.
func (t *noopTransport) Close() error {
	return nil
}
