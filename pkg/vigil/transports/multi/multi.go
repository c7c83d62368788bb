// Package multi provides a transport that fans out to multiple
// transports. All transports receive all payloads; errors are aggregated.
package multi

import (
	"context"
	"errors"

	"github.com/BobbyMcWho/vigil-go/pkg/vigil"
)

// multiTransport fans out to multiple transports.
type multiTransport struct {
	transports []vigil.Transport
}

// NewTransport creates a transport that delivers to every given
// transport. Post errors are aggregated via errors.Join; the first
// non-empty acknowledgement wins.
func NewTransport(transports ...vigil.Transport) vigil.Transport {
	return &multiTransport{transports: transports}
}

// Post delivers the batch to all transports even if some fail.
func (t *multiTransport) Post(ctx context.Context, batch []vigil.Payload, retries int) (string, error) {
	var id string
	var errs []error
	for _, tr := range t.transports {
		ack, err := tr.Post(ctx, batch, retries)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if id == "" {
			id = ack
		}
	}
	return id, errors.Join(errs...)
}

// SendAsync hands the payload to every transport's async sender.
func (t *multiTransport) SendAsync(payload vigil.Payload) {
	for _, tr := range t.transports {
		tr.SendAsync(payload)
	}
}

// Flush calls Flush on all transports, collecting any errors.
func (t *multiTransport) Flush(ctx context.Context) error {
	var errs []error
	for _, tr := range t.transports {
		if err := tr.Flush(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close calls Close on all transports, collecting any errors.
func (t *multiTransport) Close() error {
	var errs []error
	for _, tr := range t.transports {
		if err := tr.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
