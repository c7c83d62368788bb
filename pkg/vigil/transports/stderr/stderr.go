// Package stderr provides a transport that prints payloads to stderr in
// human-readable form instead of delivering them. Useful for development
// and debugging.
package stderr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BobbyMcWho/vigil-go/pkg/vigil"
)

// Option configures the stderr transport.
type Option func(*config)

type config struct {
	out     io.Writer
	verbose bool
}

// WithVerbose enables a full JSON dump of each payload.
func WithVerbose() Option {
	return func(c *config) {
		c.verbose = true
	}
}

// WithWriter redirects output, e.g. to a buffer in tests.
func WithWriter(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.out = w
		}
	}
}

type stderrTransport struct {
	out     io.Writer
	verbose bool
}

// NewTransport creates a transport that writes to stderr.
func NewTransport(opts ...Option) vigil.Transport {
	cfg := &config{out: os.Stderr}
	for _, opt := range opts {
		opt(cfg)
	}
	return &stderrTransport{out: cfg.out, verbose: cfg.verbose}
}

// Post prints each payload and acknowledges with the last event ID.
func (t *stderrTransport) Post(ctx context.Context, batch []vigil.Payload, retries int) (string, error) {
	var id string
	for _, payload := range batch {
		t.print(payload)
		if v, ok := payload["event_id"].(string); ok {
			id = v
		}
	}
	return id, nil
}

// SendAsync prints the payload; there is nothing to defer.
func (t *stderrTransport) SendAsync(payload vigil.Payload) {
	t.print(payload)
}

func (t *stderrTransport) print(payload vigil.Payload) {
	// Main line: [VIGIL] <level> <event_id> <message>
	var parts []string
	parts = append(parts, "[VIGIL]")
	if level, ok := payload["level"].(string); ok {
		parts = append(parts, strings.ToUpper(level))
	}
	if id, ok := payload["event_id"].(string); ok {
		parts = append(parts, id)
	}
	fmt.Fprintln(t.out, strings.Join(parts, " "))

	if msg, ok := payload["message"].(string); ok {
		fmt.Fprintf(t.out, "        Message: %s\n", msg)
	}
	if tx, ok := payload["transaction"].(string); ok {
		fmt.Fprintf(t.out, "        Transaction: %s\n", tx)
	}
	if checksum, ok := payload["checksum"].(string); ok {
		fmt.Fprintf(t.out, "        Checksum: %s\n", checksum)
	}

	if t.verbose {
		if raw, err := json.MarshalIndent(payload, "        ", "  "); err == nil {
			fmt.Fprintf(t.out, "        %s\n", raw)
		}
	}
}

// Flush is a no-op for the stderr transport.
func (t *stderrTransport) Flush(ctx context.Context) error {
	return nil
}

// Close is a no-op for the stderr transport.
func (t *stderrTransport) Close() error {
	return nil
}
