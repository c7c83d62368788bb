// client.go sequences one submission: sampling, hooks, dispatch.

package vigil

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Client submits events. A Client is safe for concurrent use; the only
// shared mutable state is the last-event cell.
type Client struct {
	cfg Config
}

// New creates a Client. Misconfiguration (out-of-range sample rate,
// malformed hook shapes) is reported here, once, rather than on every
// submission.
func New(opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Client{cfg: cfg}, nil
}

// Send submits one event and returns exactly one Result: accepted with
// an identifier, unsampled, excluded by a pre-send hook, or failed with
// a classified reason. Per-call overrides apply to this submission only;
// an override that produces an invalid configuration panics with a
// *ConfigurationError.
//
// Sampling and hook suppression are decided before any rendering work:
// a dropped event costs no transport call and no post-send hook
// invocation.
func (c *Client) Send(ctx context.Context, event *Event, overrides ...Option) Result {
	cfg := c.cfg
	if len(overrides) > 0 {
		for _, opt := range overrides {
			opt(&cfg)
		}
		if err := cfg.validate(); err != nil {
			panic(&ConfigurationError{Reason: err.Error()})
		}
	}

	if !sampled(cfg.SampleRate, cfg.randFloat) {
		return Result{Status: StatusUnsampled}
	}

	ev := c.normalize(ctx, event)

	ev, ok := runBeforeSend(cfg.BeforeSend, ev)
	if !ok {
		return Result{Status: StatusExcluded}
	}

	result := dispatch(ctx, &cfg, ev)

	// Post-send is observation only: its return value is discarded and
	// its panics propagate to the caller.
	if !cfg.AfterSend.isZero() {
		cfg.AfterSend.invoke(ev, result)
	}

	return result
}

// Render produces the transport-ready payload for an event without
// submitting it, for callers who need the shape alone.
func (c *Client) Render(event *Event) Payload {
	return Render(c.normalize(context.Background(), event), c.cfg.Codec)
}

// LastEventID returns the identifier recorded by the most recent
// dispatch through this client's last-event cell.
func (c *Client) LastEventID() string {
	id, _ := c.cfg.LastEvent.Last()
	return id
}

// Flush delegates to the transport.
func (c *Client) Flush(ctx context.Context) error {
	return c.cfg.Transport.Flush(ctx)
}

// Close delegates to the transport.
func (c *Client) Close() error {
	return c.cfg.Transport.Close()
}

// normalize copies the event and fills derivable fields. The caller's
// record is never mutated.
func (c *Client) normalize(ctx context.Context, event *Event) *Event {
	ev := *event
	if ev.EventID == "" {
		ev.EventID = uuid.NewString()
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	if ev.Transaction == "" {
		if tx, ok := TransactionFromContext(ctx); ok {
			ev.Transaction = tx
		}
	}
	return &ev
}

// sampled decides acceptance for one submission. Pure: rate 1 always
// accepts, rate 0 always rejects, anything between draws once.
func sampled(rate float64, draw func() float64) bool {
	switch {
	case rate >= 1:
		return true
	case rate <= 0:
		return false
	default:
		return draw() < rate
	}
}

// runBeforeSend resolves the pre-send hook's verdict. A zero callable is
// the identity. nil and false suppress; *Event and Event continue the
// pipeline with the (possibly transformed) event; true continues with
// the event unchanged. Any other return type is a malformed hook.
func runBeforeSend(cb Callable, ev *Event) (*Event, bool) {
	if cb.isZero() {
		return ev, true
	}
	switch out := cb.invoke(ev).(type) {
	case nil:
		return nil, false
	case bool:
		if !out {
			return nil, false
		}
		return ev, true
	case *Event:
		if out == nil {
			return nil, false
		}
		return out, true
	case Event:
		return &out, true
	default:
		panic(&ConfigurationError{
			Reason: "before-send hook must return *Event, Event, bool, or nil",
		})
	}
}
