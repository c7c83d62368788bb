package noop

import (
	"context"
	"testing"

	"github.com/BobbyMcWho/vigil-go/pkg/vigil"
)

func TestNoop_PostAcknowledgesWithoutDelivering(t *testing.T) {
	tr := NewTransport()

	id, err := tr.Post(context.Background(), []vigil.Payload{{"event_id": "evt-1"}}, 1)
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if id != "evt-1" {
		t.Errorf("ack = %q, want the payload's own identifier", id)
	}
}

func TestNoop_EmptyBatch(t *testing.T) {
	tr := NewTransport()

	id, err := tr.Post(context.Background(), nil, 1)
	if err != nil || id != "" {
		t.Errorf("Post(nil) = (%q, %v), want empty ack", id, err)
	}
}

func TestNoop_RemainingMethodsAreNoops(t *testing.T) {
	tr := NewTransport()

	tr.SendAsync(vigil.Payload{"event_id": "evt-1"})
	if err := tr.Flush(context.Background()); err != nil {
		t.Errorf("Flush: %v", err)
	}
	if err := tr.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
