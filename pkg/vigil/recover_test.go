package vigil

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/willibrandon/mtlog"
)

func recoverClient(t *testing.T) (*Client, *captureTransport) {
	t.Helper()
	transport := &captureTransport{}
	client, err := New(
		WithTransport(transport),
		WithLastEventCell(&LastEventCell{}),
		WithLogger(mtlog.New()),
	)
	if err != nil {
		t.Fatal(err)
	}
	return client, transport
}

func TestRecover_CapturesPanic(t *testing.T) {
	client, transport := recoverClient(t)

	func() {
		defer Recover(context.Background(), client)
		panic("something broke")
	}()

	if transport.postCount() != 1 {
		t.Fatalf("posted %d events, want 1", transport.postCount())
	}

	payload := transport.posted[0][0]
	if payload["message"] != "something broke" {
		t.Errorf("message = %v", payload["message"])
	}
	if payload["level"] != "fatal" {
		t.Errorf("level = %v", payload["level"])
	}
	if payload["checksum"] == "" {
		t.Error("no grouping checksum on captured panic")
	}

	values, ok := payload["exception"].([]map[string]any)
	if !ok || len(values) != 1 {
		t.Fatalf("exception = %#v, want one record", payload["exception"])
	}
	st, ok := values[0]["stacktrace"].(map[string]any)
	if !ok {
		t.Fatal("panic captured without stacktrace")
	}
	frames := st["frames"].([]map[string]any)
	if len(frames) == 0 {
		t.Fatal("stacktrace has no frames")
	}

	foundSelf := false
	for _, f := range frames {
		if fn, _ := f["function"].(string); strings.Contains(fn, "TestRecover_CapturesPanic") {
			foundSelf = true
		}
	}
	if !foundSelf {
		t.Error("captured frames do not include the panicking function")
	}
}

func TestRecover_ReturnsRecoveredValue(t *testing.T) {
	client, _ := recoverClient(t)

	cause := errors.New("db gone")
	var got any
	func() {
		defer func() { got = Recover(context.Background(), client) }()
		panic(cause)
	}()

	if got != any(cause) {
		t.Errorf("Recover returned %v, want the panic value", got)
	}
}

func TestRecover_ErrorValueFormatted(t *testing.T) {
	client, transport := recoverClient(t)

	func() {
		defer Recover(context.Background(), client)
		panic(errors.New("db gone"))
	}()

	payload := transport.posted[0][0]
	if payload["message"] != "db gone" {
		t.Errorf("message = %v, want the error text", payload["message"])
	}
}

func TestRecover_NoPanicIsNoop(t *testing.T) {
	client, transport := recoverClient(t)

	func() {
		defer Recover(context.Background(), client)
	}()

	if transport.postCount() != 0 {
		t.Errorf("posted %d events for a clean return", transport.postCount())
	}
}

func TestFormatRecovered(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "boom", "boom"},
		{"error", errors.New("bad"), "bad"},
		{"nil", nil, "<nil>"},
		{"int", 42, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatRecovered(tt.in); got != tt.want {
				t.Errorf("formatRecovered(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
