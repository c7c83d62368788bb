package vigil

import (
	"strings"
	"testing"
	"time"
)

func TestRender_MessageTruncatedToLimit(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		wantLen int
	}{
		{"shorter than limit", 100, 100},
		{"exactly at limit", MaxMessageLength, MaxMessageLength},
		{"one over limit", MaxMessageLength + 1, MaxMessageLength},
		{"far over limit", MaxMessageLength * 3, MaxMessageLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &Event{
				EventID: "evt-1",
				Message: strings.Repeat("a", tt.length),
			}
			p := Render(event, JSONCodec{})

			msg := p["message"].(string)
			if len(msg) != tt.wantLen {
				t.Errorf("message length = %d, want %d", len(msg), tt.wantLen)
			}
		})
	}
}

func TestRender_TruncationCountsCharactersNotBytes(t *testing.T) {
	// Multibyte runes: the limit is characters, so the rendered message
	// may exceed the limit in bytes but never in runes.
	event := &Event{
		EventID: "evt-1",
		Message: strings.Repeat("é", MaxMessageLength+10),
	}
	p := Render(event, JSONCodec{})

	msg := p["message"].(string)
	if got := len([]rune(msg)); got != MaxMessageLength {
		t.Errorf("rune count = %d, want %d", got, MaxMessageLength)
	}
}

func TestRender_AbsentFieldsOmitted(t *testing.T) {
	event := &Event{EventID: "evt-1"}
	p := Render(event, JSONCodec{})

	for _, key := range []string{
		"message", "level", "logger", "server_name", "environment",
		"release", "transaction", "checksum", "breadcrumbs", "sdk",
		"request", "extra", "user", "tags", "exception", "timestamp",
	} {
		if _, present := p[key]; present {
			t.Errorf("absent field %q was rendered", key)
		}
	}

	if p["event_id"] != "evt-1" {
		t.Errorf("event_id = %v, want evt-1", p["event_id"])
	}
	if p["platform"] != "go" {
		t.Errorf("platform = %v, want go default", p["platform"])
	}
}

func TestRender_SourceNeverCrossesBoundary(t *testing.T) {
	event := &Event{EventID: "evt-1", Source: SourceLogger}
	p := Render(event, JSONCodec{})

	for key := range p {
		if key == "source" {
			t.Error("internal origin tag was rendered")
		}
	}
}

func TestRender_RequestDropsAbsentKeys(t *testing.T) {
	event := &Event{
		EventID: "evt-1",
		Request: &RequestContext{
			URL:    "https://example.com/checkout",
			Method: "POST",
			Data:   nil, // absent: must be omitted entirely
		},
	}
	p := Render(event, JSONCodec{})

	req := p["request"].(map[string]any)
	if _, present := req["data"]; present {
		t.Error("nil request data was rendered")
	}
	if _, present := req["headers"]; present {
		t.Error("empty headers were rendered")
	}
	if req["url"] != "https://example.com/checkout" || req["method"] != "POST" {
		t.Errorf("request flattened wrong: %v", req)
	}
}

func TestRender_FlattensStructuredRecords(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	event := &Event{
		EventID:   "evt-1",
		Timestamp: ts,
		Breadcrumbs: []Breadcrumb{
			{Timestamp: ts, Category: "http", Message: "GET /health", Level: "info"},
		},
		SDK: &SDKInfo{Name: "vigil-go", Version: "1.0.0"},
	}
	p := Render(event, JSONCodec{})

	if p["timestamp"] != "2026-03-14T09:26:53Z" {
		t.Errorf("timestamp = %v", p["timestamp"])
	}

	crumbs := p["breadcrumbs"].([]map[string]any)
	if len(crumbs) != 1 {
		t.Fatalf("breadcrumb count = %d, want 1", len(crumbs))
	}
	if crumbs[0]["category"] != "http" || crumbs[0]["message"] != "GET /health" {
		t.Errorf("breadcrumb flattened wrong: %v", crumbs[0])
	}

	sdk := p["sdk"].(map[string]any)
	if sdk["name"] != "vigil-go" || sdk["version"] != "1.0.0" {
		t.Errorf("sdk flattened wrong: %v", sdk)
	}
}

func TestRender_SanitizesFreeFormFieldsIndependently(t *testing.T) {
	event := &Event{
		EventID: "evt-1",
		Extra:   map[string]any{"conn": make(chan int), "attempt": 3},
		Tags:    map[string]any{"region": "eu-1"},
		User:    map[string]any{"id": "u-9", "session": func() {}},
	}
	p := Render(event, JSONCodec{})

	extra := p["extra"].(map[string]any)
	if _, ok := extra["conn"].(string); !ok {
		t.Errorf("extra.conn = %T, want sanitized string", extra["conn"])
	}
	if extra["attempt"] != 3 {
		t.Errorf("extra.attempt changed: %v", extra["attempt"])
	}

	user := p["user"].(map[string]any)
	if _, ok := user["session"].(string); !ok {
		t.Errorf("user.session = %T, want sanitized string", user["session"])
	}

	tags := p["tags"].(map[string]any)
	if tags["region"] != "eu-1" {
		t.Errorf("tags.region changed: %v", tags["region"])
	}
}

func TestRender_FlattensExceptionsWithFrames(t *testing.T) {
	event := &Event{
		EventID: "evt-1",
		Exceptions: []Exception{{
			Type:  "*os.PathError",
			Value: "open /etc/missing: no such file",
			Stacktrace: &Stacktrace{Frames: []Frame{
				{Function: "loadConfig", Module: "main", Filename: "config.go", Lineno: 42, InApp: true},
				{Function: "Open", Module: "os", Filename: "file.go", Lineno: 310},
			}},
		}},
	}
	p := Render(event, JSONCodec{})

	values := p["exception"].([]map[string]any)
	if len(values) != 1 {
		t.Fatalf("exception count = %d, want 1", len(values))
	}
	exc := values[0]
	if exc["type"] != "*os.PathError" {
		t.Errorf("type = %v", exc["type"])
	}

	st := exc["stacktrace"].(map[string]any)
	frames := st["frames"].([]map[string]any)
	if len(frames) != 2 {
		t.Fatalf("frame count = %d, want 2", len(frames))
	}
	if frames[0]["function"] != "loadConfig" || frames[0]["lineno"] != 42 {
		t.Errorf("frame flattened wrong: %v", frames[0])
	}
	if frames[0]["in_app"] != true {
		t.Errorf("in_app missing on app frame: %v", frames[0])
	}
	if _, present := frames[1]["in_app"]; present {
		t.Errorf("in_app rendered for runtime frame: %v", frames[1])
	}
}

func TestRender_PayloadIsEncodable(t *testing.T) {
	codec := JSONCodec{}
	event := &Event{
		EventID: "evt-1",
		Message: "boom",
		Extra:   map[string]any{"bad": make(chan int)},
	}
	p := Render(event, codec)
	if _, err := codec.Encode(p); err != nil {
		t.Fatalf("rendered payload not encodable: %v", err)
	}
}
