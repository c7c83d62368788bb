// render.go converts an event record into its transport-ready payload.

package vigil

import (
	"time"
)

// MaxMessageLength is the receiving service's documented limit for the
// message field, in characters.
const MaxMessageLength = 8192

// Render produces the transport-ready payload for an event: internal
// bookkeeping fields are dropped, the message is truncated, structured
// records are flattened to plain maps, and the free-form Extra, User and
// Tags fields are sanitized independently. Absent fields are omitted, not
// rendered as empty values.
func Render(event *Event, codec Codec) Payload {
	san := NewSanitizer(codec)

	p := Payload{"event_id": event.EventID}

	platform := event.Platform
	if platform == "" {
		platform = "go"
	}
	p["platform"] = platform

	if !event.Timestamp.IsZero() {
		p["timestamp"] = event.Timestamp.UTC().Format(time.RFC3339)
	}

	setNonEmpty(p, "level", event.Level)
	setNonEmpty(p, "logger", event.Logger)
	setNonEmpty(p, "server_name", event.ServerName)
	setNonEmpty(p, "environment", event.Environment)
	setNonEmpty(p, "release", event.Release)
	setNonEmpty(p, "transaction", event.Transaction)
	setNonEmpty(p, "checksum", event.Checksum)

	if event.Message != "" {
		p["message"] = truncate(event.Message, MaxMessageLength)
	}

	if len(event.Breadcrumbs) > 0 {
		crumbs := make([]map[string]any, len(event.Breadcrumbs))
		for i, b := range event.Breadcrumbs {
			crumbs[i] = flattenBreadcrumb(b)
		}
		p["breadcrumbs"] = crumbs
	}

	if event.SDK != nil {
		p["sdk"] = map[string]any{
			"name":    event.SDK.Name,
			"version": event.SDK.Version,
		}
	}

	if event.Request != nil {
		p["request"] = flattenRequest(event.Request)
	}

	if event.Extra != nil {
		p["extra"] = san.Sanitize(event.Extra)
	}
	if event.User != nil {
		p["user"] = san.Sanitize(event.User)
	}
	if event.Tags != nil {
		p["tags"] = san.Sanitize(event.Tags)
	}

	if len(event.Exceptions) > 0 {
		values := make([]map[string]any, len(event.Exceptions))
		for i, exc := range event.Exceptions {
			values[i] = flattenException(exc)
		}
		p["exception"] = values
	}

	return p
}

// truncate limits s to max characters. The unit is characters, not
// bytes: the service limit is documented in characters.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func setNonEmpty(p Payload, key, value string) {
	if value != "" {
		p[key] = value
	}
}

func flattenBreadcrumb(b Breadcrumb) map[string]any {
	m := map[string]any{}
	if !b.Timestamp.IsZero() {
		m["timestamp"] = b.Timestamp.UTC().Format(time.RFC3339)
	}
	if b.Type != "" {
		m["type"] = b.Type
	}
	if b.Category != "" {
		m["category"] = b.Category
	}
	if b.Level != "" {
		m["level"] = b.Level
	}
	if b.Message != "" {
		m["message"] = b.Message
	}
	if len(b.Data) > 0 {
		m["data"] = b.Data
	}
	return m
}

// flattenRequest drops any key whose value is absent after flattening;
// the receiving service rejects explicit nulls in the request interface.
func flattenRequest(r *RequestContext) map[string]any {
	m := map[string]any{}
	if r.URL != "" {
		m["url"] = r.URL
	}
	if r.Method != "" {
		m["method"] = r.Method
	}
	if r.QueryString != "" {
		m["query_string"] = r.QueryString
	}
	if r.Cookies != "" {
		m["cookies"] = r.Cookies
	}
	if r.Data != nil {
		m["data"] = r.Data
	}
	if len(r.Headers) > 0 {
		m["headers"] = r.Headers
	}
	if len(r.Env) > 0 {
		m["env"] = r.Env
	}
	return m
}

func flattenException(exc Exception) map[string]any {
	m := map[string]any{}
	if exc.Type != "" {
		m["type"] = exc.Type
	}
	if exc.Value != "" {
		m["value"] = exc.Value
	}
	if exc.Module != "" {
		m["module"] = exc.Module
	}
	if exc.Stacktrace != nil {
		frames := make([]map[string]any, len(exc.Stacktrace.Frames))
		for i, f := range exc.Stacktrace.Frames {
			frames[i] = flattenFrame(f)
		}
		m["stacktrace"] = map[string]any{"frames": frames}
	}
	return m
}

func flattenFrame(f Frame) map[string]any {
	m := map[string]any{}
	if f.Filename != "" {
		m["filename"] = f.Filename
	}
	if f.Function != "" {
		m["function"] = f.Function
	}
	if f.Module != "" {
		m["module"] = f.Module
	}
	if f.AbsPath != "" {
		m["abs_path"] = f.AbsPath
	}
	if f.ContextLine != "" {
		m["context_line"] = f.ContextLine
	}
	if f.Lineno > 0 {
		m["lineno"] = f.Lineno
	}
	if f.Colno > 0 {
		m["colno"] = f.Colno
	}
	if f.InApp {
		m["in_app"] = true
	}
	return m
}
