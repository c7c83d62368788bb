// sanitize.go guarantees that a value tree is fully representable by the
// configured codec before it crosses the transport boundary.

package vigil

import (
	"fmt"
	"reflect"
)

// Sanitizer recursively rewrites a nested value so that every node is
// accepted by the codec. Values the codec already accepts are returned
// unchanged; anything else degrades to a best-effort text rendering.
//
// Substructures containing no unsafe values are returned as-is, without
// reallocation. This matters for deeply nested payloads where the common
// case is that nothing needs replacing.
type Sanitizer struct {
	codec Codec
}

// NewSanitizer creates a Sanitizer backed by the given codec.
func NewSanitizer(codec Codec) *Sanitizer {
	return &Sanitizer{codec: codec}
}

// Sanitize returns a value equivalent to v in which every node the codec
// cannot encode has been replaced by its text rendering. It never fails:
// the fallback rendering is always representable.
func (s *Sanitizer) Sanitize(v any) any {
	out, _ := s.walk(v)
	return out
}

// walk returns the sanitized value and whether anything under it changed.
// The changed flag is what lets callers keep original substructures
// instead of relying on reference-identity tricks.
func (s *Sanitizer) walk(v any) (any, bool) {
	switch val := v.(type) {
	case nil, string, bool:
		return v, false

	case []any:
		return s.walkSlice(val)

	case map[string]any:
		return s.walkMap(val)

	default:
		if isNumericKind(v) {
			return v, false
		}
		// Structured records and custom objects: trust the codec's
		// verdict. On failure, degrade to text; the exact format is
		// best-effort, not stable.
		if _, err := s.codec.Encode(v); err == nil {
			return v, false
		}
		return fmt.Sprintf("%+v", v), true
	}
}

// walkSlice sanitizes elements in order, copying the slice only once the
// first change is found. Length and element order are preserved.
func (s *Sanitizer) walkSlice(in []any) (any, bool) {
	var out []any
	for i, elem := range in {
		next, changed := s.walk(elem)
		if changed && out == nil {
			out = make([]any, len(in))
			copy(out, in)
		}
		if changed {
			out[i] = next
		}
	}
	if out == nil {
		return in, false
	}
	return out, true
}

// walkMap sanitizes entry values, building a replacement map only when a
// value changed. Keys are never added or removed.
func (s *Sanitizer) walkMap(in map[string]any) (any, bool) {
	var out map[string]any
	for k, elem := range in {
		next, changed := s.walk(elem)
		if changed {
			if out == nil {
				out = make(map[string]any, len(in))
				for kk, vv := range in {
					out[kk] = vv
				}
			}
			out[k] = next
		}
	}
	if out == nil {
		return in, false
	}
	return out, true
}

// isNumericKind reports whether v is a plain numeric scalar. These are
// safe in any supported target format and skip the codec round-trip.
func isNumericKind(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
