// codec.go defines the pluggable serialization helper used by the
// Sanitizer and transports.

package vigil

import "encoding/json"

// Codec encodes a value for the wire. The Sanitizer uses Encode as its
// "is this natively serializable" predicate: a value is safe exactly when
// Encode succeeds on it.
type Codec interface {
	Encode(v any) ([]byte, error)
}

// JSONCodec encodes with encoding/json. It is the default codec.
type JSONCodec struct{}

func (JSONCodec) Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}
