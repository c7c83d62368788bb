// checksum.go derives stable grouping hashes for events.

package vigil

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// maxChecksumFrames bounds how much of the stack participates in
// grouping; deeper frames vary too much between occurrences.
const maxChecksumFrames = 3

// Checksum generates a hash for grouping similar events. It is based on
// the exception types and the top stack frame functions, falling back to
// the transaction and message when no exception is present. Variable
// data (identifiers, timestamps, line numbers) is ignored so repeated
// occurrences of the same fault hash identically.
func Checksum(event *Event) string {
	var parts []string

	for _, exc := range event.Exceptions {
		parts = append(parts, exc.Module, exc.Type)
		if exc.Stacktrace != nil {
			for i, f := range exc.Stacktrace.Frames {
				if i >= maxChecksumFrames {
					break
				}
				parts = append(parts, f.Module, f.Function)
			}
		}
	}

	if len(parts) == 0 {
		parts = append(parts, event.Transaction, event.Message)
	}

	input := strings.Join(parts, "|")
	hash := sha256.Sum256([]byte(input))

	// Hex-encoded first 16 bytes (32 hex chars)
	return hex.EncodeToString(hash[:16])
}
