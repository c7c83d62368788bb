// system.go snapshots process state for event enrichment.

package vigil

import (
	"os"
	"runtime"
	"time"
)

// SystemContext captures process metrics at the current moment as a map
// suitable for an event's Extra field. The startTime parameter is used
// to calculate process uptime.
func SystemContext(startTime time.Time) map[string]any {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	hostname, _ := os.Hostname() // Ignore error, empty hostname is acceptable

	uptimeMs := time.Since(startTime).Milliseconds()
	if uptimeMs < 0 {
		uptimeMs = 0
	}

	return map[string]any{
		"hostname":     hostname,
		"go_version":   runtime.Version(),
		"goroutines":   runtime.NumGoroutine(),
		"memory_bytes": int64(memStats.Alloc),
		"uptime_ms":    uptimeMs,
	}
}
