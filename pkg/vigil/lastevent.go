// lastevent.go holds the process-wide "last event identifier" slot.

package vigil

import "sync"

// LastEventCell is a single mutex-guarded slot recording the identifier
// and origin of the most recently dispatched event. It is advisory state
// for correlation (log lines, UIs): last-writer-wins, with no ordering
// guarantee across concurrent submissions.
type LastEventCell struct {
	mu     sync.Mutex
	id     string
	source Source
}

// Record stores the identifier and origin of a dispatched event.
func (c *LastEventCell) Record(id string, source Source) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.id = id
	c.source = source
}

// Last returns the most recently recorded identifier and origin.
func (c *LastEventCell) Last() (string, Source) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id, c.source
}

// defaultLastEvent is shared by all clients unless overridden with
// WithLastEventCell.
var defaultLastEvent = &LastEventCell{}
