// Package diag collects non-fatal pipeline warnings (skipped entities,
// ignored CAMM-GL commands) for a caller to
// surface however it likes; library packages never write to stderr
// directly.
package diag

import "fmt"

// Entry is a single non-fatal diagnostic.
type Entry struct {
	Op      string
	Message string
}

func (e Entry) String() string {
	if e.Op == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Collector accumulates diagnostics in emission order.
type Collector struct {
	Entries []Entry
}

// Warnf appends a formatted diagnostic. A nil Collector silently discards,
// so callers that don't care about diagnostics can pass nil.
func (c *Collector) Warnf(op, format string, args ...interface{}) {
	if c == nil {
		return
	}
	c.Entries = append(c.Entries, Entry{Op: op, Message: fmt.Sprintf(format, args...)})
}
