// Package ledger implements the append-only, ordered log of account events.
// Entries are immutable once appended; insertion order is chronological.
package ledger

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// TimeLayout is how entry timestamps are rendered.
const TimeLayout = "2006-01-02 15:04:05"

// Entry is one immutable, timestamped record of an account event.
type Entry struct {
	ID   snowflake.ID
	Time time.Time
	Text string
}

// String renders the entry as a single ledger line.
func (e Entry) String() string {
	return e.Text + " | Date: " + e.Time.Format(TimeLayout)
}

// Ledger is an append-only log. The zero value is not usable; construct
// with New so entries receive IDs from a shared snowflake node.
type Ledger struct {
	node    *snowflake.Node
	entries []Entry
}

// New creates an empty ledger stamping entries from node.
func New(node *snowflake.Node) *Ledger {
	return &Ledger{node: node}
}

// Append records an event with the current time and returns the entry.
func (l *Ledger) Append(text string) Entry {
	e := Entry{
		ID:   l.node.Generate(),
		Time: time.Now(),
		Text: text,
	}
	l.entries = append(l.entries, e)
	return e
}

// Size returns the number of entries.
func (l *Ledger) Size() int {
	return len(l.entries)
}

// All returns a copy of every entry in insertion order.
func (l *Ledger) All() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// LastN returns a copy of the most recent min(n, size) entries in
// chronological order. It returns nil for n <= 0 or an empty ledger.
func (l *Ledger) LastN(n int) []Entry {
	if n <= 0 || len(l.entries) == 0 {
		return nil
	}
	start := len(l.entries) - n
	if start < 0 {
		start = 0
	}
	out := make([]Entry, len(l.entries)-start)
	copy(out, l.entries[start:])
	return out
}
