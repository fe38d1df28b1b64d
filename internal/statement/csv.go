package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/teller-dev/teller/internal/ledger"
)

// Header is the CSV header for an exported transaction log.
const Header = "entry_id,timestamp,event"

const (
	numFields    = 3
	colEntryID   = 0
	colTimestamp = 1
	colEvent     = 2
)

// MarshalEntry converts a ledger entry to a CSV row.
func MarshalEntry(e ledger.Entry) []string {
	row := make([]string, numFields)
	row[colEntryID] = e.ID.String()
	row[colTimestamp] = e.Time.Format(ledger.TimeLayout)
	row[colEvent] = e.Text
	return row
}

// WriteCSV writes entries as CSV (including header).
func WriteCSV(w io.Writer, entries []ledger.Entry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}
