package report

import (
	"fmt"
	"io"
)

// Formatter renders index changes in a specific format.
type Formatter interface {
	// Format renders one change report to the given writer.
	Format(report *ChangeReport, w io.Writer) error

	// FormatEntries renders bare log entries, used by all-logs mode where
	// no count comparison happens.
	FormatEntries(entries []Entry, w io.Writer) error

	// Name returns the format name (text, json).
	Name() string
}

// NewFormatter returns the formatter for the given format name.
func NewFormatter(name string) (Formatter, error) {
	switch name {
	case "text":
		return NewTextFormatter(), nil
	case "json":
		return NewJSONFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (expected text or json)", name)
	}
}
