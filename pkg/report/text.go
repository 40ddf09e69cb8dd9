package report

import (
	"fmt"
	"io"
	"strings"
)

// TextFormatter formats change reports as human-readable text.
type TextFormatter struct{}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the count change summary followed by one line per entry.
func (f *TextFormatter) Format(report *ChangeReport, w io.Writer) error {
	_, err := fmt.Fprintf(w, "index %q: %d -> %d (%+d records)\n",
		report.Index, report.OldCount, report.NewCount, report.Delta)
	if err != nil {
		return err
	}

	for _, entry := range report.Entries {
		if err := f.formatEntry(entry, "  ", w); err != nil {
			return err
		}
	}
	return nil
}

// FormatEntries renders log entries without a count summary.
func (f *TextFormatter) FormatEntries(entries []Entry, w io.Writer) error {
	for _, entry := range entries {
		if err := f.formatEntry(entry, "", w); err != nil {
			return err
		}
	}
	return nil
}

func (f *TextFormatter) formatEntry(entry Entry, indent string, w io.Writer) error {
	var err error
	if len(entry.ObjectIDs) > 0 {
		_, err = fmt.Fprintf(w, "%s%s %s %s\n",
			indent, entry.Timestamp, entry.Operation, strings.Join(entry.ObjectIDs, ","))
	} else {
		_, err = fmt.Fprintf(w, "%s%s %s\n", indent, entry.Timestamp, entry.Operation)
	}
	return err
}
