package report

import (
	"encoding/json"
	"io"
)

// JSONFormatter formats change reports as JSON, one document per report.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format renders the report as a single JSON document.
func (f *JSONFormatter) Format(report *ChangeReport, w io.Writer) error {
	return json.NewEncoder(w).Encode(report)
}

// FormatEntries renders each entry as its own JSON document, one per line.
func (f *JSONFormatter) FormatEntries(entries []Entry, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for _, entry := range entries {
		if err := encoder.Encode(entry); err != nil {
			return err
		}
	}
	return nil
}
