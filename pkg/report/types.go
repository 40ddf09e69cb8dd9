// Package report provides formatting for detected index changes.
package report

import "time"

// Entry is one index change taken from the build logs.
type Entry struct {
	// Timestamp is the RFC3339 time the change was recorded.
	Timestamp string `json:"timestamp"`

	// Operation is the kind of change (add, update, delete, batch, other).
	Operation string `json:"operation"`

	// ObjectIDs lists the affected record identifiers, when known.
	ObjectIDs []string `json:"object_ids,omitempty"`
}

// ChangeReport describes one reportable record count change.
type ChangeReport struct {
	// Index is the name of the monitored index.
	Index string `json:"index"`

	// OldCount is the snapshot the change was measured against.
	OldCount int64 `json:"old_count"`

	// NewCount is the count observed on this poll.
	NewCount int64 `json:"new_count"`

	// Delta is NewCount - OldCount.
	Delta int64 `json:"delta"`

	// ObservedAt is when the change was detected.
	ObservedAt time.Time `json:"observed_at"`

	// Entries lists the build log entries behind the change, newest last.
	// May be empty when the logs were unavailable or already reported.
	Entries []Entry `json:"entries,omitempty"`
}

// HasEntries returns true if any log entries accompany the count change.
func (r *ChangeReport) HasEntries() bool {
	return len(r.Entries) > 0
}
