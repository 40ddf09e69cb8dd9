package algolia

import (
	"encoding/json"
	"strings"
)

// Operation classifies what a build log entry did to the index.
type Operation string

const (
	OperationAdd    Operation = "add"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
	OperationBatch  Operation = "batch"
	OperationOther  Operation = "other"
)

// LogEntry is one build log record returned by the logs endpoint.
//
// Timestamps are RFC3339 strings and compare correctly as plain strings,
// which is how the high-water mark filtering works.
type LogEntry struct {
	Timestamp  string `json:"timestamp"`
	Method     string `json:"method"`
	URL        string `json:"url"`
	AnswerCode string `json:"answer_code"`
	QueryBody  string `json:"query_body"`
	Index      string `json:"index"`
}

// batchRequest mirrors one element of the "requests" array in a batch
// query body.
type batchRequest struct {
	Action   string `json:"action"`
	ObjectID string `json:"objectID"`
	Body     struct {
		ObjectID string `json:"objectID"`
	} `json:"body"`
}

// Operation derives the kind of change from the request method and path.
func (e *LogEntry) Operation() Operation {
	path := e.path()
	if strings.HasSuffix(path, "/batch") {
		return OperationBatch
	}
	switch strings.ToUpper(e.Method) {
	case "DELETE":
		return OperationDelete
	case "PUT":
		return OperationUpdate
	case "POST":
		return OperationAdd
	}
	return OperationOther
}

// ObjectIDs returns the identifiers of the records affected by this entry.
//
// For batch operations the IDs come from the recorded query body; for
// single-object operations the ID is the trailing path segment. Entries
// that touch the whole index (clear, settings changes) return nil.
func (e *LogEntry) ObjectIDs() []string {
	path := e.path()
	if strings.HasSuffix(path, "/batch") {
		return e.batchObjectIDs()
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) < 4 {
		// "1/indexes/<name>" - an index-level operation with no object
		return nil
	}
	last := segments[len(segments)-1]
	switch last {
	case "query", "clear", "settings", "browse", "":
		return nil
	}
	return []string{last}
}

// IsNewer reports whether this entry is strictly newer than the given
// timestamp high-water mark.
func (e *LogEntry) IsNewer(timestamp string) bool {
	return e.Timestamp > timestamp
}

func (e *LogEntry) batchObjectIDs() []string {
	var body struct {
		Requests []batchRequest `json:"requests"`
	}
	if err := json.Unmarshal([]byte(e.QueryBody), &body); err != nil {
		return nil
	}

	var ids []string
	for _, req := range body.Requests {
		switch {
		case req.Body.ObjectID != "":
			ids = append(ids, req.Body.ObjectID)
		case req.ObjectID != "":
			ids = append(ids, req.ObjectID)
		}
	}
	return ids
}

// path strips any query string from the recorded request URL.
func (e *LogEntry) path() string {
	if i := strings.IndexByte(e.URL, '?'); i >= 0 {
		return e.URL[:i]
	}
	return e.URL
}
