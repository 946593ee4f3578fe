// Package runlog keeps an append-only history of analyze and compile
// runs, as JSON Lines or in a SQLite database. It is an audit record of
// completed requests, not session state: nothing in the pipeline reads
// it back to restore a session.
package runlog

import "time"

// Record is one completed run.
type Record struct {
	ID       string        `json:"id"`
	Time     time.Time     `json:"time"`
	Phase    string        `json:"phase"` // "analyze" or "compile"
	Source   string        `json:"source"`
	Success  bool          `json:"success"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// Recorder appends run records to some backing store.
type Recorder interface {
	Append(Record) error
}
