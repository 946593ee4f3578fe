package runlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

// JSONLRecorder appends records as JSON Lines to a writer.
type JSONLRecorder struct {
	mu sync.Mutex
	w  io.Writer
	c  io.Closer // set when the recorder owns the destination file
}

// NewJSONLRecorder wraps an existing writer.
func NewJSONLRecorder(w io.Writer) *JSONLRecorder {
	return &JSONLRecorder{w: w}
}

// OpenJSONL opens (creating or appending) a JSONL run log file.
func OpenJSONL(filename string) (*JSONLRecorder, error) {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	return &JSONLRecorder{w: f, c: f}, nil
}

// Append writes one record as a single JSON line.
func (r *JSONLRecorder) Append(rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}

// Close closes the underlying file when the recorder owns one.
func (r *JSONLRecorder) Close() error {
	if r.c == nil {
		return nil
	}
	return r.c.Close()
}

// ReadJSONL parses a run log from a JSONL reader. Empty lines are
// skipped; malformed lines fail with their line number.
func ReadJSONL(rd io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(rd)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" {
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("line %d: invalid JSON: %w", lineNum, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading run log: %w", err)
	}
	return records, nil
}
