package runlog

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func sampleRecord() Record {
	return Record{
		ID:       "run-1",
		Time:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Phase:    "compile",
		Source:   "y = 2 + 3.5",
		Success:  true,
		Duration: 40 * time.Millisecond,
	}
}

func TestJSONLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	rec := NewJSONLRecorder(&buf)

	first := sampleRecord()
	second := sampleRecord()
	second.ID = "run-2"
	second.Success = false
	second.Error = "unexpected character \"$\""

	if err := rec.Append(first); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := rec.Append(second); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	if got := strings.Count(buf.String(), "\n"); got != 2 {
		t.Errorf("line count = %d, want 2", got)
	}

	records, err := ReadJSONL(&buf)
	if err != nil {
		t.Fatalf("ReadJSONL failed: %v", err)
	}
	if diff := cmp.Diff([]Record{first, second}, records); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReadJSONLSkipsEmptyLines(t *testing.T) {
	input := `{"id":"a","time":"2025-06-01T12:00:00Z","phase":"analyze","source":"x = 1","success":true,"duration_ns":0}

{"id":"b","time":"2025-06-01T12:00:01Z","phase":"compile","source":"x = 1","success":true,"duration_ns":0}
`
	records, err := ReadJSONL(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSONL failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("record count = %d, want 2", len(records))
	}
}

func TestReadJSONLReportsLineNumber(t *testing.T) {
	input := "{\"id\":\"a\",\"time\":\"2025-06-01T12:00:00Z\",\"phase\":\"analyze\",\"source\":\"\",\"success\":true,\"duration_ns\":0}\nnot json\n"
	_, err := ReadJSONL(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected error for malformed line")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error = %v, want line 2 mentioned", err)
	}
}

func TestOpenJSONLAppends(t *testing.T) {
	path := t.TempDir() + "/runs.jsonl"

	rec, err := OpenJSONL(path)
	if err != nil {
		t.Fatalf("OpenJSONL failed: %v", err)
	}
	if err := rec.Append(sampleRecord()); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	rec.Close()

	// Reopen and append again: existing lines must survive
	rec, err = OpenJSONL(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if err := rec.Append(sampleRecord()); err != nil {
		t.Fatalf("Append after reopen failed: %v", err)
	}
	rec.Close()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open for read: %v", err)
	}
	defer f.Close()
	records, err := ReadJSONL(f)
	if err != nil {
		t.Fatalf("ReadJSONL failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("record count = %d, want 2", len(records))
	}
}
