package runlog

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"news-textmining/internal/types"
)

func TestAppendAndRead(t *testing.T) {
	l := New(t.TempDir())
	start := time.Date(2024, 10, 18, 12, 0, 0, 0, time.UTC)

	if err := l.Append(Record{
		Command:   "run",
		Source:    "finviz",
		StartedAt: start,
		Articles:  3,
		Tokens:    map[string]int{"Apple": 42},
		Fetches:   []types.FetchStatus{{Ticker: "NYSE:IBM", Source: "finviz", Error: "timeout"}},
	}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := l.Append(Record{RunID: "fixed", Command: "analyze", StartedAt: start.Add(time.Hour)}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	records, err := Read(l.dailyPath(start))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if _, err := uuid.Parse(records[0].RunID); err != nil {
		t.Errorf("Expected generated uuid run id, got %q", records[0].RunID)
	}
	if records[0].Tokens["Apple"] != 42 {
		t.Errorf("Expected 42 Apple tokens, got %d", records[0].Tokens["Apple"])
	}
	if !records[0].Fetches[0].Failed() {
		t.Error("Expected failed fetch status to round-trip")
	}
	if records[1].RunID != "fixed" {
		t.Errorf("Expected run id fixed, got %s", records[1].RunID)
	}
}

func TestCompressOlder(t *testing.T) {
	dir := t.TempDir()
	l := New(dir)

	old := filepath.Join(dir, "runs-2024-01-01.jsonl")
	fresh := filepath.Join(dir, "runs-2024-10-18.jsonl")
	for _, p := range []string{old, fresh} {
		if err := os.WriteFile(p, []byte(`{"run_id":"x"}`+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	past := time.Now().AddDate(0, 0, -30)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatal(err)
	}

	n, err := l.CompressOlder(7)
	if err != nil {
		t.Fatalf("CompressOlder failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 compressed file, got %d", n)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("Expected old file to be removed")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("Expected fresh file to be kept")
	}

	f, err := os.Open(old + ".gz")
	if err != nil {
		t.Fatalf("Expected gzip file: %v", err)
	}
	defer f.Close()
	gr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := io.ReadAll(gr)
	if string(b) != `{"run_id":"x"}`+"\n" {
		t.Errorf("Unexpected gzip content %q", b)
	}
}

func TestCompressOlderDisabled(t *testing.T) {
	n, err := New(filepath.Join(t.TempDir(), "missing")).CompressOlder(7)
	if err != nil || n != 0 {
		t.Errorf("Expected no-op on missing dir, got %d, %v", n, err)
	}
	if n, _ := New(t.TempDir()).CompressOlder(0); n != 0 {
		t.Errorf("Expected no-op with retention 0, got %d", n)
	}
}
