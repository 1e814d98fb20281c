// Package runlog appends one JSON line per pipeline run to a daily file and
// gzips files past the retention window.
package runlog

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"news-textmining/internal/types"
)

const dayLayout = "2006-01-02"

// Record summarises a single run.
type Record struct {
	RunID      string              `json:"run_id"`
	Command    string              `json:"command"`
	Source     string              `json:"source"`
	StartedAt  time.Time           `json:"started_at"`
	FinishedAt time.Time           `json:"finished_at"`
	Articles   int                 `json:"articles"`
	Tokens     map[string]int      `json:"tokens,omitempty"`
	Fetches    []types.FetchStatus `json:"fetches,omitempty"`
	Lexicons   []string            `json:"lexicons,omitempty"`
	Outputs    []string            `json:"outputs,omitempty"`
	Error      string              `json:"error,omitempty"`
}

// NewRunID returns a random run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Log writes run records under dir.
type Log struct {
	mu  sync.Mutex
	dir string
}

func New(dir string) *Log {
	if dir == "" {
		dir = "logs"
	}
	return &Log{dir: dir}
}

func (l *Log) dailyPath(t time.Time) string {
	return filepath.Join(l.dir, "runs-"+t.UTC().Format(dayLayout)+".jsonl")
}

// Append writes r to the file of the day the run started.
func (l *Log) Append(r Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if r.RunID == "" {
		r.RunID = NewRunID()
	}
	if r.StartedAt.IsZero() {
		r.StartedAt = time.Now()
	}

	p := l.dailyPath(r.StartedAt)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create run log dir: %w", err)
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	defer f.Close()

	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal run record: %w", err)
	}
	_, err = fmt.Fprintln(f, string(b))
	return err
}

// CompressOlder gzips run files last modified more than retentionDays ago.
// It returns the number of files compressed.
func (l *Log) CompressOlder(retentionDays int) (int, error) {
	if retentionDays <= 0 {
		return 0, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	compressed := 0
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".jsonl" {
			continue
		}
		info, err := e.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := gzipFile(filepath.Join(l.dir, e.Name())); err != nil {
			return compressed, err
		}
		compressed++
	}
	return compressed, nil
}

// gzipFile replaces p with p.gz. An existing p.gz wins and p is removed.
func gzipFile(p string) error {
	gz := p + ".gz"
	if _, err := os.Stat(gz); err == nil {
		return os.Remove(p)
	}

	in, err := os.Open(p)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(gz, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	gw := gzip.NewWriter(out)
	_, copyErr := io.Copy(gw, in)
	closeErr := gw.Close()
	if err := out.Close(); closeErr == nil {
		closeErr = err
	}
	if copyErr != nil || closeErr != nil {
		os.Remove(gz)
		if copyErr != nil {
			return fmt.Errorf("compress %s: %w", p, copyErr)
		}
		return fmt.Errorf("compress %s: %w", p, closeErr)
	}
	return os.Remove(p)
}

// Read returns the records of an uncompressed run file, oldest first.
func Read(path string) ([]Record, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []Record
	dec := json.NewDecoder(bytes.NewReader(b))
	for dec.More() {
		var r Record
		if err := dec.Decode(&r); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		out = append(out, r)
	}
	return out, nil
}
