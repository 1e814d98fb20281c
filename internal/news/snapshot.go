package news

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"news-textmining/internal/interfaces"
	"news-textmining/internal/store"
	"news-textmining/internal/types"
)

// Snapshot is a frozen article set. Analysing the same snapshot twice gives
// identical tables.
type Snapshot struct {
	CreatedAt time.Time           `json:"created_at"`
	Source    string              `json:"source"`
	Companies []types.Company     `json:"companies"`
	Articles  []types.Article     `json:"articles"`
	Statuses  []types.FetchStatus `json:"statuses,omitempty"`
}

// SaveSnapshot writes snap as indented JSON, replacing path atomically.
func SaveSnapshot(path string, snap *Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	return &snap, nil
}

// SnapshotFetcher serves articles from a snapshot file, loaded on first use.
type SnapshotFetcher struct {
	path string

	once     sync.Once
	byTicker map[string][]types.Article
	err      error
}

var _ interfaces.ArticleFetcher = (*SnapshotFetcher)(nil)

func NewSnapshotFetcher(path string) *SnapshotFetcher {
	return &SnapshotFetcher{path: path}
}

func (f *SnapshotFetcher) Name() string { return store.SourceSnapshot }

func (f *SnapshotFetcher) Fetch(ctx context.Context, ticker string) ([]types.Article, error) {
	f.once.Do(func() {
		snap, err := LoadSnapshot(f.path)
		if err != nil {
			f.err = err
			return
		}
		f.byTicker = make(map[string][]types.Article)
		for _, a := range snap.Articles {
			sym := types.SymbolOf(a.Ticker)
			f.byTicker[sym] = append(f.byTicker[sym], a)
		}
	})
	if f.err != nil {
		return nil, f.err
	}

	articles := f.byTicker[types.SymbolOf(ticker)]
	if len(articles) == 0 {
		return nil, fmt.Errorf("snapshot has no articles for %s", ticker)
	}
	return append([]types.Article(nil), articles...), nil
}
