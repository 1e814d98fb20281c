package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-textmining/internal/lexicon"
	"news-textmining/internal/news"
	"news-textmining/internal/store"
	"news-textmining/internal/types"
)

var ts = time.Date(2024, 10, 18, 12, 0, 0, 0, time.UTC)

func companies() []types.Company {
	return []types.Company{
		{Name: "Apple", Ticker: "NASDAQ:AAPL"},
		{Name: "IBM", Ticker: "NYSE:IBM"},
		{Name: "Netflix", Ticker: "NASDAQ:NFLX"},
	}
}

func articles() []types.Article {
	return []types.Article{
		{Company: "Apple", Ticker: "NASDAQ:AAPL", ID: "a1", PublishedAt: ts, Heading: "Apple", Text: "Strong iPhone sales, strong growth despite volatility."},
		{Company: "Apple", Ticker: "NASDAQ:AAPL", ID: "a2", PublishedAt: ts.Add(-time.Hour), Text: "Shares of Apple rose 3.5 percent in 2024."},
		{Company: "IBM", Ticker: "NYSE:IBM", ID: "i1", PublishedAt: ts, Text: "IBM faces a lawsuit and weak growth."},
	}
}

func lexicons(t *testing.T) []*lexicon.Lexicon {
	t.Helper()
	afinn, err := lexicon.Builtin("afinn")
	require.NoError(t, err)
	lm, err := lexicon.Builtin("loughran")
	require.NoError(t, err)
	return []*lexicon.Lexicon{afinn, lm}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	opts := Options{ExcludeNumeric: true, TopN: 5}
	a := Analyze(companies(), articles(), lexicons(t), opts)
	b := Analyze(companies(), articles(), lexicons(t), opts)
	assert.True(t, reflect.DeepEqual(a, b))
}

func TestAnalyzeTables(t *testing.T) {
	res := Analyze(companies(), articles(), lexicons(t), Options{ExcludeNumeric: true, TopN: 3})

	assert.Equal(t, map[string]int{"Apple": 2, "IBM": 1, "Netflix": 0}, res.ArticleCounts)
	assert.Equal(t, 0, res.TokenTotals["Netflix"])

	sum := 0
	for _, c := range res.WordCounts {
		if c.Company == "Apple" {
			sum += c.N
		}
	}
	assert.Equal(t, res.TokenTotals["Apple"], sum)

	for _, row := range res.TfIdf {
		assert.NotEqual(t, "2024", row.Word, "numbers are excluded from tf-idf")
		if row.Word == "growth" {
			assert.Equal(t, 0.0, row.IDF, "growth is used by every company with words")
		}
	}

	lm := res.Lexicon("loughran")
	require.NotNil(t, lm)
	assert.False(t, lm.Scored)
	assert.Empty(t, lm.Contributions)
	require.Len(t, lm.Positivity, 3)

	// Apple: strong x2, growth -> positive 3; volatility -> negative 1
	apple := lm.Positivity[0]
	assert.Equal(t, 3, apple.Positive)
	assert.Equal(t, 1, apple.Negative)
	require.NotNil(t, apple.Score)
	assert.Equal(t, 0.5, *apple.Score)

	netflix := lm.Positivity[2]
	assert.Equal(t, "Netflix", netflix.Company)
	assert.Nil(t, netflix.Score)

	afinn := res.Lexicon("afinn")
	require.NotNil(t, afinn)
	assert.True(t, afinn.Scored)
	assert.NotEmpty(t, afinn.Contributions)

	assert.Nil(t, res.Lexicon("nrc"))
}

func TestLexiconSwapKeepsUpstreamTables(t *testing.T) {
	opts := Options{ExcludeNumeric: true, TopN: 5}
	all := lexicons(t)

	a := Analyze(companies(), articles(), all[:1], opts)
	b := Analyze(companies(), articles(), all[1:], opts)

	assert.Equal(t, a.WordCounts, b.WordCounts)
	assert.Equal(t, a.TfIdf, b.TfIdf)
	assert.Equal(t, a.TokenTotals, b.TokenTotals)
	assert.NotEqual(t, a.Lexicons, b.Lexicons)
}

type flakyFetcher struct{}

func (flakyFetcher) Name() string { return "flaky" }

func (flakyFetcher) Fetch(ctx context.Context, ticker string) ([]types.Article, error) {
	if ticker == "NYSE:IBM" {
		return nil, errors.New("unreachable")
	}
	var out []types.Article
	for _, a := range articles() {
		if a.Ticker == ticker {
			out = append(out, a)
		}
	}
	return out, nil
}

func TestRunnerRun(t *testing.T) {
	cfg := store.Default()
	cfg.Companies = companies()
	cfg.Fetch.RatePerSecond = 0

	r, err := NewRunner(cfg, flakyFetcher{}, lexicon.NewRegistry())
	require.NoError(t, err)

	res, col, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, col.Failed(), 2, "IBM errors and Netflix has no articles")
	assert.Equal(t, 2, res.ArticleCounts["Apple"])
	assert.Equal(t, 0, res.ArticleCounts["IBM"])
	require.Len(t, res.Statuses, 3)
	assert.Equal(t, "unreachable", res.Statuses[1].Error)
}

func TestSnapshotRerunIsIdentical(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.json")
	require.NoError(t, news.SaveSnapshot(path, &news.Snapshot{Companies: companies(), Articles: articles()}))

	cfg := store.Default()
	cfg.Companies = companies()
	cfg.Fetch.Source = store.SourceSnapshot
	cfg.Fetch.SnapshotPath = path
	cfg.Fetch.RatePerSecond = 0

	run := func() *Result {
		fetcher, err := news.NewFetcher(cfg)
		require.NoError(t, err)
		r, err := NewRunner(cfg, fetcher, lexicon.NewRegistry())
		require.NoError(t, err)
		res, _, err := r.Run(context.Background())
		require.NoError(t, err)
		res.Statuses = nil
		return res
	}

	a, b := run(), run()
	assert.Equal(t, a.WordCounts, b.WordCounts)
	assert.Equal(t, a.TfIdf, b.TfIdf)
	assert.Equal(t, a.Lexicons, b.Lexicons)
}

func TestNewRegistryAndRunnerErrors(t *testing.T) {
	cfg := store.Default()
	cfg.Analysis.LexiconFiles = []store.LexiconFile{{Name: "custom", Path: filepath.Join(t.TempDir(), "missing.csv")}}
	_, err := NewRegistry(cfg)
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "custom.csv")
	require.NoError(t, os.WriteFile(path, []byte("word,sentiment,score\nrally,,2\n"), 0o644))
	cfg.Analysis.LexiconFiles = []store.LexiconFile{{Name: "custom", Path: path}}
	reg, err := NewRegistry(cfg)
	require.NoError(t, err)

	cfg.Analysis.Lexicons = []string{"custom", "afinn"}
	_, err = NewRunner(cfg, flakyFetcher{}, reg)
	require.NoError(t, err)

	cfg.Analysis.Lexicons = []string{"nrc"}
	_, err = NewRunner(cfg, flakyFetcher{}, reg)
	assert.ErrorIs(t, err, lexicon.ErrUnknownLexicon)
}
