package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-textmining/internal/news"
	"news-textmining/internal/runlog"
	"news-textmining/internal/types"
)

const testConfig = `companies:
  - name: Apple
    ticker: NASDAQ:AAPL
  - name: IBM
    ticker: NYSE:IBM
output:
  dir: %OUT%
  formats: [csv, json]
runlog:
  dir: %LOGS%
log:
  level: ERROR
`

func TestAnalyzeCommandFromSnapshot(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	logDir := filepath.Join(dir, "logs")
	snap := filepath.Join(dir, "articles.json")

	ts := time.Date(2024, 10, 18, 14, 30, 0, 0, time.UTC)
	require.NoError(t, news.SaveSnapshot(snap, &news.Snapshot{
		CreatedAt: ts,
		Source:    "finviz",
		Articles: []types.Article{
			{Company: "Apple", Ticker: "NASDAQ:AAPL", ID: "a1", PublishedAt: ts, Text: "Strong iPhone demand lifts shares."},
			{Company: "IBM", Ticker: "NYSE:IBM", ID: "b1", PublishedAt: ts, Text: "IBM faces litigation over weak guidance."},
		},
	}))

	cfgText := bytes.ReplaceAll([]byte(testConfig), []byte("%OUT%"), []byte(outDir))
	cfgText = bytes.ReplaceAll(cfgText, []byte("%LOGS%"), []byte(logDir))
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, cfgText, 0o644))

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"analyze", "-c", cfgPath, "--snapshot", snap})
	require.NoError(t, rootCmd.Execute())

	assert.FileExists(t, filepath.Join(outDir, "result.json"))
	assert.FileExists(t, filepath.Join(outDir, "positivity_loughran.csv"))
	assert.FileExists(t, filepath.Join(outDir, "contributions_afinn.csv"))

	logs, err := filepath.Glob(filepath.Join(logDir, "runs-*.jsonl"))
	require.NoError(t, err)
	require.Len(t, logs, 1)

	records, err := runlog.Read(logs[0])
	require.NoError(t, err)
	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "analyze", rec.Command)
	assert.Equal(t, "snapshot", rec.Source)
	assert.Equal(t, 2, rec.Articles)
	assert.Empty(t, rec.Error)
	assert.NotEmpty(t, rec.RunID)
	assert.Contains(t, rec.Outputs, filepath.Join(outDir, "result.json"))
}
