package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("NEWS_SOURCE", "")
	c, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(c.Companies) != 7 {
		t.Errorf("Expected 7 default companies, got %d", len(c.Companies))
	}
	if c.Fetch.Source != SourceFinviz {
		t.Errorf("Expected source finviz, got %s", c.Fetch.Source)
	}
	if c.Fetch.Timeout != 30*time.Second {
		t.Errorf("Expected 30s timeout, got %v", c.Fetch.Timeout)
	}
	if !c.ExcludeNumericWords() {
		t.Error("Expected numeric words to be excluded by default")
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `companies:
  - name: Apple
    ticker: NASDAQ:AAPL
fetch:
  timeout: 5s
analysis:
  exclude_numeric: false
  top_n: 3
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("NEWS_SOURCE", "rss")

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(c.Companies) != 1 || c.Companies[0].Name != "Apple" {
		t.Errorf("Expected only Apple, got %+v", c.Companies)
	}
	if c.Fetch.Source != SourceRSS {
		t.Errorf("Expected env override rss, got %s", c.Fetch.Source)
	}
	if c.Fetch.Timeout != 5*time.Second {
		t.Errorf("Expected 5s timeout, got %v", c.Fetch.Timeout)
	}
	if c.ExcludeNumericWords() {
		t.Error("Expected exclude_numeric: false to be honoured")
	}
	if c.Analysis.TopN != 3 {
		t.Errorf("Expected top_n 3, got %d", c.Analysis.TopN)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"duplicate company", func(c *Config) { c.Companies = append(c.Companies, c.Companies[0]) }},
		{"empty ticker", func(c *Config) { c.Companies[0].Ticker = "NASDAQ:" }},
		{"unknown source", func(c *Config) { c.Fetch.Source = "bloomberg" }},
		{"bad format", func(c *Config) { c.Output.Formats = []string{"xml"} }},
		{"lexicon file without path", func(c *Config) { c.Analysis.LexiconFiles = []LexiconFile{{Name: "x"}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			if err := c.Validate(); err == nil {
				t.Errorf("Expected validation error for %s", tt.name)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}
