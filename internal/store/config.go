package store

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"news-textmining/internal/types"
)

// Fetch sources understood by the news package.
const (
	SourceFinviz   = "finviz"
	SourceRSS      = "rss"
	SourceFinnhub  = "finnhub"
	SourceSnapshot = "snapshot"
)

type Config struct {
	Companies []types.Company `yaml:"companies"`
	Fetch     struct {
		Source        string        `yaml:"source"`
		MaxArticles   int           `yaml:"max_articles"`
		Timeout       time.Duration `yaml:"timeout"`
		Concurrency   int           `yaml:"concurrency"`
		RatePerSecond float64       `yaml:"rate_per_second"`
		FullText      bool          `yaml:"full_text"`
		LookbackDays  int           `yaml:"lookback_days"`
		UserAgent     string        `yaml:"user_agent"`
		SnapshotPath  string        `yaml:"snapshot_path"`
		APIKeyEnv     string        `yaml:"api_key_env"`
	} `yaml:"fetch"`
	Tokenizer struct {
		IncludeHeading bool `yaml:"include_heading"`
	} `yaml:"tokenizer"`
	Analysis struct {
		Lexicons       []string      `yaml:"lexicons"`
		LexiconFiles   []LexiconFile `yaml:"lexicon_files"`
		TopN           int           `yaml:"top_n"`
		ExcludeNumeric *bool         `yaml:"exclude_numeric"`
	} `yaml:"analysis"`
	Output struct {
		Dir     string   `yaml:"dir"`
		Formats []string `yaml:"formats"`
	} `yaml:"output"`
	Metrics struct {
		TextfilePath string `yaml:"textfile_path"`
	} `yaml:"metrics"`
	RunLog struct {
		Dir           string `yaml:"dir"`
		RetentionDays int    `yaml:"retention_days"`
	} `yaml:"runlog"`
	Log struct {
		Level          string `yaml:"level"`
		Format         string `yaml:"format"`
		Detailed       bool   `yaml:"detailed"`
		TracingEnabled bool   `yaml:"tracing_enabled"`
	} `yaml:"log"`
}

// LexiconFile points at an external lexicon that replaces or extends a built-in one.
type LexiconFile struct {
	Name   string `yaml:"name"`
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // afinn, loughran or generic
}

// DefaultCompanies is the seven-stock universe used when none is configured.
func DefaultCompanies() []types.Company {
	return []types.Company{
		{Name: "Microsoft", Ticker: "NASDAQ:MSFT"},
		{Name: "Apple", Ticker: "NASDAQ:AAPL"},
		{Name: "Alphabet", Ticker: "NASDAQ:GOOGL"},
		{Name: "Amazon", Ticker: "NASDAQ:AMZN"},
		{Name: "Meta", Ticker: "NASDAQ:META"},
		{Name: "Netflix", Ticker: "NASDAQ:NFLX"},
		{Name: "IBM", Ticker: "NYSE:IBM"},
	}
}

// Default returns a configuration with every default applied.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// ExcludeNumericWords reports whether digit-only words are dropped before tf-idf.
func (c *Config) ExcludeNumericWords() bool {
	return c.Analysis.ExcludeNumeric == nil || *c.Analysis.ExcludeNumeric
}

func (c *Config) applyDefaults() {
	if len(c.Companies) == 0 {
		c.Companies = DefaultCompanies()
	}
	if c.Fetch.Source == "" {
		c.Fetch.Source = SourceFinviz
	}
	if c.Fetch.MaxArticles == 0 {
		c.Fetch.MaxArticles = 20
	}
	if c.Fetch.Timeout == 0 {
		c.Fetch.Timeout = 30 * time.Second
	}
	if c.Fetch.Concurrency == 0 {
		c.Fetch.Concurrency = 4
	}
	if c.Fetch.RatePerSecond == 0 {
		c.Fetch.RatePerSecond = 2
	}
	if c.Fetch.LookbackDays == 0 {
		c.Fetch.LookbackDays = 7
	}
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}
	if c.Fetch.SnapshotPath == "" {
		c.Fetch.SnapshotPath = "data/articles.json"
	}
	if c.Fetch.APIKeyEnv == "" {
		c.Fetch.APIKeyEnv = "FINNHUB_API_KEY"
	}
	if len(c.Analysis.Lexicons) == 0 {
		c.Analysis.Lexicons = []string{"afinn", "loughran"}
	}
	if c.Analysis.TopN == 0 {
		c.Analysis.TopN = 8
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "out"
	}
	if len(c.Output.Formats) == 0 {
		c.Output.Formats = []string{"text"}
	}
	if c.RunLog.Dir == "" {
		c.RunLog.Dir = "logs"
	}
	if c.Log.Level == "" {
		c.Log.Level = "INFO"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// applyEnv lets the environment override a few deployment-specific settings.
func (c *Config) applyEnv() {
	if v := os.Getenv("NEWS_SOURCE"); v != "" {
		c.Fetch.Source = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
}

func (c *Config) Validate() error {
	if len(c.Companies) == 0 {
		return errors.New("companies cannot be empty")
	}
	seen := make(map[string]bool, len(c.Companies))
	for i, co := range c.Companies {
		if strings.TrimSpace(co.Name) == "" {
			return fmt.Errorf("companies[%d]: name cannot be empty", i)
		}
		if types.SymbolOf(co.Ticker) == "" {
			return fmt.Errorf("companies[%d] (%s): ticker cannot be empty", i, co.Name)
		}
		if seen[co.Name] {
			return fmt.Errorf("companies[%d]: duplicate company name '%s'", i, co.Name)
		}
		seen[co.Name] = true
	}
	switch c.Fetch.Source {
	case SourceFinviz, SourceRSS, SourceFinnhub, SourceSnapshot:
	default:
		return fmt.Errorf("fetch.source must be one of finviz, rss, finnhub, snapshot, got '%s'", c.Fetch.Source)
	}
	if c.Fetch.MaxArticles < 0 {
		return fmt.Errorf("fetch.max_articles must be >= 0, got %d", c.Fetch.MaxArticles)
	}
	if c.Fetch.Concurrency < 1 {
		return fmt.Errorf("fetch.concurrency must be >= 1, got %d", c.Fetch.Concurrency)
	}
	if c.Fetch.RatePerSecond < 0 {
		return fmt.Errorf("fetch.rate_per_second must be >= 0, got %.2f", c.Fetch.RatePerSecond)
	}
	if c.Analysis.TopN < 1 {
		return fmt.Errorf("analysis.top_n must be >= 1, got %d", c.Analysis.TopN)
	}
	for _, f := range c.Output.Formats {
		switch f {
		case "text", "csv", "json":
		default:
			return fmt.Errorf("output.formats: unknown format '%s'", f)
		}
	}
	for i, lf := range c.Analysis.LexiconFiles {
		if lf.Name == "" || lf.Path == "" {
			return fmt.Errorf("analysis.lexicon_files[%d]: name and path are required", i)
		}
	}
	return nil
}

// LoadConfig reads a YAML config file. A missing file is not an error: the
// defaults describe a complete run.
func LoadConfig(path string) (*Config, error) {
	var c Config

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	c.applyEnv()
	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}
