package pipeline

import (
	"context"
	"fmt"
	"time"

	"news-textmining/internal/interfaces"
	"news-textmining/internal/lexicon"
	"news-textmining/internal/logger"
	"news-textmining/internal/metrics"
	"news-textmining/internal/news"
	"news-textmining/internal/store"
)

// NewRegistry registers the configured lexicon files on top of the
// built-in lexicons.
func NewRegistry(cfg *store.Config) (*lexicon.Registry, error) {
	reg := lexicon.NewRegistry()
	for _, lf := range cfg.Analysis.LexiconFiles {
		format := lf.Format
		if format == "" {
			format = lexicon.FormatGeneric
		}
		if err := reg.LoadFile(lf.Name, lf.Path, format); err != nil {
			return nil, fmt.Errorf("lexicon %s: %w", lf.Name, err)
		}
	}
	return reg, nil
}

// Runner executes the stages of a run against live configuration.
type Runner struct {
	cfg       *store.Config
	collector *news.Collector
	lexicons  []*lexicon.Lexicon
}

// NewRunner resolves the configured lexicons up front so a bad lexicon name
// fails before any network traffic.
func NewRunner(cfg *store.Config, fetcher interfaces.ArticleFetcher, reg *lexicon.Registry) (*Runner, error) {
	lexicons, err := reg.Resolve(cfg.Analysis.Lexicons)
	if err != nil {
		return nil, err
	}
	return &Runner{
		cfg:       cfg,
		collector: news.NewCollectorFromConfig(cfg, fetcher),
		lexicons:  lexicons,
	}, nil
}

// Collect fetches articles for every configured company.
func (r *Runner) Collect(ctx context.Context) (*news.Collection, error) {
	op := logger.StartOperation(ctx, "collect", "companies", len(r.cfg.Companies), "source", r.cfg.Fetch.Source)

	col, err := r.collector.Collect(op.GetContext())
	if err != nil {
		metrics.RecordStage("collect", op.EndWithError(err))
		return nil, fmt.Errorf("collect articles: %w", err)
	}

	failed := len(col.Failed())
	elapsed := op.End()
	metrics.RecordStage("collect", elapsed)
	logger.Stage(ctx, "collect",
		"articles", len(col.Articles()),
		"failed_companies", failed,
		"duration_ms", elapsed.Milliseconds(),
	)
	if failed == len(r.cfg.Companies) {
		logger.Warn(ctx, "No company returned articles", "source", r.cfg.Fetch.Source)
	}
	return col, nil
}

// Analyze scores a collection.
func (r *Runner) Analyze(ctx context.Context, col *news.Collection) *Result {
	start := time.Now()

	res := Analyze(col.Companies, col.Articles(), r.lexicons, OptionsFromConfig(r.cfg))
	res.Statuses = col.Statuses

	for company, n := range res.TokenTotals {
		metrics.RecordTokens(company, n)
	}
	elapsed := time.Since(start)
	metrics.RecordStage("analyze", elapsed)

	logger.Stage(ctx, "analyze",
		"articles", len(col.Articles()),
		"word_counts", len(res.WordCounts),
		"lexicons", len(res.Lexicons),
		"duration_ms", elapsed.Milliseconds(),
	)
	return res
}

// Run collects and analyzes. The collection is returned so callers can
// snapshot it.
func (r *Runner) Run(ctx context.Context) (*Result, *news.Collection, error) {
	col, err := r.Collect(ctx)
	if err != nil {
		return nil, nil, err
	}
	return r.Analyze(ctx, col), col, nil
}
