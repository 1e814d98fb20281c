package news

import (
	"fmt"
	"os"

	"golang.org/x/time/rate"

	"news-textmining/internal/api"
	"news-textmining/internal/interfaces"
	"news-textmining/internal/logger"
	"news-textmining/internal/store"
)

// NewFetcher builds the article source named by cfg.Fetch.Source.
func NewFetcher(cfg *store.Config) (interfaces.ArticleFetcher, error) {
	f := cfg.Fetch

	var enricher *Enricher
	if f.FullText {
		client := api.NewClient(
			api.WithTimeout(f.Timeout),
			api.WithHeaders(api.BrowserHeaders(f.UserAgent)),
			api.WithLogging(logger.IsDebugEnabled()),
		)
		enricher = NewEnricher(client, newLimiter(f.RatePerSecond))
	}

	switch f.Source {
	case store.SourceFinviz:
		s := NewFinvizScraper(f.UserAgent, f.Timeout, f.MaxArticles)
		s.Enricher = enricher
		return s, nil

	case store.SourceRSS:
		r := NewRSSFetcher(f.UserAgent, f.Timeout, f.MaxArticles, f.LookbackDays)
		r.Enricher = enricher
		return r, nil

	case store.SourceFinnhub:
		fh, err := NewFinnhubFetcher(os.Getenv(f.APIKeyEnv), f.MaxArticles, f.LookbackDays)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.APIKeyEnv, err)
		}
		fh.Enricher = enricher
		return fh, nil

	case store.SourceSnapshot:
		return NewSnapshotFetcher(f.SnapshotPath), nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownSource, f.Source)
}

// NewCollectorFromConfig wires a Collector with the fetch limits of cfg.
func NewCollectorFromConfig(cfg *store.Config, fetcher interfaces.ArticleFetcher) *Collector {
	return NewCollector(fetcher, cfg.Companies,
		WithMaxArticles(cfg.Fetch.MaxArticles),
		WithTimeout(cfg.Fetch.Timeout),
		WithConcurrency(cfg.Fetch.Concurrency),
		WithLimiter(newLimiter(cfg.Fetch.RatePerSecond)),
	)
}

// newLimiter returns nil for a non-positive rate.
func newLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}
