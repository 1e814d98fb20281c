package news

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"news-textmining/internal/interfaces"
	"news-textmining/internal/logger"
	"news-textmining/internal/types"
)

var errNoArticles = errors.New("no usable articles")

// Collector fetches every configured company in parallel. A company whose
// fetch fails or times out contributes no articles; other companies are
// unaffected.
type Collector struct {
	fetcher     interfaces.ArticleFetcher
	companies   []types.Company
	maxArticles int
	timeout     time.Duration
	concurrency int
	limiter     *rate.Limiter
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithMaxArticles caps articles per company, newest first. 0 means no cap.
func WithMaxArticles(n int) CollectorOption {
	return func(c *Collector) { c.maxArticles = n }
}

// WithTimeout bounds each company's fetch.
func WithTimeout(d time.Duration) CollectorOption {
	return func(c *Collector) { c.timeout = d }
}

// WithConcurrency bounds the number of companies fetched at once.
func WithConcurrency(n int) CollectorOption {
	return func(c *Collector) { c.concurrency = n }
}

// WithLimiter throttles fetch starts. nil disables throttling.
func WithLimiter(l *rate.Limiter) CollectorOption {
	return func(c *Collector) { c.limiter = l }
}

func NewCollector(fetcher interfaces.ArticleFetcher, companies []types.Company, opts ...CollectorOption) *Collector {
	c := &Collector{
		fetcher:     fetcher,
		companies:   companies,
		maxArticles: 20,
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.concurrency < 1 {
		c.concurrency = 1
	}
	return c
}

// Collection is the merged result of a collect run, keyed by company.
type Collection struct {
	Companies []types.Company
	ByCompany map[string][]types.Article
	Statuses  []types.FetchStatus
}

// Articles flattens the collection in configured company order.
func (c *Collection) Articles() []types.Article {
	var out []types.Article
	for _, co := range c.Companies {
		out = append(out, c.ByCompany[co.Name]...)
	}
	return out
}

// Failed returns the statuses of companies whose fetch errored.
func (c *Collection) Failed() []types.FetchStatus {
	var out []types.FetchStatus
	for _, s := range c.Statuses {
		if s.Failed() {
			out = append(out, s)
		}
	}
	return out
}

// Collect fetches all companies. It returns an error only when ctx is done.
func (c *Collector) Collect(ctx context.Context) (*Collection, error) {
	results := make([][]types.Article, len(c.companies))
	statuses := make([]types.FetchStatus, len(c.companies))

	var g errgroup.Group
	g.SetLimit(c.concurrency)

	for i, co := range c.companies {
		g.Go(func() error {
			results[i], statuses[i] = c.fetchOne(ctx, co)
			return nil
		})
	}
	g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	col := &Collection{
		Companies: c.companies,
		ByCompany: make(map[string][]types.Article, len(c.companies)),
		Statuses:  statuses,
	}
	for i, co := range c.companies {
		col.ByCompany[co.Name] = results[i]
	}
	return col, nil
}

func (c *Collector) fetchOne(ctx context.Context, co types.Company) ([]types.Article, types.FetchStatus) {
	status := types.FetchStatus{Ticker: co.Ticker, Source: c.fetcher.Name()}
	start := time.Now()

	fail := func(err error) ([]types.Article, types.FetchStatus) {
		status.Duration = time.Since(start)
		status.Error = err.Error()
		logger.FetchFailure(ctx, co.Ticker, status.Source, err, "company", co.Name)
		return nil, status
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fail(err)
		}
	}

	fctx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		fctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	fetched, err := c.fetcher.Fetch(fctx, co.Ticker)
	if err != nil {
		return fail(err)
	}

	articles := clean(fetched, co)
	if len(articles) == 0 {
		return fail(errNoArticles)
	}
	newestFirst(articles)
	articles = limit(articles, c.maxArticles)

	status.Articles = len(articles)
	status.Duration = time.Since(start)
	return articles, status
}

// clean stamps company identity on every article and drops articles without
// text or timestamp, or repeating an earlier id.
func clean(fetched []types.Article, co types.Company) []types.Article {
	seen := make(map[string]bool, len(fetched))
	out := make([]types.Article, 0, len(fetched))
	for _, a := range fetched {
		if collapseSpace(a.Text) == "" || a.PublishedAt.IsZero() {
			continue
		}
		if a.ID == "" {
			a.ID = articleID(a.URL, a.PublishedAt)
		}
		if seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		a.Company = co.Name
		a.Ticker = co.Ticker
		out = append(out, a)
	}
	return out
}
