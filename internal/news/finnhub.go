package news

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"

	"news-textmining/internal/interfaces"
	"news-textmining/internal/store"
	"news-textmining/internal/types"
)

const finnhubDateLayout = "2006-01-02"

// FinnhubFetcher reads the company-news endpoint. Summaries are used as
// article text.
type FinnhubFetcher struct {
	client       *finnhub.DefaultApiService
	MaxArticles  int
	LookbackDays int
	Enricher     *Enricher

	now func() time.Time
}

var _ interfaces.ArticleFetcher = (*FinnhubFetcher)(nil)

func NewFinnhubFetcher(apiKey string, maxArticles, lookbackDays int) (*FinnhubFetcher, error) {
	if apiKey == "" {
		return nil, errors.New("finnhub api key is empty")
	}
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)

	return &FinnhubFetcher{
		client:       finnhub.NewAPIClient(cfg).DefaultApi,
		MaxArticles:  maxArticles,
		LookbackDays: lookbackDays,
		now:          time.Now,
	}, nil
}

func (f *FinnhubFetcher) Name() string { return store.SourceFinnhub }

func (f *FinnhubFetcher) Fetch(ctx context.Context, ticker string) ([]types.Article, error) {
	symbol := types.SymbolOf(ticker)
	if symbol == "" {
		return nil, fmt.Errorf("empty ticker")
	}

	to := f.now().UTC()
	from := to.AddDate(0, 0, -f.LookbackDays)

	res, _, err := f.client.CompanyNews(ctx).
		Symbol(symbol).
		From(from.Format(finnhubDateLayout)).
		To(to.Format(finnhubDateLayout)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub company news %s: %w", symbol, err)
	}

	articles := make([]types.Article, 0, len(res))
	for _, n := range res {
		if a, ok := articleFromFinnhub(n, ticker); ok {
			articles = append(articles, a)
		}
	}
	if len(articles) == 0 {
		return nil, fmt.Errorf("finnhub returned no news for %s", symbol)
	}

	newestFirst(articles)
	articles = limit(articles, f.MaxArticles)

	if f.Enricher != nil {
		articles = f.Enricher.Enrich(ctx, articles)
	}
	return articles, nil
}

func articleFromFinnhub(n finnhub.CompanyNews, ticker string) (types.Article, bool) {
	a := types.Article{Ticker: ticker, Source: store.SourceFinnhub}

	if n.Datetime == nil || *n.Datetime <= 0 {
		return a, false
	}
	a.PublishedAt = time.Unix(*n.Datetime, 0).UTC()

	if n.Headline != nil {
		a.Heading = collapseSpace(*n.Headline)
	}
	if n.Summary != nil {
		a.Text = collapseSpace(*n.Summary)
	}
	if a.Text == "" {
		a.Text = a.Heading
	}
	if a.Text == "" {
		return a, false
	}

	if n.Url != nil {
		a.URL = *n.Url
	}
	if n.Source != nil && *n.Source != "" {
		a.Source = *n.Source
	}

	if n.Id != nil {
		a.ID = strconv.FormatInt(*n.Id, 10)
	} else {
		a.ID = articleID(a.URL, a.PublishedAt)
	}
	return a, true
}
