package news

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/mauidude/go-readability"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"news-textmining/internal/api"
	"news-textmining/internal/interfaces"
	"news-textmining/internal/logger"
	"news-textmining/internal/types"
)

// minBodyChars is the shortest extracted body that replaces a summary.
const minBodyChars = 200

// Enricher replaces headline-only article text with the readable body of
// the linked page. Bodies are cached per URL, so an article listed under
// two tickers is downloaded once.
type Enricher struct {
	client  *api.Client
	bodies  *cache.Cache
	limiter *rate.Limiter
}

var _ interfaces.BodyFetcher = (*Enricher)(nil)

// NewEnricher builds an enricher. limiter may be nil.
func NewEnricher(client *api.Client, limiter *rate.Limiter) *Enricher {
	return &Enricher{
		client:  client,
		bodies:  cache.New(time.Hour, 10*time.Minute),
		limiter: limiter,
	}
}

// FetchBody downloads url and returns the main content as plain text.
func (e *Enricher) FetchBody(ctx context.Context, url string) (string, error) {
	if body, ok := e.bodies.Get(url); ok {
		return body.(string), nil
	}

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	resp, err := e.client.GET(ctx, url)
	if err != nil {
		return "", err
	}

	text, err := extractText(resp.String())
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", url, err)
	}

	e.bodies.Set(url, text, cache.DefaultExpiration)
	return text, nil
}

// Enrich fetches bodies for articles that have a URL. A failed or too short
// body keeps the article's existing text.
func (e *Enricher) Enrich(ctx context.Context, articles []types.Article) []types.Article {
	out := make([]types.Article, len(articles))
	copy(out, articles)

	for i := range out {
		if out[i].URL == "" || ctx.Err() != nil {
			continue
		}
		body, err := e.FetchBody(ctx, out[i].URL)
		if err != nil {
			logger.Warn(ctx, "Failed to fetch article body", "url", out[i].URL, "error", err)
			continue
		}
		if len(body) >= minBodyChars {
			out[i].Text = body
		}
	}
	return out
}

func extractText(page string) (string, error) {
	doc, err := readability.NewDocument(page)
	if err != nil {
		return "", err
	}
	content := doc.Content()

	html, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", err
	}

	var paragraphs []string
	html.Find("p").Each(func(_ int, s *goquery.Selection) {
		if t := collapseSpace(s.Text()); t != "" {
			paragraphs = append(paragraphs, t)
		}
	})
	if len(paragraphs) == 0 {
		return collapseSpace(html.Text()), nil
	}
	return strings.Join(paragraphs, "\n\n"), nil
}
