package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"news-textmining/internal/interfaces"
	"news-textmining/internal/store"
	"news-textmining/internal/types"
)

// googleNewsRSS is a search feed; {query} is replaced with the escaped query.
const googleNewsRSS = "https://news.google.com/rss/search?q={query}&hl=en-US&gl=US&ceid=US:en"

// RSSFetcher reads a search feed per ticker.
type RSSFetcher struct {
	Endpoint     string
	MaxArticles  int
	LookbackDays int
	Enricher     *Enricher

	parser *gofeed.Parser
	now    func() time.Time
}

var _ interfaces.ArticleFetcher = (*RSSFetcher)(nil)

func NewRSSFetcher(userAgent string, timeout time.Duration, maxArticles, lookbackDays int) *RSSFetcher {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	parser.Client = &http.Client{Timeout: timeout}

	return &RSSFetcher{
		Endpoint:     googleNewsRSS,
		MaxArticles:  maxArticles,
		LookbackDays: lookbackDays,
		parser:       parser,
		now:          time.Now,
	}
}

func (f *RSSFetcher) Name() string { return store.SourceRSS }

func (f *RSSFetcher) Fetch(ctx context.Context, ticker string) ([]types.Article, error) {
	symbol := types.SymbolOf(ticker)
	if symbol == "" {
		return nil, fmt.Errorf("empty ticker")
	}

	feedURL := strings.ReplaceAll(f.Endpoint, "{query}", url.QueryEscape(symbol+" stock"))
	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", feedURL, err)
	}

	var cutoff time.Time
	if f.LookbackDays > 0 {
		cutoff = f.now().AddDate(0, 0, -f.LookbackDays)
	}

	articles := make([]types.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		a, ok := articleFromItem(item, ticker)
		if !ok || a.PublishedAt.Before(cutoff) {
			continue
		}
		articles = append(articles, a)
	}
	if len(articles) == 0 {
		return nil, fmt.Errorf("no items in feed %s", feedURL)
	}

	newestFirst(articles)
	articles = limit(articles, f.MaxArticles)

	if f.Enricher != nil {
		articles = f.Enricher.Enrich(ctx, articles)
	}
	return articles, nil
}

func articleFromItem(item *gofeed.Item, ticker string) (types.Article, bool) {
	if item == nil {
		return types.Article{}, false
	}

	published := item.PublishedParsed
	if published == nil {
		published = item.UpdatedParsed
	}
	if published == nil {
		return types.Article{}, false
	}

	heading := collapseSpace(item.Title)
	text := htmlToText(item.Content)
	if text == "" {
		text = htmlToText(item.Description)
	}
	if text == "" {
		text = heading
	}
	if text == "" {
		return types.Article{}, false
	}

	id := item.GUID
	if id == "" {
		id = articleID(item.Link, *published)
	}

	source := store.SourceRSS
	if item.Author != nil && item.Author.Name != "" {
		source = item.Author.Name
	}

	return types.Article{
		Ticker:      ticker,
		ID:          id,
		PublishedAt: published.UTC(),
		Heading:     heading,
		Text:        text,
		URL:         item.Link,
		Source:      source,
	}, true
}
