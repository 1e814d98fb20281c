package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"news-textmining/internal/interfaces"
	"news-textmining/internal/store"
	"news-textmining/internal/types"
)

const (
	finvizQuoteURL   = "https://finviz.com/quote.ashx"
	finvizDateLayout = "Jan-02-06"
	finvizTimeLayout = "03:04PM"
)

// FinvizScraper reads the news table of a finviz quote page. The table only
// carries headlines, so article text is the headline unless an Enricher is
// set.
type FinvizScraper struct {
	BaseURL     string
	UserAgent   string
	Timeout     time.Duration
	MaxArticles int
	Location    *time.Location
	Enricher    *Enricher

	now func() time.Time
}

var _ interfaces.ArticleFetcher = (*FinvizScraper)(nil)

func NewFinvizScraper(userAgent string, timeout time.Duration, maxArticles int) *FinvizScraper {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.FixedZone("EST", -5*60*60)
	}
	return &FinvizScraper{
		BaseURL:     finvizQuoteURL,
		UserAgent:   userAgent,
		Timeout:     timeout,
		MaxArticles: maxArticles,
		Location:    loc,
		now:         time.Now,
	}
}

func (s *FinvizScraper) Name() string { return store.SourceFinviz }

// Fetch scrapes the quote page for ticker ("NASDAQ:AAPL" or "AAPL").
func (s *FinvizScraper) Fetch(ctx context.Context, ticker string) ([]types.Article, error) {
	symbol := types.SymbolOf(ticker)
	if symbol == "" {
		return nil, fmt.Errorf("empty ticker")
	}

	c := colly.NewCollector(
		colly.MaxDepth(1),
		colly.StdlibContext(ctx),
	)
	if s.Timeout > 0 {
		c.SetRequestTimeout(s.Timeout)
	}
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", s.UserAgent)
		r.Headers.Set("Accept", "text/html,application/xhtml+xml")
	})

	stamps := newStampParser(s.Location, s.now())
	var articles []types.Article

	c.OnHTML("table#news-table tr", func(e *colly.HTMLElement) {
		stamp := strings.TrimSpace(e.DOM.Find("td").First().Text())
		published, ok := stamps.parse(stamp)
		if !ok {
			return
		}

		link := e.DOM.Find("a").First()
		heading := collapseSpace(link.Text())
		href, _ := link.Attr("href")
		if heading == "" {
			return
		}
		articleURL := e.Request.AbsoluteURL(href)

		publisher := strings.Trim(collapseSpace(e.DOM.Find("div.news-link-right span").First().Text()), "()")
		if publisher == "" {
			publisher = s.Name()
		}

		articles = append(articles, types.Article{
			Ticker:      ticker,
			ID:          articleID(articleURL, published),
			PublishedAt: published,
			Heading:     heading,
			Text:        heading,
			URL:         articleURL,
			Source:      publisher,
		})
	})

	pageURL := fmt.Sprintf("%s?t=%s&p=d", s.BaseURL, url.QueryEscape(symbol))
	if err := c.Visit(pageURL); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", pageURL, err)
	}
	c.Wait()

	if len(articles) == 0 {
		return nil, fmt.Errorf("no news rows on %s", pageURL)
	}

	newestFirst(articles)
	articles = limit(articles, s.MaxArticles)

	if s.Enricher != nil {
		articles = s.Enricher.Enrich(ctx, articles)
	}
	return articles, nil
}

// stampParser resolves finviz news stamps. A row shows either
// "Oct-18-24 09:30PM", "Today 09:30PM" or a bare "09:30PM" that belongs to
// the date of the row above it.
type stampParser struct {
	loc  *time.Location
	now  time.Time
	date time.Time
}

func newStampParser(loc *time.Location, now time.Time) *stampParser {
	if loc == nil {
		loc = time.UTC
	}
	return &stampParser{loc: loc, now: now.In(loc)}
}

func (p *stampParser) parse(stamp string) (time.Time, bool) {
	fields := strings.Fields(stamp)

	var clock string
	switch len(fields) {
	case 1:
		if p.date.IsZero() {
			return time.Time{}, false
		}
		clock = fields[0]
	case 2:
		if strings.EqualFold(fields[0], "today") {
			p.date = time.Date(p.now.Year(), p.now.Month(), p.now.Day(), 0, 0, 0, 0, p.loc)
		} else {
			d, err := time.ParseInLocation(finvizDateLayout, fields[0], p.loc)
			if err != nil {
				return time.Time{}, false
			}
			p.date = d
		}
		clock = fields[1]
	default:
		return time.Time{}, false
	}

	t, err := time.Parse(finvizTimeLayout, strings.ToUpper(clock))
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(p.date.Year(), p.date.Month(), p.date.Day(), t.Hour(), t.Minute(), 0, 0, p.loc), true
}
