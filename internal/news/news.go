// Package news fetches recent articles per company from a pluggable source
// and collects them into a bounded, cleaned batch for analysis.
package news

import (
	"crypto/md5"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"news-textmining/internal/types"
)

var ErrUnknownSource = errors.New("unknown news source")

// articleID derives a stable id for sources that don't provide one.
func articleID(link string, published time.Time) string {
	sum := md5.Sum([]byte(link + "|" + published.UTC().Format(time.RFC3339)))
	return fmt.Sprintf("%x", sum)
}

// htmlToText flattens an HTML fragment to whitespace-normalized text.
func htmlToText(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return collapseSpace(fragment)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return collapseSpace(fragment)
	}
	doc.Find("script, style, noscript").Remove()
	return collapseSpace(doc.Text())
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// newestFirst sorts by timestamp descending; ties fall back to id so the
// order is stable across runs.
func newestFirst(articles []types.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		a, b := articles[i], articles[j]
		if !a.PublishedAt.Equal(b.PublishedAt) {
			return a.PublishedAt.After(b.PublishedAt)
		}
		return a.ID < b.ID
	})
}

// limit returns at most n articles. n <= 0 means no limit.
func limit(articles []types.Article, n int) []types.Article {
	if n > 0 && len(articles) > n {
		return articles[:n]
	}
	return articles
}
