package interfaces

import (
	"context"

	"news-textmining/internal/types"
)

// ArticleFetcher returns recent articles for one exchange-qualified ticker.
// An error means the company contributes no articles to the run.
type ArticleFetcher interface {
	Fetch(ctx context.Context, ticker string) ([]types.Article, error)
	Name() string
}

// BodyFetcher downloads an article page and returns its readable text.
type BodyFetcher interface {
	FetchBody(ctx context.Context, url string) (string, error)
}
