package newsobs

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"news-textmining/internal/interfaces"
	"news-textmining/internal/logger"
	"news-textmining/internal/metrics"
	"news-textmining/internal/trace"
	"news-textmining/internal/types"
)

type observableFetcher struct {
	fetcher interfaces.ArticleFetcher
}

var _ interfaces.ArticleFetcher = (*observableFetcher)(nil)

func Wrap(fetcher interfaces.ArticleFetcher) interfaces.ArticleFetcher {
	return &observableFetcher{
		fetcher: fetcher,
	}
}

func (of *observableFetcher) Name() string {
	return of.fetcher.Name()
}

func (of *observableFetcher) Fetch(ctx context.Context, ticker string) ([]types.Article, error) {
	ctx, span := trace.StartSpan(ctx, "news.Fetch",
		oteltrace.WithAttributes(
			attribute.String("ticker", ticker),
			attribute.String("source", of.fetcher.Name()),
		),
	)
	defer span.End()

	start := time.Now()
	fields := trace.GetTraceFields(ctx)
	fields["ticker"] = ticker
	fields["source"] = of.fetcher.Name()

	logger.DebugSkip(ctx, 1, "Fetching articles", trace.Args(fields)...)

	articles, err := of.fetcher.Fetch(ctx, ticker)
	duration := time.Since(start)
	metrics.RecordFetch(of.fetcher.Name(), len(articles), duration, err)

	fields["duration_ms"] = duration.Milliseconds()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.ErrorWithErrSkip(ctx, 1, "Article fetch failed", err, trace.Args(fields)...)
		return nil, err
	}

	span.SetAttributes(attribute.Int("articles", len(articles)))
	fields["articles"] = len(articles)
	logger.InfoSkip(ctx, 1, "Articles fetched", trace.Args(fields)...)

	return articles, nil
}
