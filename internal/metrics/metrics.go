// Package metrics holds the run's Prometheus collectors. A run is a batch
// job, so metrics are written to a node-exporter textfile when it ends
// instead of being scraped.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	FetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsmine_fetch_total",
			Help: "Company fetches by source and outcome",
		},
		[]string{"source", "status"}, // status: success|error
	)

	ArticlesFetched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsmine_articles_fetched_total",
			Help: "Articles returned by the news source",
		},
		[]string{"source"},
	)

	FetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newsmine_fetch_duration_seconds",
			Help:    "Per-company fetch duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"source"},
	)

	CompanyTokens = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "newsmine_company_tokens",
			Help: "Tokens produced per company in the last run",
		},
		[]string{"company"},
	)

	StageDuration = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "newsmine_stage_duration_seconds",
			Help: "Duration of each pipeline stage in the last run",
		},
		[]string{"stage"},
	)

	LastRun = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "newsmine_last_run_timestamp",
			Help: "Unix timestamp of the last completed run",
		},
	)
)

var (
	registry = prometheus.NewRegistry()
	initOnce sync.Once
)

// Init registers all collectors. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		registry.MustRegister(
			FetchTotal,
			ArticlesFetched,
			FetchDuration,
			CompanyTokens,
			StageDuration,
			LastRun,
		)
	})
}

func Registry() *prometheus.Registry {
	Init()
	return registry
}

func RecordFetch(source string, articles int, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	FetchTotal.WithLabelValues(source, status).Inc()
	FetchDuration.WithLabelValues(source).Observe(duration.Seconds())
	if articles > 0 {
		ArticlesFetched.WithLabelValues(source).Add(float64(articles))
	}
}

func RecordTokens(company string, n int) {
	CompanyTokens.WithLabelValues(company).Set(float64(n))
}

func RecordStage(stage string, duration time.Duration) {
	StageDuration.WithLabelValues(stage).Set(duration.Seconds())
}

// WriteTextfile stamps the run time and writes every registered metric to
// path in the text exposition format.
func WriteTextfile(path string) error {
	LastRun.SetToCurrentTime()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, Registry()); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
