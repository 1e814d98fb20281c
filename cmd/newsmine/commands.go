package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"news-textmining/internal/logger"
	"news-textmining/internal/metrics"
	"news-textmining/internal/news"
	"news-textmining/internal/news/newsobs"
	"news-textmining/internal/pipeline"
	"news-textmining/internal/report"
	"news-textmining/internal/runlog"
	"news-textmining/internal/store"
)

var (
	saveSnapshot bool
	snapshotPath string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch news, analyze it and write the report",
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(cmd.Context(), "run", saveSnapshot)
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch news and freeze it as a snapshot for later analysis",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Fetch.Source == store.SourceSnapshot {
			return errors.New("fetch needs a network source, not snapshot")
		}
		if snapshotPath != "" {
			cfg.Fetch.SnapshotPath = snapshotPath
		}

		rec := newRecord("fetch")
		runner, err := newRunner()
		if err != nil {
			return err
		}
		col, err := runner.Collect(cmd.Context())
		if err != nil {
			return finish(rec, nil, err)
		}
		if err := writeSnapshot(col); err != nil {
			return finish(rec, nil, err)
		}
		rec.Fetches = col.Statuses
		rec.Articles = len(col.Articles())
		rec.Outputs = []string{cfg.Fetch.SnapshotPath}
		fmt.Fprintf(cmd.OutOrStdout(), "%d articles written to %s\n", rec.Articles, cfg.Fetch.SnapshotPath)
		return finish(rec, nil, nil)
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a previously fetched snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.Fetch.Source = store.SourceSnapshot
		if snapshotPath != "" {
			cfg.Fetch.SnapshotPath = snapshotPath
		}
		return execute(cmd.Context(), "analyze", false)
	},
}

var lexiconsCmd = &cobra.Command{
	Use:   "lexicons",
	Short: "List the available sentiment lexicons",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := pipeline.NewRegistry(cfg)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tWORDS\tENTRIES\tSCORED\tLABELS")
		for _, name := range reg.Names() {
			lex, err := reg.Get(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "%s\t%d\t%d\t%t\t%s\n",
				name, lex.Words(), lex.Len(), lex.Scored(), strings.Join(lex.Labels(), ","))
		}
		return tw.Flush()
	},
}

func init() {
	runCmd.Flags().BoolVar(&saveSnapshot, "save-snapshot", false, "also write the fetched articles to fetch.snapshot_path")
	fetchCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "snapshot file (overrides fetch.snapshot_path)")
	analyzeCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "snapshot file (overrides fetch.snapshot_path)")
}

func newRunner() (*pipeline.Runner, error) {
	fetcher, err := news.NewFetcher(cfg)
	if err != nil {
		return nil, err
	}
	reg, err := pipeline.NewRegistry(cfg)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cfg, newsobs.Wrap(fetcher), reg)
}

func newRecord(command string) runlog.Record {
	return runlog.Record{
		RunID:     runlog.NewRunID(),
		Command:   command,
		Source:    cfg.Fetch.Source,
		StartedAt: time.Now(),
		Lexicons:  cfg.Analysis.Lexicons,
	}
}

// execute runs the full pipeline and writes every configured output.
func execute(ctx context.Context, command string, snapshot bool) error {
	rec := newRecord(command)
	runner, err := newRunner()
	if err != nil {
		return err
	}

	res, col, err := runner.Run(ctx)
	if err != nil {
		return finish(rec, nil, err)
	}
	rec.Fetches = col.Statuses
	rec.Articles = len(col.Articles())
	rec.Tokens = res.TokenTotals

	if snapshot {
		if err := writeSnapshot(col); err != nil {
			return finish(rec, res, err)
		}
		rec.Outputs = append(rec.Outputs, cfg.Fetch.SnapshotPath)
	}

	written, err := report.Write(res, cfg.Output.Dir, cfg.Output.Formats, os.Stdout)
	rec.Outputs = append(rec.Outputs, written...)
	return finish(rec, res, err)
}

func writeSnapshot(col *news.Collection) error {
	return news.SaveSnapshot(cfg.Fetch.SnapshotPath, &news.Snapshot{
		CreatedAt: time.Now().UTC(),
		Source:    cfg.Fetch.Source,
		Companies: col.Companies,
		Articles:  col.Articles(),
		Statuses:  col.Statuses,
	})
}

// finish records the run and flushes metrics. runErr is returned unchanged;
// bookkeeping failures are only logged.
func finish(rec runlog.Record, res *pipeline.Result, runErr error) error {
	ctx := context.Background()

	rec.FinishedAt = time.Now()
	if runErr != nil {
		rec.Error = runErr.Error()
	}

	rl := runlog.New(cfg.RunLog.Dir)
	if err := rl.Append(rec); err != nil {
		logger.ErrorWithErr(ctx, "Failed to append run log", err)
	}
	if n, err := rl.CompressOlder(cfg.RunLog.RetentionDays); err != nil {
		logger.ErrorWithErr(ctx, "Failed to compress old run logs", err)
	} else if n > 0 {
		logger.Info(ctx, "Compressed old run logs", "files", n)
	}

	if cfg.Metrics.TextfilePath != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.TextfilePath); err != nil {
			logger.ErrorWithErr(ctx, "Failed to write metrics", err)
		}
	}

	fields := []any{
		"run_id", rec.RunID,
		"command", rec.Command,
		"articles", rec.Articles,
		"outputs", len(rec.Outputs),
		"duration_ms", rec.FinishedAt.Sub(rec.StartedAt).Milliseconds(),
	}
	if res != nil {
		fields = append(fields, "lexicons", len(res.Lexicons))
	}
	if runErr != nil {
		logger.ErrorWithErr(ctx, "Run failed", runErr, fields...)
		return runErr
	}
	logger.Stage(ctx, "finish", fields...)
	return nil
}
