package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"news-textmining/internal/logger"
	"news-textmining/internal/metrics"
	"news-textmining/internal/store"
	"news-textmining/internal/trace"
)

var (
	configPath string
	outputDir  string
	formats    []string

	cfg *store.Config
)

var rootCmd = &cobra.Command{
	Use:   "newsmine",
	Short: "Text mining of recent stock news",
	Long: `newsmine fetches recent news for a fixed list of companies, tokenizes it
and reports word frequencies, tf-idf weights and lexicon sentiment per company.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		c, err := store.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if outputDir != "" {
			c.Output.Dir = outputDir
		}
		if len(formats) > 0 {
			c.Output.Formats = formats
			if err := c.Validate(); err != nil {
				return err
			}
		}
		cfg = c

		if err := logger.InitWithConfig(logger.LogConfig{
			Level:           cfg.Log.Level,
			Format:          cfg.Log.Format,
			DetailedLogging: cfg.Log.Detailed,
			TracingEnabled:  cfg.Log.TracingEnabled,
		}); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		trace.Init(logger.IsTracingEnabled())
		metrics.Init()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = logger.Shutdown(ctx)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the YAML config file")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "output directory (overrides output.dir)")
	rootCmd.PersistentFlags().StringSliceVarP(&formats, "format", "f", nil, "output formats: text, csv, json (overrides output.formats)")

	rootCmd.AddCommand(runCmd, fetchCmd, analyzeCmd, lexiconsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "newsmine: %v\n", err)
		os.Exit(1)
	}
}
