// cmd/saver/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"forum-ingestion/internal/app"
	"forum-ingestion/internal/config"
)

var (
	outputPath string
	format     string
	pageSize   int
	delay      time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "saver <thread-id>",
	Short: "Save every comment of an index.hu forum thread into one file",
	Long: `Downloads all pages of a forum thread, one at a time with a pause between
requests, and writes the comments in posting order to a single document.

Examples:
  # Save thread 9020254 to data/result-9020254.html
  saver 9020254

  # Save as JSON to a specific file with smaller pages
  saver 9020254 --format json --page-size 100 -o prius.json`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runSave,
}

func init() {
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: $OUTPUT_DIR/result-<thread-id>.<format>)")
	rootCmd.Flags().StringVar(&format, "format", app.FormatHTML, "output format: '"+app.FormatHTML+"' or '"+app.FormatJSON+"'")
	rootCmd.Flags().IntVar(&pageSize, "page-size", config.DefaultPageSize, "comments per request, 10 to 500 (overrides FORUM_PAGE_SIZE)")
	rootCmd.Flags().DurationVar(&delay, "delay", 3*time.Second, "pause between page requests (overrides FORUM_REQUEST_DELAY)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSave(cmd *cobra.Command, args []string) error {
	threadID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || threadID <= 0 {
		return fmt.Errorf("invalid thread id %q", args[0])
	}
	if format != app.FormatHTML && format != app.FormatJSON {
		return fmt.Errorf("invalid format %q", format)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cmd.Flags().Changed("page-size") {
		cfg.PageSize = config.ClampPageSize(pageSize)
	}
	if cmd.Flags().Changed("delay") {
		cfg.RequestDelay = delay
	}

	log, err := app.NewLogger(cfg)
	if err != nil {
		return err
	}

	pipeline, err := app.NewPipeline(cfg, log)
	if err != nil {
		return err
	}

	path := outputPath
	if path == "" {
		path = app.DefaultOutputPath(cfg.OutputDir, threadID, format)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := pipeline.SaveThread(ctx, threadID, path, format); err != nil {
		return err
	}

	log.WithField("path", path).Info("download and save done")
	return nil
}
