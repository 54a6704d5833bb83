package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"wilayah-analytics/internal/config"
	apperrors "wilayah-analytics/internal/errors"
	"wilayah-analytics/internal/ingest"
	"wilayah-analytics/internal/observability"
	"wilayah-analytics/internal/report"
	"wilayah-analytics/internal/services"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return apperrors.ExitCode(apperrors.ConfigWrap(err, "invalid configuration"))
	}

	// Flags override the environment for the knobs changed most often in
	// sensitivity runs.
	flag.StringVar(&cfg.Input.Path, "input", cfg.Input.Path, "path to the transaction table (.csv or .xlsx)")
	flag.StringVar(&cfg.Output.Dir, "output", cfg.Output.Dir, "directory for the generated artifacts")
	flag.BoolVar(&cfg.Input.IncludeReturns, "include-returns", cfg.Input.IncludeReturns, "aggregate Retur rows alongside Pembelian")
	flag.IntVar(&cfg.Classify.NMin, "n-min", cfg.Classify.NMin, "minimum transactions before an item is classified")
	flag.IntVar(&cfg.Classify.TopN, "top-n", cfg.Classify.TopN, "ranking cutoff per wilayah")
	flag.IntVar(&cfg.Classify.GlobalPresenceMin, "global-presence-min", cfg.Classify.GlobalPresenceMin, "minimum wilayah presence for the Global label")
	flag.Float64Var(&cfg.Classify.GlobalHNormMin, "global-h-norm-min", cfg.Classify.GlobalHNormMin, "minimum normalized entropy for the Global label")
	flag.Float64Var(&cfg.Classify.GlobalMaxShareMax, "global-max-share-max", cfg.Classify.GlobalMaxShareMax, "maximum dominant-wilayah share for the Global label")
	flag.Float64Var(&cfg.Classify.LocalMaxShareMin, "local-max-share-min", cfg.Classify.LocalMaxShareMin, "minimum dominant-wilayah share for the Local label")
	flag.Float64Var(&cfg.Classify.LocalHNormMax, "local-h-norm-max", cfg.Classify.LocalHNormMax, "maximum normalized entropy for the Local label")
	flag.Float64Var(&cfg.Classify.LocalLQMin, "local-lq-min", cfg.Classify.LocalLQMin, "minimum location quotient for the Local label")
	flag.BoolVar(&cfg.Output.Charts, "charts", cfg.Output.Charts, "render the PNG charts")
	flag.BoolVar(&cfg.Output.Workbook, "workbook", cfg.Output.Workbook, "render the XLSX workbook")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid flag value", "error", err)
		return apperrors.ExitCode(apperrors.ConfigWrap(err, "invalid configuration"))
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	ctx, span := observability.StartSpan(context.Background(), "analyze")
	logger = logger.With("trace_id", span.TraceID)

	logger.Info("starting analysis",
		"input", cfg.Input.Path,
		"output_dir", cfg.Output.Dir,
		"include_returns", cfg.Input.IncludeReturns,
		"n_min", cfg.Classify.NMin,
		"top_n", cfg.Classify.TopN,
	)

	start := time.Now()

	records, stats, err := ingest.NewLoader(logger).Load(ctx, cfg.Input.Path, cfg.Input.IncludeReturns)
	if err != nil {
		logger.Error("ingestion failed", "error", err)
		return apperrors.ExitCode(err)
	}
	logger.Info("ingestion complete",
		"rows_read", stats.RowsRead,
		"accepted", stats.Accepted,
		"filtered_returns", stats.FilteredReturns,
		"dropped_unknown_region", stats.DroppedUnknownRegion,
		"dropped_no_item", stats.DroppedNoItem,
		"encoding", stats.Encoding,
	)

	thresholds := services.Thresholds{
		NMin:              cfg.Classify.NMin,
		GlobalPresenceMin: cfg.Classify.GlobalPresenceMin,
		GlobalHNormMin:    cfg.Classify.GlobalHNormMin,
		GlobalMaxShareMax: cfg.Classify.GlobalMaxShareMax,
		LocalMaxShareMin:  cfg.Classify.LocalMaxShareMin,
		LocalHNormMax:     cfg.Classify.LocalHNormMax,
		LocalLQMin:        cfg.Classify.LocalLQMin,
	}

	result, err := services.Run(ctx, records, thresholds, cfg.Classify.TopN, cfg.Metrics.Workers, logger)
	if err != nil {
		logger.Error("pipeline failed", "error", err)
		return apperrors.ExitCode(err)
	}

	if err := report.WriteAll(cfg.Output, result, stats); err != nil {
		logger.Error("writing output failed", "error", err)
		return apperrors.ExitCode(err)
	}

	span.Finish()
	logger.Info("analysis complete",
		"items_classified", len(result.Classified),
		"ranked_rows", len(result.Ranking),
		"duration", time.Since(start),
	)

	report.PrintSummary(os.Stdout, result, stats)
	return 0
}
