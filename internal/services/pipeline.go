package services

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"wilayah-analytics/internal/models"
	"wilayah-analytics/internal/observability"
)

// Result is everything a run derives from the accepted records. It is a
// pure function of (records, thresholds, topN): two runs over identical
// input and configuration produce identical Results.
type Result struct {
	// Classified is sorted by total transaction count descending, then item
	// code ascending, the order of the classification table.
	Classified []models.ClassifiedItem
	Ranking    []models.RankedItem
	Totals     models.RegionTotals
}

// LabelCounts tallies how many items carry each label.
func (r *Result) LabelCounts() map[models.Label]int {
	counts := make(map[models.Label]int, 4)
	for _, item := range r.Classified {
		counts[item.Label]++
	}
	return counts
}

// TopByLabel returns up to n classified items with the given label, already
// in table order.
func (r *Result) TopByLabel(label models.Label, n int) []models.ClassifiedItem {
	var out []models.ClassifiedItem
	for _, item := range r.Classified {
		if item.Label != label {
			continue
		}
		out = append(out, item)
		if len(out) == n {
			break
		}
	}
	return out
}

// Run executes the full pipeline: aggregate, metrics, classify, rank.
func Run(ctx context.Context, records []models.Record, thresholds Thresholds, topN, workers int, logger *slog.Logger) (*Result, error) {
	ctx, span := observability.StartSpan(ctx, "pipeline")

	_, stage := observability.StartSpan(ctx, "aggregate")
	agg := Aggregate(records)
	finishStage(stage, logger)

	metricsCtx, stage := observability.StartSpan(ctx, "metrics")
	metrics, err := ComputeMetrics(metricsCtx, agg, workers)
	if err != nil {
		stage.SetError(err)
		span.SetError(err)
		return nil, err
	}
	finishStage(stage, logger)

	_, stage = observability.StartSpan(ctx, "classify")
	classified := make([]models.ClassifiedItem, len(metrics))
	for i, m := range metrics {
		classified[i] = models.ClassifiedItem{
			ItemMetrics: m,
			Label:       Classify(m, thresholds),
		}
	}
	slices.SortStableFunc(classified, func(a, b models.ClassifiedItem) int {
		if c := cmp.Compare(b.Transactions, a.Transactions); c != 0 {
			return c
		}
		return cmp.Compare(a.ItemCode, b.ItemCode)
	})
	finishStage(stage, logger)

	_, stage = observability.StartSpan(ctx, "rank")
	ranking := TopN(agg, topN)
	finishStage(stage, logger)

	span.Finish()
	logger.Info("pipeline complete",
		"records", len(records),
		"items", len(classified),
		"regions_present", agg.Totals.Present(),
		"grand_total_transactions", agg.Totals.Grand,
		"duration", span.Duration,
	)

	return &Result{
		Classified: classified,
		Ranking:    ranking,
		Totals:     agg.Totals,
	}, nil
}

func finishStage(span *observability.Span, logger *slog.Logger) {
	span.Finish()
	logger.Debug("stage complete", "operation", span.Operation, "duration", span.Duration)
}
