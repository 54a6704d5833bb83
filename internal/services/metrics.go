package services

import (
	"context"
	"math"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"wilayah-analytics/internal/models"
	"wilayah-analytics/internal/region"
)

const defaultMetricsWorkers = 10

// ComputeMetrics derives the distribution metrics for every item. Items are
// independent given the immutable run totals, so the work runs on a bounded
// worker pool writing to disjoint slice slots; ordering is imposed later,
// at output time.
func ComputeMetrics(ctx context.Context, agg *Aggregates, workers int) ([]models.ItemMetrics, error) {
	codes := make([]string, 0, len(agg.Items))
	for code := range agg.Items {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	normBase := agg.Totals.Present()

	out := make([]models.ItemMetrics, len(codes))
	g, ctx := errgroup.WithContext(ctx)
	if workers < 1 {
		workers = defaultMetricsWorkers
	}
	g.SetLimit(workers)

	for i, code := range codes {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			out[i] = metricsFor(agg.Items[code], agg.Totals, normBase)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func metricsFor(item *models.ItemStat, totals models.RegionTotals, normBase int) models.ItemMetrics {
	m := models.ItemMetrics{
		ItemCode:           item.ItemCode,
		Description:        item.Description,
		Transactions:       item.Transactions,
		PresenceCount:      item.PresenceCount,
		RegionTransactions: make(map[region.Region]int, len(item.RegionTransactions)),
		Shares:             make(map[region.Region]float64, len(item.RegionTransactions)),
	}
	for wilayah, count := range item.RegionTransactions {
		m.RegionTransactions[wilayah] = count
	}

	if item.Transactions > 0 {
		shares := make([]float64, 0, len(item.RegionTransactions))
		for _, wilayah := range region.All() {
			count := item.RegionTransactions[wilayah]
			if count == 0 {
				continue
			}
			share := float64(count) / float64(item.Transactions)
			m.Shares[wilayah] = share
			shares = append(shares, share)
		}
		m.Entropy = stat.Entropy(shares)
	}

	// The normalizer is the system-wide region presence count, not the
	// item's own; guard to 0 when it cannot spread entropy at all.
	if normBase > 1 {
		m.EntropyNorm = m.Entropy / math.Log(float64(normBase))
	}

	m.MaxShare, m.DominantRegion = dominance(item)
	m.LQMax = locationQuotientMax(item, totals)

	return m
}

// dominance works on the integer counts so that ties are exact. Tied
// regions are sorted lexicographically and comma-joined.
func dominance(item *models.ItemStat) (float64, string) {
	maxCount := 0
	for _, count := range item.RegionTransactions {
		if count > maxCount {
			maxCount = count
		}
	}
	if maxCount == 0 || item.Transactions == 0 {
		return 0, ""
	}

	var tied []string
	for wilayah, count := range item.RegionTransactions {
		if count == maxCount {
			tied = append(tied, string(wilayah))
		}
	}
	sort.Strings(tied)

	return float64(maxCount) / float64(item.Transactions), strings.Join(tied, ", ")
}

// locationQuotientMax compares the item's concentration in each region with
// that region's share of all transactions. The denominator comes from the
// run-global totals fixed before any per-item computation.
func locationQuotientMax(item *models.ItemStat, totals models.RegionTotals) float64 {
	if item.Transactions == 0 || totals.Grand == 0 {
		return 0
	}

	lqMax := 0.0
	for wilayah, count := range item.RegionTransactions {
		regionTotal := totals.Transactions[wilayah]
		if regionTotal == 0 {
			continue
		}
		itemShare := float64(count) / float64(item.Transactions)
		regionShare := float64(regionTotal) / float64(totals.Grand)
		if lq := itemShare / regionShare; lq > lqMax {
			lqMax = lq
		}
	}
	return lqMax
}
