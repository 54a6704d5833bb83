package services

import (
	"context"
	"fmt"
	"math"
	"testing"

	"wilayah-analytics/internal/models"
	"wilayah-analytics/internal/region"
)

// spread builds records for one item with the given distinct-transaction
// count per region, using unique transaction ids.
func spread(item string, counts map[region.Region]int) []models.Record {
	var records []models.Record
	i := 0
	for _, wilayah := range region.All() {
		for range counts[wilayah] {
			records = append(records, rec(fmt.Sprintf("%s-T%d", item, i), item, wilayah, 1, 100))
			i++
		}
	}
	return records
}

func computeAll(t *testing.T, records []models.Record) map[string]models.ItemMetrics {
	t.Helper()
	agg := Aggregate(records)
	metrics, err := ComputeMetrics(context.Background(), agg, 4)
	if err != nil {
		t.Fatalf("ComputeMetrics() should not error, got: %v", err)
	}
	out := make(map[string]models.ItemMetrics, len(metrics))
	for _, m := range metrics {
		out[m.ItemCode] = m
	}
	return out
}

func TestMetricsSingleRegionItem(t *testing.T) {
	records := spread("X", map[region.Region]int{region.JakartaSelatan: 50})
	m := computeAll(t, records)["X"]

	if m.PresenceCount != 1 {
		t.Fatalf("presence count = %d, want 1", m.PresenceCount)
	}
	if m.Entropy != 0 {
		t.Errorf("entropy = %v, want 0 for a single-region item", m.Entropy)
	}
	if m.EntropyNorm != 0 {
		t.Errorf("H_norm = %v, want 0", m.EntropyNorm)
	}
	if m.MaxShare != 1.0 {
		t.Errorf("max share = %v, want 1.0", m.MaxShare)
	}
	if m.DominantRegion != string(region.JakartaSelatan) {
		t.Errorf("dominant region = %q, want Jakarta Selatan", m.DominantRegion)
	}
}

func TestMetricsSharesSumToOne(t *testing.T) {
	records := spread("A", map[region.Region]int{
		region.JakartaPusat:    7,
		region.JakartaUtara:    3,
		region.KepulauanSeribu: 2,
	})
	m := computeAll(t, records)["A"]

	sum := 0.0
	for _, share := range m.Shares {
		sum += share
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("shares sum = %v, want 1.0", sum)
	}
}

func TestMetricsNearUniformDistribution(t *testing.T) {
	// Five of six regions with near-uniform counts: entropy close to its
	// maximum and no region dominating.
	records := spread("Y", map[region.Region]int{
		region.JakartaPusat:   40,
		region.JakartaUtara:   38,
		region.JakartaTimur:   42,
		region.JakartaBarat:   39,
		region.JakartaSelatan: 41,
	})
	m := computeAll(t, records)["Y"]

	if m.PresenceCount != 5 {
		t.Fatalf("presence count = %d, want 5", m.PresenceCount)
	}
	if m.EntropyNorm < 0.70 {
		t.Errorf("H_norm = %v, want >= 0.70", m.EntropyNorm)
	}
	if m.MaxShare > 0.50 {
		t.Errorf("max share = %v, want <= 0.50", m.MaxShare)
	}
}

func TestMetricsNormalizerIsSystemWide(t *testing.T) {
	// Item B sits in one region, but the dataset spans three, so B's H_norm
	// divides by ln(3), not by ln of B's own presence count.
	records := append(
		spread("A", map[region.Region]int{
			region.JakartaPusat: 10,
			region.JakartaUtara: 10,
			region.JakartaTimur: 10,
		}),
		spread("B", map[region.Region]int{region.JakartaPusat: 5})...,
	)
	metrics := computeAll(t, records)

	a := metrics["A"]
	want := a.Entropy / math.Log(3)
	if math.Abs(a.EntropyNorm-want) > 1e-12 {
		t.Errorf("H_norm = %v, want %v (normalized by ln(3))", a.EntropyNorm, want)
	}
	// Uniform over 3 of 3 present regions: H_norm is 1.
	if math.Abs(a.EntropyNorm-1.0) > 1e-9 {
		t.Errorf("H_norm = %v, want 1.0 for a uniform spread over all present regions", a.EntropyNorm)
	}
}

func TestMetricsDominantRegionTieBreak(t *testing.T) {
	records := spread("A", map[region.Region]int{
		region.JakartaUtara: 10,
		region.JakartaBarat: 10,
		region.JakartaPusat: 4,
	})
	m := computeAll(t, records)["A"]

	// Lexicographic join: Barat sorts before Utara.
	want := "Jakarta Barat, Jakarta Utara"
	if m.DominantRegion != want {
		t.Errorf("dominant region = %q, want %q", m.DominantRegion, want)
	}
}

func TestMetricsLocationQuotient(t *testing.T) {
	// Background item spread evenly over two regions; item L concentrated
	// in Kepulauan Seribu, a region with a small share of all transactions,
	// so L's LQ there is far above 1.
	records := append(
		spread("BG", map[region.Region]int{
			region.JakartaPusat: 45,
			region.JakartaUtara: 45,
		}),
		spread("L", map[region.Region]int{region.KepulauanSeribu: 10})...,
	)
	metrics := computeAll(t, records)

	l := metrics["L"]
	// L: share 1.0 in Kepulauan Seribu; region share 10/100 of all
	// transactions; LQ = 1.0 / 0.1 = 10.
	if math.Abs(l.LQMax-10.0) > 1e-9 {
		t.Errorf("LQ_max = %v, want 10.0", l.LQMax)
	}

	bg := metrics["BG"]
	if bg.LQMax < 1.0 {
		t.Errorf("background LQ_max = %v, want >= 1.0", bg.LQMax)
	}
}

func TestMetricsZeroDenominatorsNeverPanic(t *testing.T) {
	metrics, err := ComputeMetrics(context.Background(), Aggregate(nil), 4)
	if err != nil {
		t.Fatalf("ComputeMetrics() on empty input should not error, got: %v", err)
	}
	if len(metrics) != 0 {
		t.Errorf("got %d metrics for empty input, want 0", len(metrics))
	}
}
