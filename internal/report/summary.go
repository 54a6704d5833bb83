package report

import (
	"fmt"
	"io"
	"strings"

	"wilayah-analytics/internal/ingest"
	"wilayah-analytics/internal/models"
	"wilayah-analytics/internal/services"
)

const summaryWidth = 80

// PrintSummary writes the run summary to w, meant for the console after the
// output files are committed.
func PrintSummary(w io.Writer, result *services.Result, stats ingest.Stats) {
	rule := strings.Repeat("=", summaryWidth)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "CLASSIFICATION SUMMARY")
	fmt.Fprintln(w, rule)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Overall Distribution:")
	counts := result.LabelCounts()
	for _, label := range []models.Label{
		models.LabelGlobal, models.LabelRegional, models.LabelLocal, models.LabelLowVolume,
	} {
		fmt.Fprintf(w, "  %-12s: %5d items\n", label, counts[label])
	}

	printLabelTop(w, "Top 10 Global Items", "H_norm", result.TopByLabel(models.LabelGlobal, 10),
		func(item models.ClassifiedItem) float64 { return item.EntropyNorm })
	printLabelTop(w, "Top 10 Local Items", "Max Share", result.TopByLabel(models.LabelLocal, 10),
		func(item models.ClassifiedItem) float64 { return item.MaxShare })

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ingestion:")
	fmt.Fprintf(w, "  Rows read            : %d\n", stats.RowsRead)
	fmt.Fprintf(w, "  Rows accepted        : %d\n", stats.Accepted)
	fmt.Fprintf(w, "  Returns filtered     : %d\n", stats.FilteredReturns)
	fmt.Fprintf(w, "  Unknown wilayah drops: %d\n", stats.DroppedUnknownRegion)
	fmt.Fprintf(w, "  Missing item drops   : %d\n", stats.DroppedNoItem)
	fmt.Fprintf(w, "  Source encoding      : %s\n", stats.Encoding)

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
}

func printLabelTop(w io.Writer, title, metricName string, items []models.ClassifiedItem, metric func(models.ClassifiedItem) float64) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, centerDashes(title, summaryWidth))
	fmt.Fprintf(w, "%-12s %-40s %10s %10s\n", "Kode", "Description", "Trx Count", metricName)
	fmt.Fprintln(w, strings.Repeat("-", summaryWidth))
	for _, item := range items {
		fmt.Fprintf(w, "%-12s %-40s %10d %10.3f\n",
			item.ItemCode, truncate(item.Description, 40), item.Transactions, metric(item))
	}
}

func centerDashes(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat("-", left) + s + strings.Repeat("-", pad-left)
}
