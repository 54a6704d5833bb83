package report

import (
	"fmt"
	"io"

	"wilayah-analytics/internal/ingest"
	"wilayah-analytics/internal/models"
	"wilayah-analytics/internal/region"
	"wilayah-analytics/internal/services"
)

const classificationExcerptRows = 20

// markdownReport renders the human-readable report: the per-wilayah top-N
// tables, an excerpt of the classification table, the label distribution,
// and the ingestion diagnostics. The document carries no timestamps so two
// runs over the same input produce identical bytes.
func markdownReport(result *services.Result, stats ingest.Stats) func(io.Writer) error {
	return func(w io.Writer) error {
		fmt.Fprintln(w, "# Analisis Transaksi per Wilayah DKI Jakarta")
		fmt.Fprintln(w)

		fmt.Fprintln(w, "## Item Teratas per Wilayah")
		fmt.Fprintln(w)
		for _, wilayah := range region.All() {
			rows := rankingFor(result.Ranking, wilayah)
			fmt.Fprintf(w, "### %s\n\n", wilayah)
			if len(rows) == 0 {
				fmt.Fprintln(w, "_Tidak ada transaksi._")
				fmt.Fprintln(w)
				continue
			}
			fmt.Fprintln(w, "| Rank | Kode Item | Deskripsi | Transaksi | Qty | Nilai Total |")
			fmt.Fprintln(w, "|-----:|:----------|:----------|----------:|----:|------------:|")
			for _, row := range rows {
				fmt.Fprintf(w, "| %d | %s | %s | %s | %s | %s |\n",
					row.Rank,
					row.ItemCode,
					truncate(row.Description, 48),
					formatCount(row.Transactions),
					formatDecimal(row.QtyTotal),
					formatRupiah(row.ValueTotal),
				)
			}
			fmt.Fprintln(w)
		}

		fmt.Fprintln(w, "## Klasifikasi Jangkauan Item")
		fmt.Fprintln(w)
		counts := result.LabelCounts()
		fmt.Fprintln(w, "| Label | Jumlah Item |")
		fmt.Fprintln(w, "|:------|------------:|")
		for _, label := range []models.Label{
			models.LabelGlobal, models.LabelRegional, models.LabelLocal, models.LabelLowVolume,
		} {
			fmt.Fprintf(w, "| %s | %s |\n", label, formatCount(counts[label]))
		}
		fmt.Fprintln(w)

		fmt.Fprintf(w, "### %d Item Teratas berdasarkan Transaksi\n\n", classificationExcerptRows)
		fmt.Fprintln(w, "| Kode Item | Deskripsi | Transaksi | Presence | H_norm | Max Share | Wilayah Dominan | Label |")
		fmt.Fprintln(w, "|:----------|:----------|----------:|---------:|-------:|----------:|:----------------|:------|")
		excerpt := result.Classified
		if len(excerpt) > classificationExcerptRows {
			excerpt = excerpt[:classificationExcerptRows]
		}
		for _, item := range excerpt {
			fmt.Fprintf(w, "| %s | %s | %s | %d | %s | %s | %s | %s |\n",
				item.ItemCode,
				truncate(item.Description, 48),
				formatCount(item.Transactions),
				item.PresenceCount,
				formatRatio(item.EntropyNorm),
				formatRatio(item.MaxShare),
				item.DominantRegion,
				item.Label,
			)
		}
		fmt.Fprintln(w)

		fmt.Fprintln(w, "## Diagnostik Ingesti")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "- Baris terbaca: %s\n", formatCount(stats.RowsRead))
		fmt.Fprintf(w, "- Baris diterima: %s\n", formatCount(stats.Accepted))
		fmt.Fprintf(w, "- Retur/non-pembelian tersaring: %s\n", formatCount(stats.FilteredReturns))
		fmt.Fprintf(w, "- Wilayah tidak dikenal: %s\n", formatCount(stats.DroppedUnknownRegion))
		fmt.Fprintf(w, "- Tanpa kode item: %s\n", formatCount(stats.DroppedNoItem))
		fmt.Fprintf(w, "- Encoding sumber: %s\n", stats.Encoding)

		return nil
	}
}

func rankingFor(ranking []models.RankedItem, wilayah region.Region) []models.RankedItem {
	var rows []models.RankedItem
	for _, row := range ranking {
		if row.Region == wilayah {
			rows = append(rows, row)
		}
	}
	return rows
}
