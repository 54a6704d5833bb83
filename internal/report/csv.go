package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"wilayah-analytics/internal/region"
	"wilayah-analytics/internal/services"
)

// classificationCSV renders output 1: one row per item, sorted by total
// transaction count descending (ties broken by item code), one
// transaction-count column per wilayah. The dominant-wilayah column joins
// tied regions lexicographically.
func classificationCSV(result *services.Result) func(io.Writer) error {
	return func(w io.Writer) error {
		cw := csv.NewWriter(w)

		header := []string{
			"kodeitem", "deskripsi", "transaksi_count_total", "presence_count",
			"H_norm", "max_share", "wilayah_dominan", "LQ_max", "label",
		}
		for _, wilayah := range region.All() {
			header = append(header, wilayah.ColumnName())
		}
		if err := cw.Write(header); err != nil {
			return err
		}

		for _, item := range result.Classified {
			row := []string{
				item.ItemCode,
				item.Description,
				strconv.Itoa(item.Transactions),
				strconv.Itoa(item.PresenceCount),
				formatRatio(item.EntropyNorm),
				formatRatio(item.MaxShare),
				item.DominantRegion,
				formatRatio(item.LQMax),
				string(item.Label),
			}
			for _, wilayah := range region.All() {
				row = append(row, strconv.Itoa(item.RegionTransactions[wilayah]))
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}

		cw.Flush()
		return cw.Error()
	}
}

// topNCSV renders output 2: the per-wilayah ranking, wilayah grouped in
// priority order, rank ascending.
func topNCSV(result *services.Result) func(io.Writer) error {
	return func(w io.Writer) error {
		cw := csv.NewWriter(w)

		header := []string{
			"Wilayah", "Rank", "Kode Item", "Deskripsi",
			"Transaksi (unik)", "Qty Total", "Harga (first)", "Nilai Total",
		}
		if err := cw.Write(header); err != nil {
			return err
		}

		for _, row := range result.Ranking {
			price := ""
			if row.FirstUnitPrice != nil {
				price = strconv.FormatFloat(*row.FirstUnitPrice, 'f', 2, 64)
			}
			record := []string{
				string(row.Region),
				strconv.Itoa(row.Rank),
				row.ItemCode,
				row.Description,
				strconv.Itoa(row.Transactions),
				strconv.FormatFloat(row.QtyTotal, 'f', 2, 64),
				price,
				strconv.FormatFloat(row.ValueTotal, 'f', 2, 64),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}

		cw.Flush()
		return cw.Error()
	}
}
