package services

import (
	"cmp"
	"slices"

	"wilayah-analytics/internal/models"
	"wilayah-analytics/internal/region"
)

// TopN ranks the items of each wilayah by distinct transactions, then
// quantity total, then value total, all descending, and truncates to n.
// The sort is stable and the rows start in first-observation order, so
// fully tied rows reproduce the input order on every run. Regions appear
// in the fixed priority order.
func TopN(agg *Aggregates, n int) []models.RankedItem {
	var out []models.RankedItem
	for _, wilayah := range region.All() {
		rows := agg.regionRows(wilayah)
		slices.SortStableFunc(rows, func(a, b models.ItemRegionStat) int {
			if c := cmp.Compare(b.Transactions, a.Transactions); c != 0 {
				return c
			}
			if c := cmp.Compare(b.QtyTotal, a.QtyTotal); c != 0 {
				return c
			}
			return cmp.Compare(b.ValueTotal, a.ValueTotal)
		})
		if len(rows) > n {
			rows = rows[:n]
		}
		for i, row := range rows {
			out = append(out, models.RankedItem{
				Region:         wilayah,
				Rank:           i + 1,
				ItemCode:       row.ItemCode,
				Description:    row.Description,
				Transactions:   row.Transactions,
				QtyTotal:       row.QtyTotal,
				FirstUnitPrice: row.FirstUnitPrice,
				ValueTotal:     row.ValueTotal,
			})
		}
	}
	return out
}
