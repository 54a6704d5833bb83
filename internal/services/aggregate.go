package services

import (
	"wilayah-analytics/internal/models"
	"wilayah-analytics/internal/region"
)

type itemRegionKey struct {
	item    string
	wilayah region.Region
}

// Aggregates holds both group-by passes over the accepted record stream
// plus the run-global region totals. It is owned by the pipeline run that
// produced it; nothing is shared or cached across runs.
type Aggregates struct {
	ItemRegion map[itemRegionKey]*models.ItemRegionStat
	Items      map[string]*models.ItemStat
	Totals     models.RegionTotals

	// order fixes the first-observation order of (item, region) groups so
	// that fully tied ranking rows reproduce the input order.
	order []itemRegionKey
}

// Aggregate folds records into the (item, region) and per-item aggregates.
// Transaction counting uses set semantics over transaction ids: duplicate
// rows sharing an id within a group never inflate any count. The per-item
// total is grouped independently across all regions, not summed from the
// per-region rows.
func Aggregate(records []models.Record) *Aggregates {
	agg := &Aggregates{
		ItemRegion: make(map[itemRegionKey]*models.ItemRegionStat),
		Items:      make(map[string]*models.ItemStat),
		Totals: models.RegionTotals{
			Transactions: make(map[region.Region]int),
		},
	}

	groupIDs := make(map[itemRegionKey]map[string]struct{})
	itemIDs := make(map[string]map[string]struct{})
	regionIDs := make(map[region.Region]map[string]struct{})
	grandIDs := make(map[string]struct{})

	for _, rec := range records {
		key := itemRegionKey{item: rec.ItemCode, wilayah: rec.Region}

		group := agg.ItemRegion[key]
		if group == nil {
			group = &models.ItemRegionStat{
				Region:   rec.Region,
				ItemCode: rec.ItemCode,
			}
			agg.ItemRegion[key] = group
			groupIDs[key] = make(map[string]struct{})
			agg.order = append(agg.order, key)
		}
		group.Description = rec.Description
		group.QtyTotal += rec.Quantity
		group.ValueTotal += rec.RowValue()
		if group.FirstUnitPrice == nil && rec.UnitPrice != nil {
			price := *rec.UnitPrice
			group.FirstUnitPrice = &price
		}
		groupIDs[key][rec.TransactionID] = struct{}{}

		item := agg.Items[rec.ItemCode]
		if item == nil {
			item = &models.ItemStat{
				ItemCode:           rec.ItemCode,
				RegionTransactions: make(map[region.Region]int),
			}
			agg.Items[rec.ItemCode] = item
			itemIDs[rec.ItemCode] = make(map[string]struct{})
		}
		item.Description = rec.Description
		itemIDs[rec.ItemCode][rec.TransactionID] = struct{}{}

		if regionIDs[rec.Region] == nil {
			regionIDs[rec.Region] = make(map[string]struct{})
		}
		regionIDs[rec.Region][rec.TransactionID] = struct{}{}
		grandIDs[rec.TransactionID] = struct{}{}
	}

	for key, ids := range groupIDs {
		agg.ItemRegion[key].Transactions = len(ids)
	}
	for code, ids := range itemIDs {
		agg.Items[code].Transactions = len(ids)
	}
	for key, group := range agg.ItemRegion {
		if group.Transactions > 0 {
			agg.Items[key.item].RegionTransactions[key.wilayah] = group.Transactions
		}
	}
	for _, item := range agg.Items {
		item.PresenceCount = len(item.RegionTransactions)
	}
	for wilayah, ids := range regionIDs {
		agg.Totals.Transactions[wilayah] = len(ids)
	}
	agg.Totals.Grand = len(grandIDs)

	return agg
}

// regionRows returns the (item, region) aggregates of one wilayah in
// first-observation order.
func (a *Aggregates) regionRows(wilayah region.Region) []models.ItemRegionStat {
	var rows []models.ItemRegionStat
	for _, key := range a.order {
		if key.wilayah == wilayah {
			rows = append(rows, *a.ItemRegion[key])
		}
	}
	return rows
}
