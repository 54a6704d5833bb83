package models

import "wilayah-analytics/internal/region"

// Record is one accepted transaction row. Records are folded into the
// aggregates and never mutated or retained afterwards.
type Record struct {
	TransactionID string
	ItemCode      string
	Description   string
	StoreAddress  string
	Region        region.Region
	Quantity      float64
	UnitPrice     *float64 // nil when the source field is missing or unparseable
	LineValue     *float64 // nil when the source row carries no usable value field
}

// RowValue is the monetary value of the row: the source line value when
// present, otherwise unit price times quantity.
func (r Record) RowValue() float64 {
	if r.LineValue != nil {
		return *r.LineValue
	}
	if r.UnitPrice != nil {
		return *r.UnitPrice * r.Quantity
	}
	return 0
}

// ItemRegionStat is the (item, region) aggregate.
type ItemRegionStat struct {
	Region         region.Region
	ItemCode       string
	Description    string // most recently observed
	Transactions   int    // distinct transaction ids within the group
	QtyTotal       float64
	ValueTotal     float64
	FirstUnitPrice *float64 // first non-missing unit price in file order
}

// ItemStat is the per-item aggregate. Transactions is counted by an
// independent all-region group-by over distinct ids, not by summing the
// per-region rows.
type ItemStat struct {
	ItemCode           string
	Description        string
	Transactions       int
	PresenceCount      int
	RegionTransactions map[region.Region]int
}

// ItemMetrics carries the distribution-concentration measures derived for
// one item.
type ItemMetrics struct {
	ItemCode           string
	Description        string
	Transactions       int
	PresenceCount      int
	RegionTransactions map[region.Region]int
	Shares             map[region.Region]float64 // absent regions have implicit share 0
	Entropy            float64
	EntropyNorm        float64
	MaxShare           float64
	DominantRegion     string // tied regions sorted lexicographically, comma-joined
	LQMax              float64
}

// Label is the classification outcome for an item.
type Label string

const (
	LabelLowVolume Label = "Low-Volume"
	LabelGlobal    Label = "Global"
	LabelRegional  Label = "Regional"
	LabelLocal     Label = "Local"
)

// ClassifiedItem pairs an item's metrics with its label.
type ClassifiedItem struct {
	ItemMetrics
	Label Label
}

// RegionTotals holds distinct-transaction counts over the full accepted
// record set, fixed once per run before any per-item computation.
type RegionTotals struct {
	Transactions map[region.Region]int
	Grand        int
}

// Present is the number of regions with at least one transaction. Its
// natural log normalizes entropy for every item in the run.
func (t RegionTotals) Present() int {
	n := 0
	for _, count := range t.Transactions {
		if count > 0 {
			n++
		}
	}
	return n
}

// RankedItem is one row of the top-N-per-region table.
type RankedItem struct {
	Region         region.Region
	Rank           int
	ItemCode       string
	Description    string
	Transactions   int
	QtyTotal       float64
	FirstUnitPrice *float64
	ValueTotal     float64
}
