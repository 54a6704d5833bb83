package ingest

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"

	apperrors "wilayah-analytics/internal/errors"
	"wilayah-analytics/internal/locale"
	"wilayah-analytics/internal/models"
	"wilayah-analytics/internal/region"
)

// purchaseKind is the transaction type kept when returns are not opted in.
const purchaseKind = "Pembelian"

// Stats reports what happened to the source rows, for the operator summary.
type Stats struct {
	RowsRead             int
	Accepted             int
	FilteredReturns      int
	DroppedUnknownRegion int
	DroppedNoItem        int
	Encoding             string
}

type Loader struct {
	logger  *slog.Logger
	dropLog rate.Sometimes
}

func NewLoader(logger *slog.Logger) *Loader {
	return &Loader{
		logger: logger,
		// Per-row drop logging is throttled; the full count still lands in Stats.
		dropLog: rate.Sometimes{First: 5, Interval: 2 * time.Second},
	}
}

// Load reads the transaction table at path and returns the accepted records.
// Numeric field failures degrade to defaults; a missing required column or
// an unreadable file is fatal.
func (l *Loader) Load(ctx context.Context, path string, includeReturns bool) ([]models.Record, Stats, error) {
	var stats Stats

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, stats, apperrors.InputWrap(err, "cannot read input file")
	}

	rows, encoding, err := readTable(path, data)
	if err != nil {
		return nil, stats, err
	}
	stats.Encoding = encoding

	if len(rows) == 0 {
		return nil, stats, apperrors.Input("input file has no header row")
	}

	cols, err := resolveColumns(rows[0])
	if err != nil {
		return nil, stats, err
	}

	records := make([]models.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if i%1024 == 0 {
			select {
			case <-ctx.Done():
				return nil, stats, apperrors.InputWrap(ctx.Err(), "input loading canceled")
			default:
			}
		}
		stats.RowsRead++

		if cols.txnType >= 0 && !includeReturns && field(row, cols.txnType) != purchaseKind {
			stats.FilteredReturns++
			continue
		}

		address := field(row, cols.address)
		wilayah := region.Detect(address)
		if wilayah == region.Unknown {
			stats.DroppedUnknownRegion++
			l.dropLog.Do(func() {
				l.logger.Debug("dropping row with unknown region", "address", address)
			})
			continue
		}

		itemCode := field(row, cols.itemCode)
		if itemCode == "" {
			stats.DroppedNoItem++
			continue
		}

		rec := models.Record{
			TransactionID: field(row, cols.txnID),
			ItemCode:      itemCode,
			Description:   field(row, cols.description),
			StoreAddress:  address,
			Region:        wilayah,
			Quantity:      locale.NumberOr(field(row, cols.qty), 0),
		}
		if price, ok := locale.Number(field(row, cols.price)); ok {
			rec.UnitPrice = &price
		}
		if cols.value >= 0 {
			if value, ok := locale.Number(field(row, cols.value)); ok {
				rec.LineValue = &value
			}
		}

		records = append(records, rec)
		stats.Accepted++
	}

	l.logger.Info("input loaded",
		"path", path,
		"encoding", stats.Encoding,
		"rows_read", stats.RowsRead,
		"accepted", stats.Accepted,
		"filtered_returns", stats.FilteredReturns,
		"dropped_unknown_region", stats.DroppedUnknownRegion,
		"dropped_no_item", stats.DroppedNoItem,
	)

	return records, stats, nil
}

type columnIndexes struct {
	txnID       int
	address     int
	itemCode    int
	description int
	qty         int
	price       int
	value       int // -1 when absent: row value falls back to price x qty
	txnType     int // -1 when absent: no transaction-kind filtering
}

var requiredColumns = []struct {
	key    string
	assign func(*columnIndexes, int)
}{
	{"idtransaksi", func(c *columnIndexes, i int) { c.txnID = i }},
	{"lokasialamattoko", func(c *columnIndexes, i int) { c.address = i }},
	{"kodeitem", func(c *columnIndexes, i int) { c.itemCode = i }},
	{"deskripsi", func(c *columnIndexes, i int) { c.description = i }},
	{"qty", func(c *columnIndexes, i int) { c.qty = i }},
	{"harga", func(c *columnIndexes, i int) { c.price = i }},
}

// resolveColumns matches header names case- and whitespace-insensitively,
// with a tolerant substring fallback when no exact name is present (the
// source exports carry variants like " Nilai").
func resolveColumns(header []string) (columnIndexes, error) {
	normalized := make([]string, len(header))
	for i, name := range header {
		normalized[i] = normalizeColumn(name)
	}

	find := func(key string) int {
		for i, name := range normalized {
			if name == key {
				return i
			}
		}
		for i, name := range normalized {
			if strings.Contains(name, key) {
				return i
			}
		}
		return -1
	}

	cols := columnIndexes{value: -1, txnType: -1}
	for _, rc := range requiredColumns {
		idx := find(rc.key)
		if idx < 0 {
			return cols, apperrors.Config("required column \"" + rc.key + "\" not found in input header")
		}
		rc.assign(&cols, idx)
	}

	cols.value = find("nilai")
	cols.txnType = find("jenistransaksi")

	return cols, nil
}

func normalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
