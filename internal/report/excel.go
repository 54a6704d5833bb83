package report

import (
	"io"

	"github.com/xuri/excelize/v2"

	"wilayah-analytics/internal/region"
	"wilayah-analytics/internal/services"
)

const (
	sheetClassification = "Klasifikasi_Item"
	sheetTopN           = "TopN_Per_Wilayah"
)

// workbook renders both result tables into a single XLSX file. Numeric
// columns stay numeric so the sheets sort and filter properly.
func workbook(result *services.Result) func(io.Writer) error {
	return func(w io.Writer) error {
		f := excelize.NewFile()
		defer f.Close()

		f.SetSheetName("Sheet1", sheetClassification)
		if err := writeClassificationSheet(f, result); err != nil {
			return err
		}

		if _, err := f.NewSheet(sheetTopN); err != nil {
			return err
		}
		if err := writeTopNSheet(f, result); err != nil {
			return err
		}

		return f.Write(w)
	}
}

func writeClassificationSheet(f *excelize.File, result *services.Result) error {
	headers := []string{
		"kodeitem", "deskripsi", "transaksi_count_total", "presence_count",
		"H_norm", "max_share", "wilayah_dominan", "LQ_max", "label",
	}
	for _, wilayah := range region.All() {
		headers = append(headers, wilayah.ColumnName())
	}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetClassification, cell, header); err != nil {
			return err
		}
		if err := f.SetColWidth(sheetClassification, cell[:len(cell)-1], cell[:len(cell)-1], 16); err != nil {
			return err
		}
	}

	for i, item := range result.Classified {
		values := []any{
			item.ItemCode, item.Description, item.Transactions, item.PresenceCount,
			item.EntropyNorm, item.MaxShare, item.DominantRegion, item.LQMax, string(item.Label),
		}
		for _, wilayah := range region.All() {
			values = append(values, item.RegionTransactions[wilayah])
		}
		if err := writeRow(f, sheetClassification, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writeTopNSheet(f *excelize.File, result *services.Result) error {
	headers := []string{
		"Wilayah", "Rank", "Kode Item", "Deskripsi",
		"Transaksi (unik)", "Qty Total", "Harga (first)", "Nilai Total",
	}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetTopN, cell, header); err != nil {
			return err
		}
		if err := f.SetColWidth(sheetTopN, cell[:len(cell)-1], cell[:len(cell)-1], 18); err != nil {
			return err
		}
	}

	for i, row := range result.Ranking {
		var price any
		if row.FirstUnitPrice != nil {
			price = *row.FirstUnitPrice
		}
		values := []any{
			string(row.Region), row.Rank, row.ItemCode, row.Description,
			row.Transactions, row.QtyTotal, price, row.ValueTotal,
		}
		if err := writeRow(f, sheetTopN, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}
