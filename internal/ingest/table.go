package ingest

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	apperrors "wilayah-analytics/internal/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readTable loads the whole input into rows of cells. CSV bytes go through
// the encoding fallback chain UTF-8, UTF-8 with BOM, Latin-1; .xlsx files
// are read from their first sheet.
func readTable(path string, data []byte) ([][]string, string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err := readWorkbook(path)
		return rows, "xlsx", err
	default:
		return readCSV(data)
	}
}

func readCSV(data []byte) ([][]string, string, error) {
	text, encoding := decode(data)

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1 // header mapping tolerates ragged rows

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, encoding, apperrors.InputWrap(err, "cannot parse input as CSV")
	}
	return rows, encoding, nil
}

// decode never fails: Latin-1 accepts any byte sequence, mirroring the
// utf-8 / utf-8-sig / latin-1 fallback chain of the source tooling.
func decode(data []byte) (string, string) {
	if bytes.HasPrefix(data, utf8BOM) {
		return string(bytes.TrimPrefix(data, utf8BOM)), "utf-8-sig"
	}
	if utf8.Valid(data) {
		return string(data), "utf-8"
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		// Unreachable in practice; keep the raw bytes rather than abort.
		return string(data), "latin-1"
	}
	return string(decoded), "latin-1"
}

func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.InputWrap(err, "cannot open workbook")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, apperrors.Input("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.InputWrap(err, "cannot read workbook sheet "+sheet)
	}
	return rows, nil
}
