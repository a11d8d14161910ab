package loader

import (
	"fmt"
	"slices"

	"github.com/xuri/excelize/v2"
)

// readXLSX reads one sheet of a workbook; the first row is the header.
func readXLSX(path, sheet string) (table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return table{}, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if sheet == "" {
		if len(sheets) == 0 {
			return table{}, ErrNoHeader
		}
		sheet = sheets[0]
	} else if !slices.Contains(sheets, sheet) {
		return table{}, fmt.Errorf("sheet %q not found (have %v)", sheet, sheets)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return table{}, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return table{}, ErrNoHeader
	}

	t := table{header: normalizeHeader(rows[0])}
	for _, rec := range rows[1:] {
		cells := make([]any, len(rec))
		for i, c := range rec {
			cells[i] = c
		}
		t.records = append(t.records, cells)
	}
	return t, nil
}
