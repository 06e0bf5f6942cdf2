package pipeline

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"serverdb/internal"
	"serverdb/internal/util"
)

type serverColumns struct {
	model, ram, hdd, location, price int
}

func (c serverColumns) found() bool {
	return c.model >= 0 || c.ram >= 0 || c.hdd >= 0 || c.location >= 0 || c.price >= 0
}

// ReadServerRows loads every data row of sheet (the first sheet when empty)
// from the workbook at path.
func ReadServerRows(path, sheet string) ([]internal.ServerRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readServerRows(f, sheet)
}

func ParseServerRows(r io.Reader, sheet string) ([]internal.ServerRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readServerRows(f, sheet)
}

// The first non-empty row is the header. Every row after it is data, blank
// rows included, so the output has one entry per sheet line.
func readServerRows(f *excelize.File, sheet string) ([]internal.ServerRow, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet not found: %s", sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	headerAt := -1
	for i, row := range rows {
		if !isBlankRow(row) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return []internal.ServerRow{}, nil
	}

	cols := inferServerColumns(rows[headerAt])
	if !cols.found() {
		return nil, fmt.Errorf("sheet %q: header row %d has none of Model, RAM, HDD, Location, Price", sheet, headerAt+1)
	}

	out := make([]internal.ServerRow, 0, len(rows)-headerAt-1)
	for i := headerAt + 1; i < len(rows); i++ {
		cells := rows[i]
		out = append(out, internal.ServerRow{
			RowNumber: i + 1,
			Model:     cellAt(cells, cols.model),
			RAM:       cellAt(cells, cols.ram),
			HDD:       cellAt(cells, cols.hdd),
			Location:  cellAt(cells, cols.location),
			Price:     cellAt(cells, cols.price),
		})
	}
	return out, nil
}

func inferServerColumns(headers []string) serverColumns {
	norm := make([]string, 0, len(headers))
	for _, h := range headers {
		norm = append(norm, util.NormalizeHeader(h))
	}
	return serverColumns{
		model:    findHeaderIndex(norm, "model"),
		ram:      findHeaderIndex(norm, "ram"),
		hdd:      findHeaderIndex(norm, "hdd"),
		location: findHeaderIndex(norm, "location"),
		price:    findHeaderIndex(norm, "price"),
	}
}

func findHeaderIndex(headers []string, name string) int {
	for i, h := range headers {
		if h == name {
			return i
		}
	}
	return -1
}

// cellAt keeps the cell text verbatim; it feeds the raw audit columns.
func cellAt(cells []string, idx int) string {
	if idx >= 0 && idx < len(cells) {
		return cells[idx]
	}
	return ""
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if util.NormalizeSpaces(c) != "" {
			return false
		}
	}
	return true
}
