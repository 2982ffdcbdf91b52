package feed

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/couchcryptid/epi-surveillance-etl/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Table is one worksheet read as strings, with the first row as header.
type Table struct {
	Header  []string
	Rows    [][]string
	columns map[string]int
}

// ReadTable reads a worksheet with its first row as header. An empty sheet
// name selects the first sheet. Cells are read raw, so dates come back as
// Excel serial numbers; use CellDate to parse them.
func ReadTable(path, sheet string) (*Table, error) {
	rows, err := readRows(path, sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &Table{columns: map[string]int{}}, nil
	}
	return newTable(rows[0], rows[1:]), nil
}

func newTable(header []string, rows [][]string) *Table {
	t := &Table{Header: header, Rows: rows, columns: make(map[string]int, len(header))}
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, dup := t.columns[h]; !dup {
			t.columns[h] = i
		}
	}
	return t
}

func readRows(path, sheet string) ([][]string, error) {
	if err := statInput(path); err != nil {
		return nil, err
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %s: %w", sheet, path, err)
	}
	return rows, nil
}

// Has reports whether the header contains column.
func (t *Table) Has(column string) bool {
	_, ok := t.columns[column]
	return ok
}

// Require returns an error naming the first missing column.
func (t *Table) Require(columns ...string) error {
	for _, c := range columns {
		if !t.Has(c) {
			return fmt.Errorf("missing column %q", c)
		}
	}
	return nil
}

// Value returns the trimmed cell of row under column, or "" when the column
// or cell is absent.
func (t *Table) Value(row []string, column string) string {
	i, ok := t.columns[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// CellDate parses a raw workbook cell: an Excel serial number or any text
// format domain.ParseDate accepts.
func CellDate(s string) domain.Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.Date{}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial <= 0 {
			return domain.Date{}
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return domain.Date{}
		}
		return domain.DateOf(t)
	}
	return domain.ParseDate(s)
}

// writeWorkbook writes header and rows to a single-sheet workbook.
func writeWorkbook(path, sheet string, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(max(len(header), 1), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("set header style: %w", err)
	}

	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}
