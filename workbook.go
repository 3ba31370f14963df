package xlcalc

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Workbook is an in-memory, read-only snapshot of an xlsx file's cell values.
// It implements CellReader; sheets are addressed by their index in the
// workbook's sheet list.
type Workbook struct {
	file     *excelize.File
	names    []string
	index    map[string]int // upper-cased name → sheet index
	sheets   [][][]Value    // sheet → row → col
	date1904 bool
}

// NewWorkbook reads every sheet of f into memory.
func NewWorkbook(f *excelize.File) (*Workbook, error) {
	wb := &Workbook{file: f, index: make(map[string]int)}
	if err := wb.readAllCellData(); err != nil {
		return nil, fmt.Errorf("read workbook data: %w", err)
	}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		wb.date1904 = *props.Date1904
	}
	return wb, nil
}

// OpenWorkbook opens an xlsx file and reads it into memory.
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %q: %w", path, err)
	}
	return NewWorkbook(f)
}

// OpenWorkbookReader reads an xlsx stream into memory.
func OpenWorkbookReader(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return NewWorkbook(f)
}

// readAllCellData loads the cached value of every cell, typed by the cell's
// stored type.
func (wb *Workbook) readAllCellData() error {
	for i, sheet := range wb.file.GetSheetList() {
		rows, err := wb.file.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return fmt.Errorf("read rows from sheet %q: %w", sheet, err)
		}
		grid := make([][]Value, len(rows))
		for rowIdx, row := range rows {
			cells := make([]Value, len(row))
			for colIdx, raw := range row {
				cells[colIdx] = wb.typedValue(sheet, rowIdx, colIdx, raw)
			}
			grid[rowIdx] = cells
		}
		wb.names = append(wb.names, sheet)
		wb.index[strings.ToUpper(sheet)] = i
		wb.sheets = append(wb.sheets, grid)
	}
	return nil
}

func (wb *Workbook) typedValue(sheet string, row, col int, raw string) Value {
	if raw == "" {
		return Blank{}
	}
	cellName := CellRef{Row: row, Col: col}.CellName()
	cellType, err := wb.file.GetCellType(sheet, cellName)
	if err != nil {
		return Text(raw)
	}
	switch cellType {
	case excelize.CellTypeBool:
		return Boolean(raw == "1" || strings.EqualFold(raw, "TRUE"))
	case excelize.CellTypeError:
		if code, ok := ParseErrorLiteral(raw); ok {
			return NewError(code)
		}
		return NewError(ErrValue)
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return Text(raw)
	case excelize.CellTypeDate:
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return Number(timeToSerial(t, wb.date1904))
		}
		return Text(raw)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return Number(f)
	}
	return Text(raw)
}

// CellValue returns the value at an absolute position. Positions outside the
// stored data are Blank.
func (wb *Workbook) CellValue(sheet, row, col int) Value {
	if sheet < 0 || sheet >= len(wb.sheets) || row < 0 || col < 0 {
		return Blank{}
	}
	grid := wb.sheets[sheet]
	if row >= len(grid) || col >= len(grid[row]) {
		return Blank{}
	}
	return grid[row][col]
}

// SheetNames returns the sheet names in workbook order.
func (wb *Workbook) SheetNames() []string {
	return append([]string(nil), wb.names...)
}

// SheetIndex finds a sheet by name, ignoring letter case.
func (wb *Workbook) SheetIndex(name string) (int, bool) {
	i, ok := wb.index[strings.ToUpper(name)]
	return i, ok
}

// Date1904 reports whether the workbook uses the 1904 date system.
func (wb *Workbook) Date1904() bool { return wb.date1904 }

// usedRows is the number of stored rows on a sheet.
func (wb *Workbook) usedRows(sheet int) int {
	return len(wb.sheets[sheet])
}

// usedCols is the widest stored row on a sheet.
func (wb *Workbook) usedCols(sheet int) int {
	w := 0
	for _, row := range wb.sheets[sheet] {
		w = max(w, len(row))
	}
	return w
}

// Ref resolves reference text such as "B2", "F2:F17", "A:A" or
// "Sheet1:Sheet3!B2" into a Reference or Area. Unqualified text refers to
// currentSheet. Whole rows and columns are clipped to the used range.
func (wb *Workbook) Ref(text string, currentSheet int) (Value, error) {
	rr, err := ParseRangeRef(text)
	if err != nil {
		return nil, err
	}
	first, last := currentSheet, currentSheet
	if rr.FirstSheet != "" {
		var ok bool
		if first, ok = wb.SheetIndex(rr.FirstSheet); !ok {
			return nil, newEvalError(ErrRef, "unknown sheet %q", rr.FirstSheet)
		}
		if last, ok = wb.SheetIndex(rr.LastSheet); !ok {
			return nil, newEvalError(ErrRef, "unknown sheet %q", rr.LastSheet)
		}
		if last < first {
			first, last = last, first
		}
	}
	if first < 0 || first >= len(wb.sheets) {
		return nil, newEvalError(ErrRef, "sheet index %d out of range", first)
	}

	if rr.IsSingleCell() {
		return Reference{FirstSheet: first, LastSheet: last, Row: rr.First.Row, Col: rr.First.Col, Book: wb}, nil
	}
	r1, c1, r2, c2 := rr.First.Row, rr.First.Col, rr.Last.Row, rr.Last.Col
	switch {
	case rr.WholeCols:
		r1, r2 = 0, max(wb.usedRows(first), 1)-1
	case rr.WholeRows:
		c1, c2 = 0, max(wb.usedCols(first), 1)-1
	}
	area := NewArea(wb, first, r1, c1, r2, c2)
	area.LastSheet = last
	return area, nil
}

// Formula returns the formula text stored in a cell, without the leading
// "=", or "" when the cell holds a constant.
func (wb *Workbook) Formula(sheet int, row, col int) (string, error) {
	if sheet < 0 || sheet >= len(wb.names) {
		return "", fmt.Errorf("sheet index %d out of range", sheet)
	}
	f, err := wb.file.GetCellFormula(wb.names[sheet], CellRef{Row: row, Col: col}.CellName())
	if err != nil {
		return "", fmt.Errorf("read formula at %s: %w", NewCellRef(wb.names[sheet], row, col), err)
	}
	return strings.TrimPrefix(f, "="), nil
}

// Close releases the underlying file.
func (wb *Workbook) Close() error {
	return wb.file.Close()
}
