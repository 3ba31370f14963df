package xlcalc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// CellRef represents a single cell reference in a workbook.
type CellRef struct {
	Sheet string // sheet name (empty = current sheet)
	Row   int    // 0-based row index
	Col   int    // 0-based column index
}

// NewCellRef creates a CellRef with explicit sheet, row, col.
func NewCellRef(sheet string, row, col int) CellRef {
	return CellRef{Sheet: sheet, Row: row, Col: col}
}

// ParseCellRef parses a cell reference string like "A1", "Sheet1!B5" or "$A$1".
func ParseCellRef(s string) (CellRef, error) {
	rawSheet, cellPart, err := splitSheet(s)
	if err != nil {
		return CellRef{}, err
	}
	sheet, _, isRange := sheetRange(rawSheet)
	if isRange {
		return CellRef{}, fmt.Errorf("invalid cell reference %q: sheet range", s)
	}
	col, row, err := excelize.CellNameToCoordinates(strings.ReplaceAll(cellPart, "$", ""))
	if err != nil {
		return CellRef{}, fmt.Errorf("invalid cell reference %q: %w", s, err)
	}
	return CellRef{Sheet: sheet, Row: row - 1, Col: col - 1}, nil
}

// splitSheet separates "Sheet!A1" into its raw (possibly quoted) sheet part
// and cell part.
func splitSheet(s string) (sheet, cell string, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", "", fmt.Errorf("empty cell reference")
	}
	idx := strings.LastIndex(s, "!")
	if idx < 0 {
		return "", s, nil
	}
	sheet = s[:idx]
	if sheet == "" || sheet == "''" {
		return "", "", fmt.Errorf("invalid cell reference %q: empty sheet name", s)
	}
	return sheet, s[idx+1:], nil
}

// sheetRange reads a raw sheet prefix: "Data", "'My Data'", "S1:S3",
// "'Q 1:Q 4'" or "'Q 1':'Q 4'". Sheet names cannot contain ':'.
func sheetRange(raw string) (first, last string, isRange bool) {
	if raw == "" {
		return "", "", false
	}
	if i := strings.Index(raw, "':'"); i > 0 && strings.HasPrefix(raw, "'") {
		return unquote(raw[:i+1]), unquote(raw[i+2:]), true
	}
	name := unquote(raw)
	if first, last, ok := strings.Cut(name, ":"); ok {
		return unquote(first), unquote(last), true
	}
	return name, name, false
}

// String formats the CellRef as "Sheet1!A1" or "A1" if no sheet.
func (c CellRef) String() string {
	name := c.CellName()
	if c.Sheet != "" {
		return quoteSheet(c.Sheet) + "!" + name
	}
	return name
}

// CellName returns just the cell part like "A1" without sheet name.
func (c CellRef) CellName() string {
	return ColToName(c.Col) + strconv.Itoa(c.Row+1)
}

func quoteSheet(name string) string {
	if strings.ContainsAny(name, " '!:-+()") {
		return "'" + strings.ReplaceAll(name, "'", "''") + "'"
	}
	return name
}

// ColToName converts a 0-based column index to a column name.
// 0→"A", 25→"Z", 26→"AA"
func ColToName(col int) string {
	name, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return "#REF"
	}
	return name
}

// NameToCol converts a column name to a 0-based column index.
// "A"→0, "Z"→25, "AA"→26
func NameToCol(name string) (int, error) {
	n, err := excelize.ColumnNameToNumber(name)
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}

// RangeRef is a parsed reference operand: one cell, a rectangle, or whole
// rows/columns, on one sheet or a range of sheets ("Sheet1:Sheet3!A1").
type RangeRef struct {
	FirstSheet string // empty = current sheet
	LastSheet  string
	First      CellRef
	Last       CellRef
	WholeCols  bool // "F:H": rows span the sheet's used range
	WholeRows  bool // "2:5": columns span the sheet's used range
}

// ParseRangeRef parses "A1", "A1:C5", "$F:$F", "2:2", "Sheet1!A1:B2" and
// "'Q1':'Q4'!B2".
func ParseRangeRef(s string) (RangeRef, error) {
	rawSheet, cellPart, err := splitSheet(s)
	if err != nil {
		return RangeRef{}, err
	}
	var r RangeRef
	r.FirstSheet, r.LastSheet, _ = sheetRange(rawSheet)
	cellPart = strings.ReplaceAll(cellPart, "$", "")
	from, to, isRange := strings.Cut(cellPart, ":")
	if !isRange {
		c, err := ParseCellRef(from)
		if err != nil {
			return RangeRef{}, fmt.Errorf("invalid range %q: %w", s, err)
		}
		c.Sheet = ""
		r.First, r.Last = c, c
		return r, nil
	}
	switch {
	case isAllLetters(from) && isAllLetters(to):
		c1, err1 := NameToCol(from)
		c2, err2 := NameToCol(to)
		if err1 != nil || err2 != nil {
			return RangeRef{}, fmt.Errorf("invalid column range %q", s)
		}
		r.First, r.Last, r.WholeCols = CellRef{Col: c1}, CellRef{Col: c2}, true
	case isAllDigits(from) && isAllDigits(to):
		r1, _ := strconv.Atoi(from)
		r2, _ := strconv.Atoi(to)
		if r1 < 1 || r2 < 1 {
			return RangeRef{}, fmt.Errorf("invalid row range %q", s)
		}
		r.First, r.Last, r.WholeRows = CellRef{Row: r1 - 1}, CellRef{Row: r2 - 1}, true
	default:
		first, err := ParseCellRef(from)
		if err != nil {
			return RangeRef{}, fmt.Errorf("invalid range %q: %w", s, err)
		}
		last, err := ParseCellRef(to)
		if err != nil {
			return RangeRef{}, fmt.Errorf("invalid range %q: %w", s, err)
		}
		r.First, r.Last = first, last
	}
	r.First.Sheet, r.Last.Sheet = "", ""
	return r, nil
}

// IsSingleCell reports whether the range names exactly one cell position.
func (r RangeRef) IsSingleCell() bool {
	return !r.WholeCols && !r.WholeRows && r.First == r.Last
}

func unquote(name string) string {
	if len(name) >= 2 && strings.HasPrefix(name, "'") && strings.HasSuffix(name, "'") {
		return strings.ReplaceAll(name[1:len(name)-1], "''", "'")
	}
	return name
}

func isAllLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, ch := range s {
		if (ch < 'A' || ch > 'Z') && (ch < 'a' || ch > 'z') {
			return false
		}
	}
	return true
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
