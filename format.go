package xlcalc

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatValue renders a value for logs and examples: numbers in shortest
// form, text quoted, references in A1 notation and arrays as {a;b;c}.
func FormatValue(v Value) string {
	switch x := v.(type) {
	case Number:
		return strconv.FormatFloat(float64(x), 'g', -1, 64)
	case Text:
		return strconv.Quote(string(x))
	case Boolean:
		if x {
			return "TRUE"
		}
		return "FALSE"
	case Blank:
		return "<blank>"
	case MissingArg:
		return "<missing>"
	case ErrorValue:
		return x.Code.String()
	case Reference:
		return sheetPrefix(x.Book, x.FirstSheet, x.LastSheet) + CellRef{Row: x.Row, Col: x.Col}.CellName()
	case Area:
		return sheetPrefix(x.Book, x.FirstSheet, x.LastSheet) +
			CellRef{Row: x.FirstRow, Col: x.FirstCol}.CellName() + ":" +
			CellRef{Row: x.LastRow, Col: x.LastCol}.CellName()
	case *Array:
		parts := make([]string, x.Len())
		for i := range parts {
			parts[i] = FormatValue(x.At(i))
		}
		return "{" + strings.Join(parts, ";") + "}"
	case nil:
		return "<nil>"
	}
	panic("xlcalc: unknown value type")
}

// sheetPrefix names the sheets when book is a Workbook ("Sheet1!" or
// "Sheet1:Sheet3!") and falls back to indices ("[0]!") otherwise.
func sheetPrefix(book CellReader, first, last int) string {
	if wb, ok := book.(*Workbook); ok && wb != nil && validSheet(wb, first) && validSheet(wb, last) {
		if first == last {
			return quoteSheet(wb.names[first]) + "!"
		}
		return quoteSheet(wb.names[first]) + ":" + quoteSheet(wb.names[last]) + "!"
	}
	if first == last {
		return fmt.Sprintf("[%d]!", first)
	}
	return fmt.Sprintf("[%d:%d]!", first, last)
}

func validSheet(wb *Workbook, i int) bool {
	return i >= 0 && i < len(wb.names)
}
