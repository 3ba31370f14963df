package xlcalc

// Kind identifies the variant of a Value.
type Kind int

const (
	KindNumber Kind = iota
	KindText
	KindBoolean
	KindBlank
	KindMissing
	KindError
	KindReference
	KindArea
	KindArray
)

// String returns a human-readable name for the Kind.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "Number"
	case KindText:
		return "Text"
	case KindBoolean:
		return "Boolean"
	case KindBlank:
		return "Blank"
	case KindMissing:
		return "MissingArgument"
	case KindError:
		return "Error"
	case KindReference:
		return "Reference"
	case KindArea:
		return "Area"
	case KindArray:
		return "Array"
	default:
		return "Unknown"
	}
}

// Value is anything a formula argument or result can be. The set of
// implementations is closed: Number, Text, Boolean, Blank, MissingArg,
// ErrorValue, Reference, Area and *Array.
type Value interface {
	Kind() Kind
	value()
}

// Number is a numeric value. Dates are numbers (serial days).
type Number float64

// Text is a string value.
type Text string

// Boolean is TRUE or FALSE.
type Boolean bool

// Blank is an empty cell.
type Blank struct{}

// MissingArg is an omitted call argument, as in IF(A1,,2).
type MissingArg struct{}

// ErrorValue is an error held as data, e.g. #DIV/0!.
type ErrorValue struct {
	Code ErrorCode
}

const (
	True  = Boolean(true)
	False = Boolean(false)
)

func (Number) Kind() Kind     { return KindNumber }
func (Text) Kind() Kind       { return KindText }
func (Boolean) Kind() Kind    { return KindBoolean }
func (Blank) Kind() Kind      { return KindBlank }
func (MissingArg) Kind() Kind { return KindMissing }
func (ErrorValue) Kind() Kind { return KindError }
func (Reference) Kind() Kind  { return KindReference }
func (Area) Kind() Kind       { return KindArea }
func (*Array) Kind() Kind     { return KindArray }

func (Number) value()     {}
func (Text) value()       {}
func (Boolean) value()    {}
func (Blank) value()      {}
func (MissingArg) value() {}
func (ErrorValue) value() {}
func (Reference) value()  {}
func (Area) value()       {}
func (*Array) value()     {}

// NewError returns the error value for code.
func NewError(code ErrorCode) ErrorValue {
	return ErrorValue{Code: code}
}

// CellReader is the read-only view of workbook cells that references and
// areas are resolved through. Coordinates are absolute and 0-based.
// CellValue returns only Number, Text, Boolean, Blank or ErrorValue.
type CellReader interface {
	CellValue(sheet, row, col int) Value
}

// Reference points at one cell position, possibly on several consecutive
// sheets (Sheet1:Sheet3!B2).
type Reference struct {
	FirstSheet int
	LastSheet  int
	Row        int
	Col        int
	Book       CellReader
}

// NewReference returns a single-sheet reference.
func NewReference(book CellReader, sheet, row, col int) Reference {
	return Reference{FirstSheet: sheet, LastSheet: sheet, Row: row, Col: col, Book: book}
}

// NumberOfSheets returns how many sheets the reference spans.
func (r Reference) NumberOfSheets() int {
	return r.LastSheet - r.FirstSheet + 1
}

// InnerValue returns the cell value on the given sheet. It is never an
// array-shaped value.
func (r Reference) InnerValue(sheet int) Value {
	return scalarCell(r.Book.CellValue(sheet, r.Row, r.Col))
}

// Area is a rectangular block of cells. A 2-D area has FirstSheet ==
// LastSheet; a 3-D area spans a contiguous range of sheets.
type Area struct {
	FirstSheet int
	LastSheet  int
	FirstRow   int
	FirstCol   int
	LastRow    int
	LastCol    int
	Book       CellReader
}

// NewArea returns a single-sheet area. Corners may be given in any order.
func NewArea(book CellReader, sheet, firstRow, firstCol, lastRow, lastCol int) Area {
	if lastRow < firstRow {
		firstRow, lastRow = lastRow, firstRow
	}
	if lastCol < firstCol {
		firstCol, lastCol = lastCol, firstCol
	}
	return Area{
		FirstSheet: sheet, LastSheet: sheet,
		FirstRow: firstRow, FirstCol: firstCol,
		LastRow: lastRow, LastCol: lastCol,
		Book: book,
	}
}

func (a Area) Height() int { return a.LastRow - a.FirstRow + 1 }
func (a Area) Width() int  { return a.LastCol - a.FirstCol + 1 }

// Is3D reports whether the area spans more than one sheet.
func (a Area) Is3D() bool { return a.LastSheet != a.FirstSheet }

// ContainsRow reports whether the absolute row lies within the area.
func (a Area) ContainsRow(row int) bool { return row >= a.FirstRow && row <= a.LastRow }

// ContainsColumn reports whether the absolute column lies within the area.
func (a Area) ContainsColumn(col int) bool { return col >= a.FirstCol && col <= a.LastCol }

// ValueAt returns the value at a position relative to the top-left corner,
// on the first sheet.
func (a Area) ValueAt(row, col int) Value {
	return a.ValueAtSheet(a.FirstSheet, row, col)
}

// ValueAtSheet returns the value at a relative position on an absolute sheet.
func (a Area) ValueAtSheet(sheet, row, col int) Value {
	return scalarCell(a.Book.CellValue(sheet, a.FirstRow+row, a.FirstCol+col))
}

// Array is a materialized one-dimensional result of broadcasting, anchored
// at the sheet row it logically starts at. Arrays are immutable and never
// nest.
type Array struct {
	values   []Value
	firstRow int
}

// NewArray builds an array anchored at firstRow. It panics when values is
// empty or contains an array.
func NewArray(values []Value, firstRow int) *Array {
	if len(values) == 0 {
		panic("xlcalc: empty array")
	}
	for _, v := range values {
		if _, ok := v.(*Array); ok {
			panic("xlcalc: nested array")
		}
	}
	cp := make([]Value, len(values))
	copy(cp, values)
	return &Array{values: cp, firstRow: firstRow}
}

func (a *Array) Len() int       { return len(a.values) }
func (a *Array) FirstRow() int  { return a.firstRow }
func (a *Array) LastRow() int   { return a.firstRow + len(a.values) - 1 }
func (a *Array) At(i int) Value { return a.values[i] }

// Offset returns the element anchored at an absolute sheet row.
func (a *Array) Offset(row int) (Value, bool) {
	i := row - a.firstRow
	if i < 0 || i >= len(a.values) {
		return nil, false
	}
	return a.values[i], true
}

// Values returns a copy of the elements.
func (a *Array) Values() []Value {
	cp := make([]Value, len(a.values))
	copy(cp, a.values)
	return cp
}

// scalarCell guards the CellReader contract: cells hold scalars only.
func scalarCell(v Value) Value {
	switch v.(type) {
	case Number, Text, Boolean, Blank, ErrorValue:
		return v
	case nil:
		return Blank{}
	case MissingArg, Reference, Area, *Array:
		return ErrorValue{Code: ErrValue}
	}
	panic("xlcalc: unknown value type")
}
