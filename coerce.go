package xlcalc

import (
	"math"
	"strconv"
	"strings"
)

// SingleValue resolves an operand to one scalar value for a formula at
// (row, col). A reference yields its cell; an area yields the cell in the
// formula's row or column (implicit intersection); an array yields the
// element anchored at the formula's row. Everything else, MissingArg
// included, is returned unchanged.
func SingleValue(v Value, row, col int) (Value, error) {
	switch x := v.(type) {
	case Reference:
		if x.NumberOfSheets() > 1 {
			return nil, newEvalError(ErrValue, "reference spans %d sheets", x.NumberOfSheets())
		}
		return x.InnerValue(x.FirstSheet), nil
	case Area:
		return intersect(x, row, col)
	case *Array:
		if e, ok := x.Offset(row); ok {
			return e, nil
		}
		if x.Len() == 1 {
			return x.At(0), nil
		}
		return nil, newEvalError(ErrValue, "row %d outside array rows %d..%d", row, x.FirstRow(), x.LastRow())
	case Number, Text, Boolean, Blank, MissingArg, ErrorValue:
		return v, nil
	}
	panic("xlcalc: unknown value type")
}

func intersect(a Area, row, col int) (Value, error) {
	if a.Is3D() {
		return nil, newEvalError(ErrValue, "area spans %d sheets", a.LastSheet-a.FirstSheet+1)
	}
	isColumn := a.Width() == 1
	isRow := a.Height() == 1
	switch {
	case isColumn && isRow:
		return a.ValueAt(0, 0), nil
	case isColumn:
		if !a.ContainsRow(row) {
			return nil, newEvalError(ErrValue, "row %d outside area rows %d..%d", row, a.FirstRow, a.LastRow)
		}
		return a.ValueAt(row-a.FirstRow, 0), nil
	case isRow:
		if !a.ContainsColumn(col) {
			return nil, newEvalError(ErrValue, "column %d outside area columns %d..%d", col, a.FirstCol, a.LastCol)
		}
		return a.ValueAt(0, col-a.FirstCol), nil
	}
	if a.ContainsRow(row) && a.ContainsColumn(col) {
		return a.ValueAt(row-a.FirstRow, col-a.FirstCol), nil
	}
	return nil, newEvalError(ErrValue, "cell (%d,%d) outside area", row, col)
}

// CoerceToDouble converts a scalar to a number using the English locale.
func CoerceToDouble(v Value) (float64, error) {
	return English.ToDouble(v)
}

// CoerceToInt converts a scalar to an integer using the English locale.
func CoerceToInt(v Value) (int, error) {
	return English.ToInt(v)
}

// ToDouble converts a scalar to a number: blanks are 0, booleans 1/0, text is
// parsed in this locale and errors propagate their code.
func (l *Locale) ToDouble(v Value) (float64, error) {
	switch x := v.(type) {
	case Number:
		return float64(x), nil
	case Blank, MissingArg:
		return 0, nil
	case Boolean:
		if x {
			return 1, nil
		}
		return 0, nil
	case Text:
		f, ok := l.ParseNumber(string(x))
		if !ok {
			return 0, newEvalError(ErrValue, "text %q is not a number", string(x))
		}
		return f, nil
	case ErrorValue:
		return 0, errorOf(x)
	case Reference, Area, *Array:
		return 0, newEvalError(ErrValue, "%s operand must be resolved first", v.Kind())
	}
	panic("xlcalc: unknown value type")
}

// ToInt is ToDouble truncated toward zero. Values outside the 32-bit range
// Excel uses for integer arguments fail with #VALUE!.
func (l *Locale) ToInt(v Value) (int, error) {
	f, err := l.ToDouble(v)
	if err != nil {
		return 0, err
	}
	t := math.Trunc(f)
	if math.IsNaN(t) || t > math.MaxInt32 || t < math.MinInt32 {
		return 0, newEvalError(ErrValue, "%v does not fit an integer", f)
	}
	return int(t), nil
}

// ToText converts a scalar to its text form; numbers are written in this
// locale.
func (l *Locale) ToText(v Value) (string, error) {
	switch x := v.(type) {
	case Text:
		return string(x), nil
	case Number:
		return l.FormatNumber(float64(x)), nil
	case Boolean:
		if x {
			return "TRUE", nil
		}
		return "FALSE", nil
	case Blank, MissingArg:
		return "", nil
	case ErrorValue:
		return "", errorOf(x)
	case Reference, Area, *Array:
		return "", newEvalError(ErrValue, "%s operand must be resolved first", v.Kind())
	}
	panic("xlcalc: unknown value type")
}

// CoerceToBoolean converts a scalar to a boolean. ok is false when the value
// has no boolean reading (text other than TRUE/FALSE). Blank and MissingArg
// yield blankDefault; an error value propagates its code.
func CoerceToBoolean(v Value, blankDefault bool) (b bool, ok bool, err error) {
	switch x := v.(type) {
	case Boolean:
		return bool(x), true, nil
	case Number:
		if math.IsNaN(float64(x)) {
			return false, false, newEvalError(ErrValue, "NaN has no boolean value")
		}
		return x != 0, true, nil
	case Text:
		b, ok := ParseBoolean(string(x))
		return b, ok, nil
	case Blank, MissingArg:
		return blankDefault, true, nil
	case ErrorValue:
		return false, false, errorOf(x)
	case Reference, Area, *Array:
		return false, false, newEvalError(ErrValue, "%s operand must be resolved first", v.Kind())
	}
	panic("xlcalc: unknown value type")
}

// ParseDouble is the strict literal parser used by criteria: surrounding
// spaces are allowed, grouping and locale separators are not. It reports
// false instead of failing so callers can try another interpretation.
func ParseDouble(text string) (float64, bool) {
	s := strings.TrimSpace(text)
	if !fpLiteral.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseBoolean recognises TRUE and FALSE in any letter case.
func ParseBoolean(text string) (bool, bool) {
	switch {
	case strings.EqualFold(text, "TRUE"):
		return true, true
	case strings.EqualFold(text, "FALSE"):
		return false, true
	}
	return false, false
}
