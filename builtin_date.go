package xlcalc

import (
	"math"
	"time"

	"github.com/xuri/excelize/v2"
)

// EDATE(start_date, months) shifts a date serial by whole months, clamping
// the day to the end of a shorter month.
var EDateFunc = &Function{
	Name:  "EDATE",
	Arity: Fixed(2),
	Eval:  evalEDate,
}

func evalEDate(ctx *Context, args []Value) Value {
	start, err := dateArg(args[0])
	if err != nil {
		return ErrorValueOf(err)
	}
	monthArg, err := dateArg(args[1])
	if err != nil {
		return ErrorValueOf(err)
	}
	months, err := ctx.locale.ToInt(Number(monthArg))
	if err != nil || !validSerial(start) {
		return NewError(ErrNum)
	}
	t, err := excelize.ExcelDateToTime(start, ctx.Date1904())
	if err != nil {
		return NewError(ErrNum)
	}
	serial := timeToSerial(addMonths(t, months), ctx.Date1904())
	if !validSerial(serial) {
		return NewError(ErrNum)
	}
	return Number(serial)
}

// maxSerial is 9999-12-31 in the 1900 date system.
const maxSerial = 2958465

func validSerial(f float64) bool {
	return f >= 0 && f < maxSerial+1
}

// dateArg accepts a number, a blank (0), or a single-sheet reference to one
// of those. Text is not read as a date.
func dateArg(v Value) (float64, error) {
	switch x := v.(type) {
	case Number:
		return float64(x), nil
	case Blank:
		return 0, nil
	case Reference:
		if x.NumberOfSheets() > 1 {
			return 0, newEvalError(ErrValue, "multi-sheet reference")
		}
		switch inner := x.InnerValue(x.FirstSheet).(type) {
		case Number:
			return float64(inner), nil
		case Blank:
			return 0, nil
		case ErrorValue:
			return 0, errorOf(inner)
		}
	case ErrorValue:
		return 0, errorOf(x)
	}
	return 0, newEvalError(ErrValue, "%s is not a date", v.Kind())
}

func addMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	h, mi, s := t.Clock()
	return time.Date(first.Year(), first.Month(), d, h, mi, s, t.Nanosecond(), time.UTC)
}

var (
	epoch1900 = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	epoch1904 = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// timeToSerial is the inverse of excelize.ExcelDateToTime. In the 1900
// system serials below 61 skip the phantom 1900-02-29.
func timeToSerial(t time.Time, date1904 bool) float64 {
	y, m, d := t.Date()
	h, mi, s := t.Clock()
	t = time.Date(y, m, d, h, mi, s, t.Nanosecond(), time.UTC)
	epoch := epoch1900
	if date1904 {
		epoch = epoch1904
	}
	days := float64(t.Unix()-epoch.Unix())/86400 + float64(t.Nanosecond())/86400e9
	if !date1904 && days < 61 {
		days--
	}
	return math.Round(days*86400e3) / 86400e3
}
