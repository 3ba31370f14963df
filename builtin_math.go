package xlcalc

import "math"

// MROUND(number, multiple) rounds to the nearest multiple. The multiple is
// never broadcast.
var MRoundFunc = &Function{
	Name:   "MROUND",
	Arity:  Fixed(2),
	Frozen: Args(1),
	Eval:   evalMRound,
}

func evalMRound(ctx *Context, args []Value) Value {
	number, err := ctx.Number(args[0])
	if err != nil {
		return ErrorValueOf(err)
	}
	multiple, err := ctx.Number(args[1])
	if err != nil {
		return ErrorValueOf(err)
	}
	if multiple == 0 {
		return Number(0)
	}
	if number*multiple < 0 {
		return NewError(ErrNum)
	}
	return checkedNumber(multiple * roundHalfUp(number/multiple))
}

// roundHalfUp rounds .5 toward positive infinity, as Excel's MROUND does.
func roundHalfUp(f float64) float64 {
	return math.Floor(f + 0.5)
}

// checkedNumber turns NaN and infinities into #NUM!.
func checkedNumber(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return NewError(ErrNum)
	}
	return Number(f)
}
