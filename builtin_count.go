package xlcalc

import "math"

var (
	// COUNTIF(range, criteria). The range is always counted whole; an
	// array-shaped criteria broadcasts.
	CountIfFunc = &Function{
		Name:         "COUNTIF",
		Arity:        Fixed(2),
		Frozen:       Args(0),
		RowSensitive: true,
		Eval:         evalCountIf,
	}

	// COUNTIFS(range1, criteria1, range2, criteria2, ...).
	CountIfsFunc = &Function{
		Name:  "COUNTIFS",
		Arity: AtLeast(2),
		Explicit: func(ctx *Context, args []Value) Value {
			if len(args)%2 != 0 {
				return NewError(ErrValue)
			}
			return Broadcast(ctx, args, EvenArgs, true, evalCountIfs)
		},
	}

	// COUNT counts numbers. Direct arguments may also be booleans or numeric
	// text; inside ranges only number cells count.
	CountFunc = aggregate("COUNT", func(ctx *Context, args []Value) Value {
		n := 0
		for _, a := range args {
			if IsArrayShaped(a) || isReference(a) {
				n += CountArg(a, PredicateFunc(isNumber))
				continue
			}
			switch a.(type) {
			case Blank, MissingArg, ErrorValue:
				continue
			}
			if _, err := ctx.locale.ToDouble(a); err == nil {
				n++
			}
		}
		return Number(n)
	})

	// COUNTA counts everything that is not blank.
	CountAFunc = aggregate("COUNTA", func(_ *Context, args []Value) Value {
		n := 0
		for _, a := range args {
			n += CountArg(a, PredicateFunc(func(v Value) bool {
				_, blank := v.(Blank)
				return !blank
			}))
		}
		return Number(n)
	})

	// COUNTBLANK(range) counts blank cells and empty text.
	CountBlankFunc = &Function{
		Name:   "COUNTBLANK",
		Arity:  Fixed(1),
		Frozen: AllArgs,
		Eval: func(_ *Context, args []Value) Value {
			switch args[0].(type) {
			case Area, Reference:
			default:
				return NewError(ErrValue)
			}
			return Number(CountArg(args[0], PredicateFunc(func(v Value) bool {
				switch x := v.(type) {
				case Blank:
					return true
				case Text:
					return x == ""
				}
				return false
			})))
		},
	}

	// SUM adds numbers. Errors anywhere propagate; text and booleans inside
	// ranges are skipped, direct arguments are coerced.
	SumFunc = aggregate("SUM", evalSum)
)

// aggregate builds a function that consumes array-shaped arguments whole.
func aggregate(name string, body ScalarFunc) *Function {
	return &Function{
		Name:     name,
		Arity:    AtLeast(1),
		Explicit: body,
	}
}

func evalCountIf(ctx *Context, args []Value) Value {
	m, err := BuildMatcher(args[1], ctx.Row, ctx.Col)
	if err != nil {
		return ErrorValueOf(err)
	}
	if m == nil {
		return Number(0)
	}
	return Number(CountArg(args[0], m))
}

func evalCountIfs(ctx *Context, args []Value) Value {
	n := len(args) / 2
	preds := make([]Predicate, n)
	for i := 0; i < n; i++ {
		m, err := BuildMatcher(args[2*i+1], ctx.Row, ctx.Col)
		if err != nil {
			return ErrorValueOf(err)
		}
		if m == nil {
			return Number(0)
		}
		preds[i] = m
	}

	switch first := args[0].(type) {
	case Area:
		areas := make([]Area, n)
		for i := 0; i < n; i++ {
			a, ok := args[2*i].(Area)
			if !ok || a.Height() != first.Height() || a.Width() != first.Width() {
				return NewError(ErrValue)
			}
			areas[i] = a
		}
		return Number(CountInArea(areas, preds))
	case Reference:
		refs := make([]Reference, n)
		for i := 0; i < n; i++ {
			r, ok := args[2*i].(Reference)
			if !ok {
				return NewError(ErrValue)
			}
			refs[i] = r
		}
		return Number(CountInReference(refs, preds))
	}
	if n == 1 {
		return Number(CountArg(args[0], preds[0]))
	}
	return NewError(ErrValue)
}

func evalSum(ctx *Context, args []Value) Value {
	total := 0.0
	for _, a := range args {
		switch x := a.(type) {
		case Area:
			for s := x.FirstSheet; s <= x.LastSheet; s++ {
				for r := 0; r < x.Height(); r++ {
					for c := 0; c < x.Width(); c++ {
						switch v := x.ValueAtSheet(s, r, c).(type) {
						case Number:
							total += float64(v)
						case ErrorValue:
							return v
						}
					}
				}
			}
		case Reference:
			for s := x.FirstSheet; s <= x.LastSheet; s++ {
				switch v := x.InnerValue(s).(type) {
				case Number:
					total += float64(v)
				case ErrorValue:
					return v
				}
			}
		case *Array:
			for i := 0; i < x.Len(); i++ {
				switch v := x.At(i).(type) {
				case Number:
					total += float64(v)
				case ErrorValue:
					return v
				}
			}
		default:
			f, err := ctx.locale.ToDouble(a)
			if err != nil {
				return ErrorValueOf(err)
			}
			total += f
		}
	}
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return NewError(ErrNum)
	}
	return Number(total)
}

func isNumber(v Value) bool {
	_, ok := v.(Number)
	return ok
}

func isReference(v Value) bool {
	_, ok := v.(Reference)
	return ok
}
