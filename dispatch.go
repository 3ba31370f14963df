package xlcalc

// Invoke calls fn for a formula positioned at ctx. A wrong argument count is
// #VALUE! before anything is evaluated. Functions with an explicit array path
// get the raw arguments; all others go through Broadcast.
func Invoke(fn *Function, ctx *Context, args []Value) Value {
	if !fn.Arity.Accepts(len(args)) {
		return NewError(ErrValue)
	}
	if fn.Explicit != nil {
		return fn.Explicit(ctx, args)
	}
	return Broadcast(ctx, args, fn.Frozen, fn.RowSensitive, fn.Eval)
}

// Broadcast lifts a scalar body over array-shaped arguments. When no
// non-frozen argument is an Area or Array the body runs once and its result is
// returned as is. Otherwise the body runs once per element and the results
// form an Array anchored at the first row of the first area argument, frozen
// or not (0 when no argument is an area).
//
// All non-frozen array-shaped arguments must have the same length; a call
// mixing lengths is #VALUE!.
func Broadcast(ctx *Context, args []Value, frozen ArgSet, rowSensitive bool, eval ScalarFunc) Value {
	views := make([]arrayView, len(args))
	length := -1
	for i, a := range args {
		if frozen.Contains(i) {
			continue
		}
		v := viewOf(a, ctx.Col)
		if v == nil {
			continue
		}
		if length < 0 {
			length = v.length()
		} else if v.length() != length {
			return NewError(ErrValue)
		}
		views[i] = v
	}
	if length < 0 {
		return eval(ctx, args)
	}
	firstRow := anchorRow(args)

	results := make([]Value, length)
	for i := 0; i < length; i++ {
		elemArgs := make([]Value, len(args))
		for j, a := range args {
			if views[j] != nil {
				elemArgs[j] = views[j].at(i)
			} else {
				elemArgs[j] = a
			}
		}
		row := firstRow + i
		ec := ctx
		if rowSensitive {
			ec = ctx.atRow(row)
		}
		results[i] = elementResult(eval(ec, elemArgs), row, ctx.Col)
	}
	return NewArray(results, firstRow)
}

// anchorRow is the first row of the first area among args.
func anchorRow(args []Value) int {
	for _, a := range args {
		if area, ok := a.(Area); ok {
			return area.FirstRow
		}
	}
	return 0
}

// elementResult keeps an array element scalar: a body that hands back a
// reference, area or array contributes the value at the element's row.
func elementResult(v Value, row, col int) Value {
	switch v.(type) {
	case Reference, Area, *Array:
		sv, err := SingleValue(v, row, col)
		if err != nil {
			return ErrorValueOf(err)
		}
		if _, ok := sv.(MissingArg); ok {
			return Blank{}
		}
		return sv
	case MissingArg:
		return Blank{}
	}
	return v
}

// IsArrayShaped reports whether v would be exploded by Broadcast.
func IsArrayShaped(v Value) bool {
	switch v.(type) {
	case Area, *Array:
		return true
	}
	return false
}

// arrayView is a one-dimensional, 0-based read view of an array-shaped
// argument.
type arrayView interface {
	length() int
	at(i int) Value
}

func viewOf(v Value, col int) arrayView {
	switch x := v.(type) {
	case Area:
		return areaView{area: x, col: col}
	case *Array:
		return x
	}
	return nil
}

func (a *Array) length() int    { return a.Len() }
func (a *Array) at(i int) Value { return a.At(i) }

// areaView walks an area row by row on its first sheet. A multi-column area
// contributes, for each row, the cell in the formula's column.
type areaView struct {
	area Area
	col  int
}

func (v areaView) length() int { return v.area.Height() }

func (v areaView) at(i int) Value {
	a := v.area
	switch {
	case a.Width() == 1:
		return a.ValueAt(i, 0)
	case a.ContainsColumn(v.col):
		return a.ValueAt(i, v.col-a.FirstCol)
	}
	return NewError(ErrValue)
}
