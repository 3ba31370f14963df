package xlcalc

var (
	// CHOOSE(index, value1, ...). Only the index is broadcast; each element
	// picks its value at the element's own row.
	ChooseFunc = &Function{
		Name:  "CHOOSE",
		Arity: AtLeast(2),
		Explicit: func(ctx *Context, args []Value) Value {
			return Broadcast(ctx, args, AllArgsExcept(0), true, evalChoose)
		},
	}

	// ROW([reference]). Without an argument it is the formula's own row.
	RowFunc = &Function{
		Name:         "ROW",
		Arity:        Optional(0),
		Frozen:       Args(0),
		RowSensitive: true,
		Eval: func(ctx *Context, args []Value) Value {
			if len(args) == 0 {
				return Number(ctx.Row + 1)
			}
			switch x := args[0].(type) {
			case Area:
				return Number(x.FirstRow + 1)
			case Reference:
				return Number(x.Row + 1)
			}
			return NewError(ErrValue)
		},
	}

	// COLUMN([reference]).
	ColumnFunc = &Function{
		Name:   "COLUMN",
		Arity:  Optional(0),
		Frozen: Args(0),
		Eval: func(ctx *Context, args []Value) Value {
			if len(args) == 0 {
				return Number(ctx.Col + 1)
			}
			switch x := args[0].(type) {
			case Area:
				return Number(x.FirstCol + 1)
			case Reference:
				return Number(x.Col + 1)
			}
			return NewError(ErrValue)
		},
	}
)

func evalChoose(ctx *Context, args []Value) Value {
	ix, err := ctx.Int(args[0])
	if err != nil {
		return ErrorValueOf(err)
	}
	if ix < 1 || ix >= len(args) {
		return NewError(ErrValue)
	}
	v, err := ctx.Single(args[ix])
	if err != nil {
		return ErrorValueOf(err)
	}
	return blankIfMissing(v)
}
