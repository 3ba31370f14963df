package xlcalc

var (
	// IF(condition, then, [else]). A false condition with no else argument is
	// FALSE; an omitted then or else argument (IF(c,,x)) is blank.
	IfFunc = &Function{
		Name:         "IF",
		Arity:        Optional(2),
		RowSensitive: true,
		Eval:         evalIf,
	}

	// IFERROR(value, value_if_error).
	IfErrorFunc = &Function{
		Name:  "IFERROR",
		Arity: Fixed(2),
		Eval:  evalIfError,
	}

	IsNumberFunc  = typeTest("ISNUMBER", func(v Value) bool { _, ok := v.(Number); return ok })
	IsTextFunc    = typeTest("ISTEXT", func(v Value) bool { _, ok := v.(Text); return ok })
	IsNonTextFunc = typeTest("ISNONTEXT", func(v Value) bool { _, ok := v.(Text); return !ok })
	IsLogicalFunc = typeTest("ISLOGICAL", func(v Value) bool { _, ok := v.(Boolean); return ok })
	IsBlankFunc   = typeTest("ISBLANK", func(v Value) bool { _, ok := v.(Blank); return ok })
	IsErrorFunc   = typeTest("ISERROR", func(v Value) bool { _, ok := v.(ErrorValue); return ok })
	IsErrFunc     = typeTest("ISERR", func(v Value) bool {
		e, ok := v.(ErrorValue)
		return ok && e.Code != ErrNA
	})
	IsNAFunc = typeTest("ISNA", func(v Value) bool {
		e, ok := v.(ErrorValue)
		return ok && e.Code == ErrNA
	})

	// ISREF tests the argument itself, so it is never broadcast.
	IsRefFunc = &Function{
		Name:   "ISREF",
		Arity:  Fixed(1),
		Frozen: Args(0),
		Eval: func(_ *Context, args []Value) Value {
			switch args[0].(type) {
			case Reference, Area:
				return True
			}
			return False
		},
	}
)

func evalIf(ctx *Context, args []Value) Value {
	cond, err := ifCondition(ctx, args[0])
	if err != nil {
		return ErrorValueOf(err)
	}
	if cond {
		return blankIfMissing(args[1])
	}
	if len(args) == 2 {
		return False
	}
	return blankIfMissing(args[2])
}

// ifCondition reads IF's first argument. Text that is not TRUE/FALSE and
// blanks count as false.
func ifCondition(ctx *Context, arg Value) (bool, error) {
	v, err := ctx.Single(arg)
	if err != nil {
		return false, err
	}
	b, ok, err := CoerceToBoolean(v, false)
	if err != nil || !ok {
		return false, err
	}
	return b, nil
}

func evalIfError(ctx *Context, args []Value) Value {
	v, err := ctx.Single(args[0])
	if err == nil {
		if _, isErr := v.(ErrorValue); !isErr {
			return blankIfMissing(v)
		}
	}
	fallback, err := ctx.Single(args[1])
	if err != nil {
		return ErrorValueOf(err)
	}
	return blankIfMissing(fallback)
}

// typeTest builds an IS* function. Resolving the argument never fails the
// call: a resolution error becomes the value under test.
func typeTest(name string, test func(Value) bool) *Function {
	return &Function{
		Name:  name,
		Arity: Fixed(1),
		Eval: func(ctx *Context, args []Value) Value {
			v, err := ctx.Single(args[0])
			if err != nil {
				v = ErrorValueOf(err)
			}
			if _, ok := v.(MissingArg); ok {
				v = Blank{}
			}
			return Boolean(test(v))
		},
	}
}

func blankIfMissing(v Value) Value {
	if _, ok := v.(MissingArg); ok {
		return Blank{}
	}
	return v
}
