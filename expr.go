package xlcalc

import (
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// programCache holds compiled expr programs keyed by expression text, shared
// by every evaluator in the process.
var programCache sync.Map // expression string → *vm.Program

// exprEnv is the environment an expression body sees: args holds the
// resolved arguments (float64, string, bool or nil for blanks), row and col
// the 1-based position being computed.
func exprEnv(args []any, row, col int) map[string]any {
	return map[string]any{"args": args, "row": row, "col": col}
}

func compileExpr(expression string) (*vm.Program, error) {
	if cached, ok := programCache.Load(expression); ok {
		return cached.(*vm.Program), nil
	}
	program, err := expr.Compile(expression, expr.Env(exprEnv(nil, 0, 0)), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, err
	}
	programCache.Store(expression, program)
	return program, nil
}

// NewExprFunction builds a function whose scalar body is an expr-lang
// expression, e.g. `args[0] * 2 + row`. The function takes part in
// broadcasting like any built-in: frozen positions are passed through, the
// others arrive one element at a time. Any error argument short-circuits to
// that error.
func NewExprFunction(name string, arity Arity, frozen ArgSet, expression string) (*Function, error) {
	program, err := compileExpr(expression)
	if err != nil {
		return nil, fmt.Errorf("compile function %s %q: %w", name, expression, err)
	}
	return &Function{
		Name:         name,
		Arity:        arity,
		Frozen:       frozen,
		RowSensitive: true,
		Eval: func(ctx *Context, args []Value) Value {
			in := make([]any, len(args))
			for i, a := range args {
				v, err := ctx.Single(a)
				if err != nil {
					return ErrorValueOf(err)
				}
				switch x := v.(type) {
				case Number:
					in[i] = float64(x)
				case Text:
					in[i] = string(x)
				case Boolean:
					in[i] = bool(x)
				case Blank, MissingArg:
					in[i] = nil
				case ErrorValue:
					return x
				default:
					return NewError(ErrValue)
				}
			}
			out, err := expr.Run(program, exprEnv(in, ctx.Row+1, ctx.Col+1))
			if err != nil {
				return NewError(ErrValue)
			}
			return fromGo(out)
		},
	}, nil
}

// fromGo converts an expression result back into a Value.
func fromGo(v any) Value {
	switch x := v.(type) {
	case nil:
		return Blank{}
	case bool:
		return Boolean(x)
	case string:
		return Text(x)
	case float64:
		return checkedNumber(x)
	case float32:
		return checkedNumber(float64(x))
	case int:
		return Number(x)
	case int64:
		return Number(x)
	case int32:
		return Number(x)
	case uint:
		return Number(x)
	case uint64:
		return Number(x)
	}
	return NewError(ErrValue)
}
