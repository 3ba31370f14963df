package xlcalc

import (
	"fmt"
	"strings"
)

// Evaluator invokes spreadsheet functions by name. It is immutable after
// construction and safe for concurrent use as long as its listeners are.
type Evaluator struct {
	opts     *Options
	locale   *Locale
	registry *Registry
}

// NewEvaluator creates an Evaluator with the built-in functions plus any
// registered through options.
func NewEvaluator(opts ...Option) (*Evaluator, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	reg := DefaultRegistry().clone()
	for _, fn := range o.functions {
		if fn == nil || normalizeName(fn.Name) == "" {
			return nil, fmt.Errorf("register function: missing name")
		}
		if fn.Eval == nil && fn.Explicit == nil {
			return nil, fmt.Errorf("register function %s: no body", fn.Name)
		}
		reg.Register(fn)
	}
	for _, ef := range o.exprFunctions {
		var frozen ArgSet
		if len(ef.frozen) > 0 {
			frozen = Args(ef.frozen...)
		}
		fn, err := NewExprFunction(ef.name, ef.arity, frozen, ef.expression)
		if err != nil {
			return nil, err
		}
		reg.Register(fn)
	}
	return &Evaluator{opts: o, locale: NewLocale(o.locale), registry: reg}, nil
}

// Registry returns the evaluator's function table.
func (e *Evaluator) Registry() *Registry { return e.registry }

// Locale returns the locale the evaluator coerces text with.
func (e *Evaluator) Locale() *Locale { return e.locale }

// NewContext creates a Context at (row, col) carrying the evaluator's
// settings. Later options override them.
func (e *Evaluator) NewContext(row, col int, opts ...ContextOption) *Context {
	base := []ContextOption{WithContextLocale(e.locale), WithContextDate1904(e.opts.date1904)}
	return NewContext(row, col, append(base, opts...)...)
}

// Call evaluates the named function for a formula at (row, col).
func (e *Evaluator) Call(name string, args []Value, row, col int) Value {
	return e.CallAt(e.NewContext(row, col), name, args)
}

// CallAt evaluates the named function at ctx. An unknown name is #NAME?.
func (e *Evaluator) CallAt(ctx *Context, name string, args []Value) Value {
	fn, ok := e.registry.Lookup(name)
	if !ok {
		return NewError(ErrName)
	}
	for _, l := range e.opts.listeners {
		l.BeforeCall(fn.Name, args, ctx)
	}
	result := Invoke(fn, ctx, args)
	for _, l := range e.opts.listeners {
		l.AfterCall(fn.Name, args, result, ctx)
	}
	return result
}

func normalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
