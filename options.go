package xlcalc

import "golang.org/x/text/language"

// Options holds configuration for the Evaluator.
type Options struct {
	locale        language.Tag
	date1904      bool
	listeners     []CallListener
	functions     []*Function
	exprFunctions []exprFunction
}

type exprFunction struct {
	name       string
	arity      Arity
	expression string
	frozen     []int
}

func defaultOptions() *Options {
	return &Options{locale: language.AmericanEnglish}
}

// Option configures the Evaluator.
type Option func(*Options)

// WithLocale sets the locale used when text is read as a number (default: en-US).
func WithLocale(tag language.Tag) Option {
	return func(o *Options) { o.locale = tag }
}

// WithDate1904 selects the 1904 date system for date serials. Workbooks
// passed to EvaluateFormula use their own setting.
func WithDate1904(enabled bool) Option {
	return func(o *Options) { o.date1904 = enabled }
}

// WithListener adds a listener that is notified before/after each function call.
func WithListener(listener CallListener) Option {
	return func(o *Options) { o.listeners = append(o.listeners, listener) }
}

// WithFunction registers a custom function, replacing a built-in of the same name.
func WithFunction(fn *Function) Option {
	return func(o *Options) { o.functions = append(o.functions, fn) }
}

// WithExprFunction registers a function whose body is an expr-lang
// expression over args, row and col. The listed argument positions are
// frozen.
func WithExprFunction(name string, arity Arity, expression string, frozen ...int) Option {
	return func(o *Options) {
		o.exprFunctions = append(o.exprFunctions, exprFunction{
			name: name, arity: arity, expression: expression, frozen: frozen,
		})
	}
}
