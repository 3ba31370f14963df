package xlcalc

import "fmt"

// ScalarFunc is a scalar-shaped function body: it receives already-resolved
// arguments for one position and returns one value. Failures are returned as
// ErrorValue results, never as Go errors.
type ScalarFunc func(ctx *Context, args []Value) Value

// Arity is the accepted argument count range. Max < 0 means unbounded.
type Arity struct {
	Min int
	Max int
}

// Fixed accepts exactly n arguments.
func Fixed(n int) Arity { return Arity{Min: n, Max: n} }

// Optional accepts n or n+1 arguments.
func Optional(n int) Arity { return Arity{Min: n, Max: n + 1} }

// AtLeast accepts n or more arguments.
func AtLeast(n int) Arity { return Arity{Min: n, Max: -1} }

// Accepts reports whether n arguments are allowed.
func (a Arity) Accepts(n int) bool {
	return n >= a.Min && (a.Max < 0 || n <= a.Max)
}

func (a Arity) String() string {
	switch {
	case a.Max < 0:
		return fmt.Sprintf("%d+", a.Min)
	case a.Min == a.Max:
		return fmt.Sprintf("%d", a.Min)
	}
	return fmt.Sprintf("%d..%d", a.Min, a.Max)
}

// ArgSet selects argument positions. A nil ArgSet selects nothing.
type ArgSet func(i int) bool

// Contains reports whether position i is selected.
func (s ArgSet) Contains(i int) bool { return s != nil && s(i) }

// Args selects the listed positions.
func Args(idx ...int) ArgSet {
	return func(i int) bool {
		for _, j := range idx {
			if i == j {
				return true
			}
		}
		return false
	}
}

// AllArgs selects every position.
func AllArgs(int) bool { return true }

// AllArgsExcept selects every position but the listed ones.
func AllArgsExcept(idx ...int) ArgSet {
	in := Args(idx...)
	return func(i int) bool { return !in(i) }
}

// EvenArgs selects positions 0, 2, 4, ...
func EvenArgs(i int) bool { return i%2 == 0 }

// Function is the declared metadata of a spreadsheet function plus its body.
type Function struct {
	Name  string
	Arity Arity

	// Frozen positions are never exploded into arrays; they reach every
	// element-wise call unchanged.
	Frozen ArgSet

	// RowSensitive functions see the row of the element being computed
	// (first_row + i) instead of the formula's row when broadcast.
	RowSensitive bool

	// Eval is the scalar body used by the generic dispatcher.
	Eval ScalarFunc

	// Explicit, when set, replaces generic dispatch entirely: the function
	// handles array-shaped arguments itself.
	Explicit ScalarFunc
}

// Registry maps upper-case function names to functions. It is read-only once
// built and may be shared by concurrent evaluations.
type Registry struct {
	funcs map[string]*Function
}

// NewRegistry returns a registry holding fns.
func NewRegistry(fns ...*Function) *Registry {
	r := &Registry{funcs: make(map[string]*Function, len(fns))}
	for _, fn := range fns {
		r.Register(fn)
	}
	return r
}

// Register adds or replaces a function.
func (r *Registry) Register(fn *Function) {
	r.funcs[normalizeName(fn.Name)] = fn
}

// Lookup finds a function by name, ignoring letter case.
func (r *Registry) Lookup(name string) (*Function, bool) {
	fn, ok := r.funcs[normalizeName(name)]
	return fn, ok
}

// Names returns the registered function names in no particular order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for n := range r.funcs {
		names = append(names, n)
	}
	return names
}

// clone returns a registry that can be extended without touching r.
func (r *Registry) clone() *Registry {
	c := &Registry{funcs: make(map[string]*Function, len(r.funcs))}
	for k, v := range r.funcs {
		c.funcs[k] = v
	}
	return c
}
