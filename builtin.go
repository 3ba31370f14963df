package xlcalc

// Builtins returns the built-in functions.
func Builtins() []*Function {
	return []*Function{
		IfFunc, IfErrorFunc, ChooseFunc,
		IsNumberFunc, IsTextFunc, IsNonTextFunc, IsLogicalFunc,
		IsBlankFunc, IsErrorFunc, IsErrFunc, IsNAFunc, IsRefFunc,
		CountIfFunc, CountIfsFunc, CountFunc, CountAFunc, CountBlankFunc,
		SumFunc, MRoundFunc, EDateFunc, RowFunc, ColumnFunc,
	}
}

var defaultRegistry = NewRegistry(Builtins()...)

// DefaultRegistry returns the registry of built-in functions. It must not be
// modified; NewEvaluator copies it before adding custom functions.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
