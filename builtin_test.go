package xlcalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, name string, row, col int, args ...Value) Value {
	t.Helper()
	ev := newTestEvaluator(t)
	return ev.Call(name, args, row, col)
}

func TestMRound_BroadcastScenario(t *testing.T) {
	g := grid{}
	// F2:F17
	area := column(g, 5, 1, repeat(Number(10500), 16)...)

	arr := requireArray(t, call(t, "MROUND", 1, 6, area, Number(3)))
	assert.Equal(t, 16, arr.Len())
	assert.Equal(t, 1, arr.FirstRow())
	for i := 0; i < arr.Len(); i++ {
		assert.Equal(t, Number(10500), arr.At(i))
	}
}

func TestMRound(t *testing.T) {
	tests := []struct {
		number, multiple Value
		want             Value
	}{
		{Number(10), Number(3), Number(9)},
		{Number(1.5), Number(1), Number(2)},
		{Number(-1.5), Number(-1), Number(-2)},
		{Number(7), Number(0), Number(0)},
		{Number(5), Number(-2), NewError(ErrNum)},
		{Text("12"), Number(5), Number(10)},
		{Text("x"), Number(5), NewError(ErrValue)},
		{NewError(ErrDiv0), Number(5), NewError(ErrDiv0)},
	}
	for _, tt := range tests {
		got := call(t, "MROUND", 0, 0, tt.number, tt.multiple)
		assert.Equal(t, tt.want, got, "MROUND(%s,%s)", FormatValue(tt.number), FormatValue(tt.multiple))
	}
}

func TestMRound_MultipleIsFrozen(t *testing.T) {
	g := grid{}
	multiples := column(g, 1, 0, numbers(2, 5)...)
	// the multiple resolves by implicit intersection at the formula row
	assert.Equal(t, Number(10), call(t, "MROUND", 1, 3, Number(11), multiples))
}

func TestIf(t *testing.T) {
	assert.Equal(t, Number(1), call(t, "IF", 0, 0, True, Number(1), Number(2)))
	assert.Equal(t, Number(2), call(t, "IF", 0, 0, False, Number(1), Number(2)))
	assert.Equal(t, False, call(t, "IF", 0, 0, False, Number(1)))
	assert.Equal(t, Blank{}, call(t, "IF", 0, 0, False, Number(1), MissingArg{}))
	assert.Equal(t, Blank{}, call(t, "IF", 0, 0, True, MissingArg{}, Number(2)))
	assert.Equal(t, Number(2), call(t, "IF", 0, 0, Text("maybe"), Number(1), Number(2)))
	assert.Equal(t, Number(1), call(t, "IF", 0, 0, Number(-3), Number(1), Number(2)))
	assert.Equal(t, NewError(ErrNA), call(t, "IF", 0, 0, NewError(ErrNA), Number(1), Number(2)))
	assert.Equal(t, NewError(ErrValue), call(t, "IF", 0, 0, True))
}

func TestIf_BroadcastOverBooleans(t *testing.T) {
	cond := NewArray([]Value{True, False, True, False}, 0)

	arr := requireArray(t, call(t, "IF", 0, 0, cond, Text("yes"), MissingArg{}))
	assert.Equal(t, []Value{Text("yes"), Blank{}, Text("yes"), Blank{}}, arr.Values())

	arr = requireArray(t, call(t, "IF", 0, 0, cond, Text("yes"), Text("no")))
	assert.Equal(t, []Value{Text("yes"), Text("no"), Text("yes"), Text("no")}, arr.Values())
}

func TestIf_BranchFollowsElementRow(t *testing.T) {
	g := grid{}
	cond := column(g, 0, 3, True, True)
	then := column(g, 1, 3, Text("a"), Text("b"))

	arr := requireArray(t, call(t, "IF", 0, 2, cond, then, Number(0)))
	assert.Equal(t, []Value{Text("a"), Text("b")}, arr.Values())
}

func TestIfError(t *testing.T) {
	g := grid{}
	g.set(0, 0, 0, NewError(ErrDiv0))
	ref := NewReference(g, 0, 0, 0)

	assert.Equal(t, Number(1), call(t, "IFERROR", 0, 0, Number(1), Number(0)))
	assert.Equal(t, Text("fallback"), call(t, "IFERROR", 0, 0, ref, Text("fallback")))
	// an area broadcasts; rows outside the formula column fall back
	arr := requireArray(t, call(t, "IFERROR", 0, 0, NewArea(g, 0, 5, 5, 6, 6), Number(0)))
	assert.Equal(t, numbers(0, 0), arr.Values())
	assert.Equal(t, Blank{}, call(t, "IFERROR", 0, 0, MissingArg{}, Number(0)))
}

func TestTypeTests(t *testing.T) {
	g := grid{}
	g.set(0, 0, 0, Number(1))
	ref := NewReference(g, 0, 0, 0)
	multi := Reference{FirstSheet: 0, LastSheet: 1, Book: g}

	tests := []struct {
		fn   string
		arg  Value
		want Boolean
	}{
		{"ISNUMBER", Number(1), true},
		{"ISNUMBER", Text("1"), false},
		{"ISNUMBER", ref, true},
		{"ISTEXT", Text(""), true},
		{"ISNONTEXT", Blank{}, true},
		{"ISNONTEXT", Text("a"), false},
		{"ISLOGICAL", False, true},
		{"ISBLANK", NewReference(g, 0, 9, 9), true},
		{"ISBLANK", MissingArg{}, true},
		{"ISBLANK", Text(""), false},
		{"ISERROR", NewError(ErrNA), true},
		{"ISERROR", multi, true},
		{"ISERR", NewError(ErrNA), false},
		{"ISERR", NewError(ErrRef), true},
		{"ISNA", NewError(ErrNA), true},
		{"ISNUMBER", multi, false},
		{"ISREF", ref, true},
		{"ISREF", NewArea(g, 0, 0, 0, 3, 3), true},
		{"ISREF", Number(1), false},
	}
	for _, tt := range tests {
		got := call(t, tt.fn, 0, 0, tt.arg)
		assert.Equal(t, tt.want, got, "%s(%s)", tt.fn, FormatValue(tt.arg))
	}
}

func TestIsNumber_BroadcastOverArea(t *testing.T) {
	g := grid{}
	area := column(g, 0, 0, Number(1), Text("a"), Blank{})
	arr := requireArray(t, call(t, "ISNUMBER", 0, 0, area))
	assert.Equal(t, []Value{True, False, False}, arr.Values())
}

func TestChoose(t *testing.T) {
	assert.Equal(t, Text("b"), call(t, "CHOOSE", 0, 0, Number(2), Text("a"), Text("b")))
	assert.Equal(t, Text("b"), call(t, "CHOOSE", 0, 0, Number(2.9), Text("a"), Text("b")))
	assert.Equal(t, NewError(ErrValue), call(t, "CHOOSE", 0, 0, Number(3), Text("a"), Text("b")))
	assert.Equal(t, NewError(ErrValue), call(t, "CHOOSE", 0, 0, Number(0), Text("a")))
	assert.Equal(t, Blank{}, call(t, "CHOOSE", 0, 0, Number(1), MissingArg{}))
	assert.Equal(t, NewError(ErrNA), call(t, "CHOOSE", 0, 0, NewError(ErrNA), Text("a")))
}

func TestChoose_BroadcastsIndexOnly(t *testing.T) {
	g := grid{}
	index := column(g, 0, 2, numbers(1, 2, 1)...)
	choice := column(g, 1, 2, Text("r2"), Text("r3"), Text("r4"))

	arr := requireArray(t, call(t, "CHOOSE", 0, 5, index, choice, Text("other")))
	assert.Equal(t, 2, arr.FirstRow())
	assert.Equal(t, []Value{Text("r2"), Text("other"), Text("r4")}, arr.Values())
}

func TestRowAndColumn(t *testing.T) {
	g := grid{}
	assert.Equal(t, Number(5), call(t, "ROW", 4, 2))
	assert.Equal(t, Number(3), call(t, "COLUMN", 4, 2))
	assert.Equal(t, Number(8), call(t, "ROW", 0, 0, NewReference(g, 0, 7, 1)))
	assert.Equal(t, Number(3), call(t, "ROW", 0, 0, NewArea(g, 0, 2, 0, 9, 0)))
	assert.Equal(t, Number(2), call(t, "COLUMN", 0, 0, NewReference(g, 0, 7, 1)))
	assert.Equal(t, NewError(ErrValue), call(t, "ROW", 0, 0, Number(1)))
	assert.Equal(t, NewError(ErrValue), call(t, "ROW", 0, 0, Number(1), Number(2)))
}

func TestCountIf(t *testing.T) {
	g := grid{}
	data := column(g, 0, 0, Number(1), Number(5), Text("apple"), Blank{}, Number(7), Text("5"))

	tests := []struct {
		criteria Value
		want     Number
	}{
		{Text(">4"), 2},
		{Number(5), 2},
		{Text("a*"), 1},
		{Text("<>"), 5},
		{Text(""), 1},
		{Blank{}, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, call(t, "COUNTIF", 0, 3, data, tt.criteria), FormatValue(tt.criteria))
	}
}

func TestCountIf_ArrayCriteriaBroadcasts(t *testing.T) {
	g := grid{}
	data := column(g, 0, 0, numbers(1, 2, 3, 4)...)
	crit := NewArray([]Value{Text(">1"), Text(">3")}, 0)

	arr := requireArray(t, call(t, "COUNTIF", 0, 3, data, crit))
	assert.Equal(t, numbers(3, 1), arr.Values())
}

func TestCountIf_ArrayCriteriaAnchorsAtRange(t *testing.T) {
	g := grid{}
	data := column(g, 0, 4, numbers(1, 2, 3)...)

	arr := requireArray(t, call(t, "COUNTIF", 0, 3, data, NewArray(numbers(1, 2, 3), 0)))
	assert.Equal(t, 4, arr.FirstRow())
	assert.Equal(t, numbers(1, 1, 1), arr.Values())
}

func TestCountIfs(t *testing.T) {
	g := grid{}
	region := column(g, 0, 0, Text("east"), Text("west"), Text("east"))
	sales := column(g, 1, 0, numbers(100, 200, 300)...)
	short := column(g, 2, 0, numbers(1, 2)...)

	assert.Equal(t, Number(1), call(t, "COUNTIFS", 0, 5, region, Text("east"), sales, Text(">150")))
	assert.Equal(t, Number(2), call(t, "COUNTIFS", 0, 5, region, Text("east")))
	assert.Equal(t, NewError(ErrValue), call(t, "COUNTIFS", 0, 5, region, Text("east"), sales))
	assert.Equal(t, NewError(ErrValue), call(t, "COUNTIFS", 0, 5, region, Text("east"), short, Number(1)))
}

func TestCountFamily(t *testing.T) {
	g := grid{}
	area := column(g, 0, 0, Number(1), Text("2"), True, Blank{}, NewError(ErrNA), Text(""))

	assert.Equal(t, Number(1), call(t, "COUNT", 0, 0, area))
	assert.Equal(t, Number(3), call(t, "COUNT", 0, 0, area, Text("3"), True, Blank{}))
	assert.Equal(t, Number(5), call(t, "COUNTA", 0, 0, area))
	assert.Equal(t, Number(2), call(t, "COUNTBLANK", 0, 0, area))
	assert.Equal(t, NewError(ErrValue), call(t, "COUNTBLANK", 0, 0, Number(1)))
}

func TestSum(t *testing.T) {
	g := grid{}
	area := column(g, 0, 0, Number(1), Text("2"), True, Number(4))

	assert.Equal(t, Number(5), call(t, "SUM", 0, 0, area))
	assert.Equal(t, Number(8), call(t, "SUM", 0, 0, area, Text("2"), True))
	assert.Equal(t, Number(3), call(t, "SUM", 0, 0, NewArray(numbers(1, 2), 0)))
	assert.Equal(t, NewError(ErrValue), call(t, "SUM", 0, 0, Text("x")))

	g.set(0, 9, 0, NewError(ErrDiv0))
	assert.Equal(t, NewError(ErrDiv0), call(t, "SUM", 0, 0, NewArea(g, 0, 0, 0, 9, 0)))
}

func TestEDate(t *testing.T) {
	g := grid{}
	g.set(0, 0, 0, Number(45322)).set(0, 1, 0, Text("2024-01-31"))

	tests := []struct {
		name   string
		start  Value
		months Value
		want   Value
	}{
		{"end of month clamps", Number(45322), Number(1), Number(45351)},
		{"leap month", Number(45322), Number(2), Number(45382)},
		{"backwards", Number(45322), Number(-12), Number(44957)},
		{"non leap", Number(44957), Number(1), Number(44985)},
		{"truncated months", Number(45322), Number(3.7), Number(45412)},
		{"previous year", Number(45322), Number(-1), Number(45291)},
		{"reference", NewReference(g, 0, 0, 0), Number(1), Number(45351)},
		{"text is not a date", Text("45322"), Number(1), NewError(ErrValue)},
		{"text cell", NewReference(g, 0, 1, 0), Number(1), NewError(ErrValue)},
		{"error propagates", NewError(ErrNA), Number(1), NewError(ErrNA)},
		{"months beyond integer range", Number(45000), Number(1e300), NewError(ErrNum)},
		{"past year 9999", Number(45000), Number(1e7), NewError(ErrNum)},
		{"before 1900", Number(1), Number(-1), NewError(ErrNum)},
		{"negative start", Number(-5), Number(1), NewError(ErrNum)},
		{"last valid date", Number(2958404), Number(2), Number(2958465)},
		{"after last valid date", Number(2958465), Number(1), NewError(ErrNum)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, call(t, "EDATE", 0, 0, tt.start, tt.months))
		})
	}
}

func TestEDate_ErrorIsolation(t *testing.T) {
	g := grid{}
	multi := Reference{FirstSheet: 0, LastSheet: 1, Row: 0, Col: 0, Book: g}
	starts := NewArray([]Value{Number(45322), multi, Number(44957)}, 0)

	arr := requireArray(t, call(t, "EDATE", 0, 0, starts, Number(1)))
	require.Equal(t, 3, arr.Len())
	assert.Equal(t, Number(45351), arr.At(0))
	assert.Equal(t, NewError(ErrValue), arr.At(1))
	assert.Equal(t, Number(44985), arr.At(2))
}

func TestEDate_Date1904(t *testing.T) {
	ev := newTestEvaluator(t, WithDate1904(true))
	// 1904 serial 1461 is 1908-01-01
	assert.Equal(t, Number(1492), ev.Call("EDATE", []Value{Number(1461), Number(1)}, 0, 0))
}

func TestUnknownFunction(t *testing.T) {
	assert.Equal(t, NewError(ErrName), call(t, "NOSUCH", 0, 0, Number(1)))
}

func TestBuiltins_AreRegistered(t *testing.T) {
	names := DefaultRegistry().Names()
	for _, fn := range Builtins() {
		assert.Contains(t, names, fn.Name)
		got, ok := DefaultRegistry().Lookup(" " + fn.Name + " ")
		require.True(t, ok)
		assert.Same(t, fn, got)
	}
}
