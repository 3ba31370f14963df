package xlcalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExprFunction_Scalar(t *testing.T) {
	fn, err := NewExprFunction("TWICE", Fixed(1), nil, "args[0] * 2")
	require.NoError(t, err)
	assert.Equal(t, Number(8), Invoke(fn, NewContext(0, 0), []Value{Number(4)}))
}

func TestNewExprFunction_CompileError(t *testing.T) {
	_, err := NewExprFunction("BAD", Fixed(1), nil, "args[0] +")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BAD")
}

func TestNewExprFunction_Broadcasts(t *testing.T) {
	fn, err := NewExprFunction("PLUSROW", Fixed(1), nil, "args[0] + row")
	require.NoError(t, err)

	g := grid{}
	area := column(g, 0, 2, numbers(10, 20)...)
	arr := requireArray(t, Invoke(fn, NewContext(0, 0), []Value{area}))
	// rows are 1-based inside the expression
	assert.Equal(t, numbers(13, 24), arr.Values())
}

func TestNewExprFunction_Values(t *testing.T) {
	fn, err := NewExprFunction("LABEL", Fixed(2), nil, `args[1] == nil ? "none" : (args[0] ? "yes" : "no")`)
	require.NoError(t, err)

	ctx := NewContext(0, 0)
	assert.Equal(t, Text("yes"), Invoke(fn, ctx, []Value{True, Number(1)}))
	assert.Equal(t, Text("none"), Invoke(fn, ctx, []Value{True, Blank{}}))
	assert.Equal(t, NewError(ErrNA), Invoke(fn, ctx, []Value{NewError(ErrNA), Number(1)}))
	assert.Equal(t, NewError(ErrValue), Invoke(fn, ctx, []Value{Number(1)}))
}

func TestNewExprFunction_RuntimeErrorIsValue(t *testing.T) {
	fn, err := NewExprFunction("UPPERNUM", Fixed(1), nil, "upper(args[0])")
	require.NoError(t, err)
	assert.Equal(t, NewError(ErrValue), Invoke(fn, NewContext(0, 0), []Value{Number(1)}))
}

func TestNewExprFunction_CachesPrograms(t *testing.T) {
	const src = "args[0] - 1"
	_, err := NewExprFunction("A", Fixed(1), nil, src)
	require.NoError(t, err)
	first, ok := programCache.Load(src)
	require.True(t, ok)

	_, err = NewExprFunction("B", Fixed(1), nil, src)
	require.NoError(t, err)
	second, _ := programCache.Load(src)
	assert.Same(t, first, second)
}

func TestFromGo(t *testing.T) {
	assert.Equal(t, Blank{}, fromGo(nil))
	assert.Equal(t, Number(3), fromGo(3))
	assert.Equal(t, Number(2.5), fromGo(2.5))
	assert.Equal(t, Text("s"), fromGo("s"))
	assert.Equal(t, True, fromGo(true))
	assert.Equal(t, NewError(ErrValue), fromGo([]int{1}))
}
