package xlcalc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// grid is a sparse in-memory CellReader keyed by (sheet, row, col).
type grid map[[3]int]Value

func (g grid) CellValue(sheet, row, col int) Value {
	if v, ok := g[[3]int{sheet, row, col}]; ok {
		return v
	}
	return Blank{}
}

func (g grid) set(sheet, row, col int, v Value) grid {
	g[[3]int{sheet, row, col}] = v
	return g
}

// column fills one column of sheet 0 starting at firstRow and returns the
// area covering it.
func column(g grid, col, firstRow int, vals ...Value) Area {
	for i, v := range vals {
		g.set(0, firstRow+i, col, v)
	}
	return NewArea(g, 0, firstRow, col, firstRow+len(vals)-1, col)
}

func numbers(fs ...float64) []Value {
	out := make([]Value, len(fs))
	for i, f := range fs {
		out[i] = Number(f)
	}
	return out
}

func repeat(v Value, n int) []Value {
	out := make([]Value, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// requireArray asserts v is an *Array and returns it.
func requireArray(t *testing.T, v Value) *Array {
	t.Helper()
	arr, ok := v.(*Array)
	require.Truef(t, ok, "expected *Array, got %T (%s)", v, FormatValue(v))
	return arr
}

// newTestWorkbook builds an in-memory xlsx with excelize, round-trips it
// through a buffer and loads it as a Workbook.
func newTestWorkbook(t *testing.T, build func(f *excelize.File)) *Workbook {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	build(f)

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	wb, err := OpenWorkbookReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { wb.Close() })
	return wb
}

func newTestEvaluator(t *testing.T, opts ...Option) *Evaluator {
	t.Helper()
	ev, err := NewEvaluator(opts...)
	require.NoError(t, err)
	return ev
}
