package xlcalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe_FrozenArguments(t *testing.T) {
	ev := newTestEvaluator(t)
	output, err := ev.Describe("=MROUND(F2:F17, 3)")
	require.NoError(t, err)

	assert.Equal(t, "MROUND/2\n  F2:F17 range\n  3 number [frozen]\n", output)
}

func TestDescribe_NestedCalls(t *testing.T) {
	ev := newTestEvaluator(t)
	output, err := ev.Describe(`=IF(ISNA(A1),-COUNTIF(B:B,"x"),)`)
	require.NoError(t, err)

	want := "IF/3\n" +
		"  ISNA/1\n" +
		"    A1 range\n" +
		"  -\n" +
		"    COUNTIF/2\n" +
		"      B:B range [frozen]\n" +
		"      \"x\" text\n" +
		"  <missing>\n"
	assert.Equal(t, want, output)
}

func TestDescribe_ExplicitAndUnknown(t *testing.T) {
	ev := newTestEvaluator(t)
	output, err := ev.Describe("=CHOOSE(2,TRUE,NOSUCH(#N/A))")
	require.NoError(t, err)

	assert.Contains(t, output, "CHOOSE/3 [explicit]")
	assert.Contains(t, output, "  TRUE logical\n")
	assert.Contains(t, output, "  NOSUCH/1 unknown\n")
	assert.Contains(t, output, "    #N/A error\n")
}

func TestDescribe_Unsupported(t *testing.T) {
	ev := newTestEvaluator(t)
	_, err := ev.Describe("=A1*2")
	assert.ErrorIs(t, err, ErrUnsupportedFormula)
}
