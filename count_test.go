package xlcalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// firstRowOnly accepts only the top row of any swept area.
type firstRowOnly struct{ Predicate }

func (firstRowOnly) MatchesAt(_ Area, row, _ int) bool { return row == 0 }

func TestCountInArea_PairedAreas(t *testing.T) {
	g := grid{}
	regions := column(g, 0, 0, Text("east"), Text("west"), Text("east"), Text("east"))
	sales := column(g, 1, 0, numbers(10, 20, 30, 5)...)

	n := CountInArea(
		[]Area{regions, sales},
		[]Predicate{TextMatcher("east", OpNone), NumberMatcher(8, OpGt)},
	)
	assert.Equal(t, 2, n)
}

func TestCountInArea_SweepsSheets(t *testing.T) {
	g := grid{}
	g.set(0, 0, 0, Number(1)).set(1, 0, 0, Number(1)).set(2, 0, 0, Number(2))
	a := NewArea(g, 0, 0, 0, 0, 0)
	a.LastSheet = 2

	assert.Equal(t, 2, CountInArea([]Area{a}, []Predicate{NumberMatcher(1, OpNone)}))
}

func TestCountInArea_AreaPredicate(t *testing.T) {
	g := grid{}
	a := column(g, 0, 3, numbers(1, 1, 1)...)
	pred := firstRowOnly{NumberMatcher(1, OpNone)}
	assert.Equal(t, 1, CountInArea([]Area{a}, []Predicate{pred}))
}

func TestCountInArea_Degenerate(t *testing.T) {
	a := column(grid{}, 0, 0, Number(1))
	assert.Equal(t, 0, CountInArea(nil, nil))
	assert.Equal(t, 0, CountInArea([]Area{a}, nil))

	var nilMatcher *Matcher
	assert.Equal(t, 0, CountInArea([]Area{a}, []Predicate{nilMatcher}))
}

func TestCountInReference(t *testing.T) {
	g := grid{}
	g.set(0, 2, 2, Text("x")).set(1, 2, 2, Text("y")).set(2, 2, 2, Text("x"))
	r := Reference{FirstSheet: 0, LastSheet: 2, Row: 2, Col: 2, Book: g}

	assert.Equal(t, 2, CountInReference([]Reference{r}, []Predicate{TextMatcher("x", OpNone)}))
	assert.Equal(t, 0, CountInReference(nil, nil))
}

func TestCountArg(t *testing.T) {
	g := grid{}
	g.set(0, 0, 0, Number(3))
	gt2 := NumberMatcher(2, OpGt)

	assert.Equal(t, 1, CountArg(NewReference(g, 0, 0, 0), gt2))
	assert.Equal(t, 2, CountArg(NewArray(numbers(1, 3, 4), 0), gt2))
	assert.Equal(t, 1, CountArg(Number(7), gt2))
	assert.Equal(t, 0, CountArg(Text("7"), gt2))
	assert.Equal(t, 0, CountArg(Number(7), nil))
	assert.Equal(t, 3, CountArg(NewArray(numbers(0, 0, 0), 0), PredicateFunc(isNumber)))
}
