package xlcalc

// CountInArea counts the positions of the shared rectangle at which every
// area satisfies its paired predicate. Sheets are swept from the first to the
// last sheet of areas[0]; the other areas are read at the same sheet offset
// from their own first sheet. A nil predicate never matches.
func CountInArea(areas []Area, preds []Predicate) int {
	if len(areas) == 0 || len(areas) != len(preds) {
		return 0
	}
	for _, p := range preds {
		if isNilPredicate(p) {
			return 0
		}
	}
	first := areas[0]
	height, width := first.Height(), first.Width()
	count := 0
	for s := first.FirstSheet; s <= first.LastSheet; s++ {
		offset := s - first.FirstSheet
		for r := 0; r < height; r++ {
			for c := 0; c < width; c++ {
				if allMatchAt(areas, preds, offset, r, c) {
					count++
				}
			}
		}
	}
	return count
}

func allMatchAt(areas []Area, preds []Predicate, sheetOffset, row, col int) bool {
	for i, a := range areas {
		if ap, ok := preds[i].(AreaPredicate); ok && !ap.MatchesAt(a, row, col) {
			return false
		}
		if !preds[i].Matches(a.ValueAtSheet(a.FirstSheet+sheetOffset, row, col)) {
			return false
		}
	}
	return true
}

// CountInReference counts the sheets of refs[0] on which every reference's
// inner value satisfies its paired predicate.
func CountInReference(refs []Reference, preds []Predicate) int {
	if len(refs) == 0 || len(refs) != len(preds) {
		return 0
	}
	for _, p := range preds {
		if isNilPredicate(p) {
			return 0
		}
	}
	first := refs[0]
	count := 0
	for s := first.FirstSheet; s <= first.LastSheet; s++ {
		offset := s - first.FirstSheet
		matched := true
		for i, r := range refs {
			if !preds[i].Matches(r.InnerValue(r.FirstSheet + offset)) {
				matched = false
				break
			}
		}
		if matched {
			count++
		}
	}
	return count
}

// CountArg counts the matches of pred in one argument, choosing the sweep by
// the argument's shape. Arrays are counted element by element; a scalar is a
// single test.
func CountArg(v Value, pred Predicate) int {
	if isNilPredicate(pred) {
		return 0
	}
	switch x := v.(type) {
	case Area:
		return CountInArea([]Area{x}, []Predicate{pred})
	case Reference:
		return CountInReference([]Reference{x}, []Predicate{pred})
	case *Array:
		n := 0
		for i := 0; i < x.Len(); i++ {
			if pred.Matches(x.At(i)) {
				n++
			}
		}
		return n
	case Number, Text, Boolean, Blank, MissingArg, ErrorValue:
		if pred.Matches(v) {
			return 1
		}
		return 0
	}
	panic("xlcalc: unknown value type")
}

// PredicateFunc adapts a plain function to a Predicate.
type PredicateFunc func(v Value) bool

func (f PredicateFunc) Matches(v Value) bool { return f(v) }

// isNilPredicate also catches a nil *Matcher stored in the interface, which
// is what BuildMatcher returns for a blank criteria.
func isNilPredicate(p Predicate) bool {
	if p == nil {
		return true
	}
	m, ok := p.(*Matcher)
	return ok && m == nil
}
