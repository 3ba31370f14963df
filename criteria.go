package xlcalc

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// CmpOp is the comparison operator prefix of a criteria string.
type CmpOp int

const (
	OpNone CmpOp = iota // no prefix: equality, but "" matches blanks
	OpEq                // =
	OpNe                // <>
	OpLe                // <=
	OpLt                // <
	OpGt                // >
	OpGe                // >=
)

var opText = [...]string{"", "=", "<>", "<=", "<", ">", ">="}

func (o CmpOp) String() string { return opText[o] }

// parseOperator reads the longest operator prefix of s.
func parseOperator(s string) CmpOp {
	switch {
	case strings.HasPrefix(s, "<>"):
		return OpNe
	case strings.HasPrefix(s, "<="):
		return OpLe
	case strings.HasPrefix(s, ">="):
		return OpGe
	case strings.HasPrefix(s, "<"):
		return OpLt
	case strings.HasPrefix(s, ">"):
		return OpGt
	case strings.HasPrefix(s, "="):
		return OpEq
	}
	return OpNone
}

// holds applies the operator to an equality outcome. Only None, Eq and Ne
// can judge an equality.
func (o CmpOp) holds(equal bool) bool {
	switch o {
	case OpNone, OpEq:
		return equal
	case OpNe:
		return !equal
	}
	panic(fmt.Sprintf("xlcalc: operator %q cannot judge equality", o.String()))
}

// ordered applies the operator to a three-way comparison result.
func (o CmpOp) ordered(cmp int) bool {
	switch o {
	case OpNone, OpEq:
		return cmp == 0
	case OpNe:
		return cmp != 0
	case OpLt:
		return cmp < 0
	case OpLe:
		return cmp <= 0
	case OpGt:
		return cmp > 0
	case OpGe:
		return cmp >= 0
	}
	panic("xlcalc: unknown operator")
}

// Predicate decides whether one candidate cell value counts.
type Predicate interface {
	Matches(v Value) bool
}

// AreaPredicate additionally sees the area being swept and the relative
// position, for conditions that depend on where a cell is. Area sweeps
// require both MatchesAt and Matches to hold.
type AreaPredicate interface {
	Predicate
	MatchesAt(a Area, row, col int) bool
}

type payloadKind int

const (
	numberPayload payloadKind = iota
	booleanPayload
	errorPayload
	textPayload
)

// Matcher is a criteria compiled once per criteria argument. It is
// immutable and safe to reuse across every candidate of a sweep.
type Matcher struct {
	op      CmpOp
	kind    payloadKind
	number  float64
	boolean int
	code    ErrorCode
	text    string
	folded  string // case-folded text, for ordered comparison
	pattern *regexp.Regexp
}

// BuildMatcher compiles a criteria operand for a formula at (row, col).
// A criteria that resolves to a blank (or an omitted argument) yields a nil
// matcher: callers count zero matches rather than matching everything.
func BuildMatcher(criteria Value, row, col int) (*Matcher, error) {
	v, err := SingleValue(criteria, row, col)
	if err != nil {
		return nil, err
	}
	switch x := v.(type) {
	case Number:
		return NumberMatcher(float64(x), OpNone), nil
	case Boolean:
		return BooleanMatcher(bool(x), OpNone), nil
	case ErrorValue:
		return ErrorMatcher(x.Code, OpNone), nil
	case Text:
		return parseCriteriaText(string(x)), nil
	case Blank, MissingArg:
		return nil, nil
	case Reference, Area, *Array:
		return nil, newEvalError(ErrValue, "criteria resolved to %s", v.Kind())
	}
	panic("xlcalc: unknown value type")
}

func parseCriteriaText(s string) *Matcher {
	op := parseOperator(s)
	rest := s[len(op.String()):]
	if b, ok := ParseBoolean(rest); ok {
		return BooleanMatcher(b, op)
	}
	if f, ok := ParseDouble(rest); ok {
		return NumberMatcher(f, op)
	}
	if code, ok := ParseErrorLiteral(rest); ok {
		return ErrorMatcher(code, op)
	}
	return TextMatcher(rest, op)
}

// NumberMatcher matches numbers, and text that reads as an equal number.
func NumberMatcher(n float64, op CmpOp) *Matcher {
	return &Matcher{op: op, kind: numberPayload, number: n}
}

// BooleanMatcher matches booleans only; text is never read as a boolean.
func BooleanMatcher(b bool, op CmpOp) *Matcher {
	m := &Matcher{op: op, kind: booleanPayload}
	if b {
		m.boolean = 1
	}
	return m
}

// ErrorMatcher matches error values, ordered by error code.
func ErrorMatcher(code ErrorCode, op CmpOp) *Matcher {
	return &Matcher{op: op, kind: errorPayload, code: code}
}

// TextMatcher matches text case-insensitively. Under None, Eq and Ne the
// text may hold wildcards: ? is one character, * any run, ~? and ~* are
// literal.
func TextMatcher(s string, op CmpOp) *Matcher {
	m := &Matcher{op: op, kind: textPayload, text: s, folded: cases.Fold().String(s)}
	switch op {
	case OpNone, OpEq, OpNe:
		m.pattern = WildcardPattern(s)
	}
	return m
}

// Op returns the comparison operator.
func (m *Matcher) Op() CmpOp { return m.op }

// WildcardPattern compiles an Excel wildcard string into an anchored,
// case-insensitive regular expression. It returns nil when s has no
// wildcard, so plain text is compared as ordered text instead.
func WildcardPattern(s string) *regexp.Regexp {
	var sb strings.Builder
	wild := false
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; r {
		case '?':
			wild = true
			sb.WriteString(".")
		case '*':
			wild = true
			sb.WriteString(".*")
		case '~':
			if i+1 < len(runes) && (runes[i+1] == '?' || runes[i+1] == '*') {
				wild = true
				sb.WriteString(regexp.QuoteMeta(string(runes[i+1])))
				i++
				continue
			}
			sb.WriteString("~")
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	if !wild {
		return nil
	}
	return regexp.MustCompile(`(?is)^(?:` + sb.String() + `)$`)
}

// Matches applies the type-aware Excel criteria rules to one candidate.
func (m *Matcher) Matches(v Value) bool {
	if _, ok := v.(MissingArg); ok {
		v = Blank{}
	}
	switch m.kind {
	case numberPayload:
		return m.matchNumber(v)
	case booleanPayload:
		return m.matchBoolean(v)
	case errorPayload:
		if e, ok := v.(ErrorValue); ok {
			return m.op.ordered(int(e.Code) - int(m.code))
		}
		return false
	case textPayload:
		return m.matchText(v)
	}
	panic("xlcalc: unknown matcher payload")
}

func (m *Matcher) matchNumber(v Value) bool {
	switch x := v.(type) {
	case Text:
		switch m.op {
		case OpNone, OpEq:
			f, ok := ParseDouble(string(x))
			return ok && f == m.number
		case OpNe:
			// '<>5' counts every text cell, numeric-looking or not
			return true
		}
		return false
	case Number:
		return m.op.ordered(compareFloat(float64(x), m.number))
	case Blank:
		return m.op == OpNe
	}
	return false
}

func (m *Matcher) matchBoolean(v Value) bool {
	switch x := v.(type) {
	case Boolean:
		test := 0
		if x {
			test = 1
		}
		return m.op.ordered(test - m.boolean)
	case Number, Blank:
		return m.op == OpNe
	}
	return false
}

func (m *Matcher) matchText(v Value) bool {
	switch x := v.(type) {
	case Blank:
		switch m.op {
		case OpNone, OpEq:
			return m.text == ""
		case OpNe:
			return m.text != ""
		}
		return false
	case Text:
		test := string(x)
		if test == "" && m.text == "" {
			// criteria "" and "=" differ on empty text
			switch m.op {
			case OpNone, OpNe:
				return true
			}
			return false
		}
		if m.pattern != nil {
			return m.op.holds(m.pattern.MatchString(test))
		}
		return m.op.ordered(strings.Compare(cases.Fold().String(test), m.folded))
	case Number, Boolean, ErrorValue:
		// a non-text cell is never equal to a text criteria
		return m.op == OpNe
	}
	return false
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	case a == b:
		return 0
	}
	// NaN sorts above everything, and equal to itself
	switch {
	case math.IsNaN(a) && math.IsNaN(b):
		return 0
	case math.IsNaN(a):
		return 1
	}
	return -1
}

// String renders the matcher as its criteria text, e.g. "<>5" or "=a*c".
func (m *Matcher) String() string {
	switch m.kind {
	case numberPayload:
		return m.op.String() + strconv.FormatFloat(m.number, 'g', -1, 64)
	case booleanPayload:
		if m.boolean == 1 {
			return m.op.String() + "TRUE"
		}
		return m.op.String() + "FALSE"
	case errorPayload:
		return m.op.String() + m.code.String()
	}
	return m.op.String() + m.text
}
