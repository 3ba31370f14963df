package xlcalc

import (
	"fmt"
	"strings"

	"github.com/xuri/efp"
)

// Describe parses a formula and returns a human-readable tree of its calls
// and operands. Arguments the dispatcher never broadcasts are marked
// [frozen]; functions that handle arrays themselves are marked [explicit].
// Useful for debugging formulas during development.
func (e *Evaluator) Describe(formula string) (string, error) {
	root, err := ParseFormula(formula)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	e.describeNode(&b, root, 0, "")
	return b.String(), nil
}

// describeNode recursively writes one node per line.
func (e *Evaluator) describeNode(b *strings.Builder, n *FormulaNode, indent int, mark string) {
	prefix := strings.Repeat("  ", indent)
	switch n.Kind {
	case OperandNode:
		fmt.Fprintf(b, "%s%s %s%s\n", prefix, operandText(n.Token), operandKind(n.Token), mark)
	case MissingNode:
		fmt.Fprintf(b, "%s<missing>%s\n", prefix, mark)
	case NegateNode:
		fmt.Fprintf(b, "%s-%s\n", prefix, mark)
		e.describeNode(b, n.Args[0], indent+1, "")
	case CallNode:
		fn, ok := e.registry.Lookup(n.Name)
		attrs := ""
		switch {
		case !ok:
			attrs = " unknown"
		case fn.Explicit != nil:
			attrs = " [explicit]"
		}
		fmt.Fprintf(b, "%s%s/%d%s%s\n", prefix, normalizeName(n.Name), len(n.Args), attrs, mark)
		for i, a := range n.Args {
			argMark := ""
			if ok && fn.Explicit == nil && fn.Frozen.Contains(i) {
				argMark = " [frozen]"
			}
			e.describeNode(b, a, indent+1, argMark)
		}
	}
}

func operandText(t efp.Token) string {
	if t.TSubType == efp.TokenSubTypeText {
		return fmt.Sprintf("%q", t.TValue)
	}
	return t.TValue
}

func operandKind(t efp.Token) string {
	switch t.TSubType {
	case efp.TokenSubTypeNumber:
		return "number"
	case efp.TokenSubTypeText:
		return "text"
	case efp.TokenSubTypeLogical:
		return "logical"
	case efp.TokenSubTypeError:
		return "error"
	case efp.TokenSubTypeRange:
		return "range"
	}
	return "operand"
}
