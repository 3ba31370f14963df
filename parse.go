package xlcalc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/efp"
)

// ErrUnsupportedFormula reports formula syntax outside what the evaluator
// handles: infix and postfix operators and array constants.
var ErrUnsupportedFormula = errors.New("unsupported formula syntax")

// NodeKind identifies a FormulaNode variant.
type NodeKind int

const (
	OperandNode NodeKind = iota // a literal or reference, Token holds it
	CallNode                    // a function call, Name and Args are set
	MissingNode                 // an empty argument slot, as in IF(A1,,2)
	NegateNode                  // unary minus over Args[0]
)

// FormulaNode is one node of a parsed formula.
type FormulaNode struct {
	Kind  NodeKind
	Name  string    // function name for CallNode
	Token efp.Token // operand token for OperandNode
	Args  []*FormulaNode
}

// ParseFormula tokenizes formula text (with or without a leading "=") and
// builds its call tree. Only function calls, operands, parentheses and unary
// signs are accepted; anything else wraps ErrUnsupportedFormula.
func ParseFormula(formula string) (*FormulaNode, error) {
	formula = strings.TrimPrefix(strings.TrimSpace(formula), "=")
	if formula == "" {
		return nil, fmt.Errorf("parse formula: empty formula")
	}
	var tokens []efp.Token
	ps := efp.ExcelParser()
	for _, t := range ps.Parse(formula) {
		if t.TType != efp.TokenTypeWhitespace {
			tokens = append(tokens, t)
		}
	}
	p := &formulaParser{tokens: tokens}
	node, err := p.expression()
	if err != nil {
		return nil, fmt.Errorf("parse formula %q: %w", formula, err)
	}
	if t, ok := p.peek(); ok {
		return nil, fmt.Errorf("parse formula %q: unexpected %q: %w", formula, t.TValue, ErrUnsupportedFormula)
	}
	return node, nil
}

// formulaParser is a recursive-descent reader over efp tokens.
type formulaParser struct {
	tokens []efp.Token
	pos    int
}

func (p *formulaParser) peek() (efp.Token, bool) {
	if p.pos >= len(p.tokens) {
		return efp.Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *formulaParser) next() (efp.Token, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

func (p *formulaParser) expression() (*FormulaNode, error) {
	t, ok := p.next()
	if !ok {
		return nil, fmt.Errorf("unexpected end of formula")
	}
	var (
		node *FormulaNode
		err  error
	)
	switch {
	case t.TType == efp.TokenTypeOperatorPrefix:
		node, err = p.expression()
		if err == nil && t.TValue == "-" {
			node = &FormulaNode{Kind: NegateNode, Args: []*FormulaNode{node}}
		}
	case t.TType == efp.TokenTypeOperand:
		node = &FormulaNode{Kind: OperandNode, Token: t}
	case t.TType == efp.TokenTypeFunction && t.TSubType == efp.TokenSubTypeStart:
		node, err = p.call(t.TValue)
	case t.TType == efp.TokenTypeSubexpression && t.TSubType == efp.TokenSubTypeStart:
		node, err = p.expression()
		if err == nil {
			if end, ok := p.next(); !ok || end.TType != efp.TokenTypeSubexpression || end.TSubType != efp.TokenSubTypeStop {
				err = fmt.Errorf("unbalanced parentheses")
			}
		}
	default:
		err = fmt.Errorf("unexpected %q: %w", t.TValue, ErrUnsupportedFormula)
	}
	if err != nil {
		return nil, err
	}
	if t, ok := p.peek(); ok && (t.TType == efp.TokenTypeOperatorInfix || t.TType == efp.TokenTypeOperatorPostfix) {
		return nil, fmt.Errorf("operator %q: %w", t.TValue, ErrUnsupportedFormula)
	}
	return node, nil
}

// call reads the arguments of a function whose start token was just
// consumed. An empty argument slot becomes a MissingNode.
func (p *formulaParser) call(name string) (*FormulaNode, error) {
	if strings.EqualFold(name, "ARRAY") || strings.EqualFold(name, "ARRAYROW") {
		return nil, fmt.Errorf("array constant: %w", ErrUnsupportedFormula)
	}
	node := &FormulaNode{Kind: CallNode, Name: name}
	if t, ok := p.peek(); ok && isFunctionStop(t) {
		p.pos++
		return node, nil
	}
	for {
		t, ok := p.peek()
		if !ok {
			return nil, fmt.Errorf("%s: missing closing parenthesis", name)
		}
		if t.TType == efp.TokenTypeArgument || isFunctionStop(t) {
			node.Args = append(node.Args, &FormulaNode{Kind: MissingNode})
		} else {
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			node.Args = append(node.Args, arg)
		}
		sep, ok := p.next()
		switch {
		case !ok:
			return nil, fmt.Errorf("%s: missing closing parenthesis", name)
		case isFunctionStop(sep):
			return node, nil
		case sep.TType != efp.TokenTypeArgument:
			return nil, fmt.Errorf("%s: unexpected %q", name, sep.TValue)
		}
	}
}

func isFunctionStop(t efp.Token) bool {
	return t.TType == efp.TokenTypeFunction && t.TSubType == efp.TokenSubTypeStop
}
