package xlcalc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/efp"
)

// EvaluateFormula evaluates formula text as if it were stored in cell on
// sheet. The result may be array-shaped or a reference, exactly as the
// outermost function returned it.
func (e *Evaluator) EvaluateFormula(wb *Workbook, sheet, cell, formula string) (Value, error) {
	sheetIdx, ok := wb.SheetIndex(sheet)
	if !ok {
		return nil, fmt.Errorf("evaluate formula: unknown sheet %q", sheet)
	}
	ref, err := ParseCellRef(cell)
	if err != nil {
		return nil, fmt.Errorf("evaluate formula: %w", err)
	}
	root, err := ParseFormula(formula)
	if err != nil {
		return nil, err
	}
	ctx := e.NewContext(ref.Row, ref.Col,
		WithContextSheet(sheetIdx),
		WithContextWorkbook(wb),
		WithContextDate1904(wb.Date1904()),
	)
	return e.evalNode(ctx, root), nil
}

// EvaluateCell evaluates the formula stored at ref ("Sheet1!C2"). A cell
// without a formula yields its stored value.
func (e *Evaluator) EvaluateCell(wb *Workbook, ref string) (Value, error) {
	cr, err := ParseCellRef(ref)
	if err != nil {
		return nil, fmt.Errorf("evaluate cell: %w", err)
	}
	if cr.Sheet == "" {
		return nil, fmt.Errorf("evaluate cell %q: sheet name required", ref)
	}
	sheetIdx, ok := wb.SheetIndex(cr.Sheet)
	if !ok {
		return nil, fmt.Errorf("evaluate cell: unknown sheet %q", cr.Sheet)
	}
	formula, err := wb.Formula(sheetIdx, cr.Row, cr.Col)
	if err != nil {
		return nil, err
	}
	if formula == "" {
		return wb.CellValue(sheetIdx, cr.Row, cr.Col), nil
	}
	return e.EvaluateFormula(wb, cr.Sheet, cr.CellName(), formula)
}

// evalNode evaluates arguments before the call and passes them as values, so
// areas and references reach functions unresolved.
func (e *Evaluator) evalNode(ctx *Context, n *FormulaNode) Value {
	switch n.Kind {
	case OperandNode:
		return operandValue(ctx, n.Token)
	case MissingNode:
		return MissingArg{}
	case NegateNode:
		return negate(ctx, e.evalNode(ctx, n.Args[0]))
	case CallNode:
		args := make([]Value, len(n.Args))
		for i, a := range n.Args {
			args[i] = e.evalNode(ctx, a)
		}
		return e.CallAt(ctx, n.Name, args)
	}
	panic("xlcalc: unknown formula node")
}

func operandValue(ctx *Context, t efp.Token) Value {
	switch t.TSubType {
	case efp.TokenSubTypeNumber:
		f, err := strconv.ParseFloat(t.TValue, 64)
		if err != nil {
			return NewError(ErrValue)
		}
		return Number(f)
	case efp.TokenSubTypeText:
		return Text(t.TValue)
	case efp.TokenSubTypeLogical:
		return Boolean(strings.EqualFold(t.TValue, "TRUE"))
	case efp.TokenSubTypeError:
		if code, ok := ParseErrorLiteral(strings.ToUpper(t.TValue)); ok {
			return NewError(code)
		}
		return NewError(ErrValue)
	case efp.TokenSubTypeRange:
		book := ctx.Workbook()
		if book == nil {
			return NewError(ErrRef)
		}
		v, err := book.Ref(t.TValue, ctx.Sheet)
		if err != nil {
			var ee *EvalError
			if errors.As(err, &ee) {
				return NewError(ee.Code)
			}
			return NewError(ErrName)
		}
		return v
	}
	return NewError(ErrValue)
}

// negate applies unary minus, element-wise over array-shaped operands.
func negate(ctx *Context, v Value) Value {
	return Broadcast(ctx, []Value{v}, nil, false, func(ctx *Context, args []Value) Value {
		f, err := ctx.Number(args[0])
		if err != nil {
			return ErrorValueOf(err)
		}
		return Number(-f)
	})
}
