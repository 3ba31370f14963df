package xlcalc

import (
	"errors"
	"fmt"

	"github.com/xuri/efp"
)

// Severity indicates the severity of a validation issue.
type Severity int

const (
	SeverityError   Severity = iota // Formula evaluates to an error or cannot be evaluated
	SeverityWarning                 // Formula is valid Excel the evaluator does not handle
)

// ValidationIssue represents a single problem found in a formula.
type ValidationIssue struct {
	Severity Severity
	CellRef  CellRef
	Message  string
}

// String formats the issue as "[ERROR] Sheet1!A2: message" or "[WARN] ...".
func (v ValidationIssue) String() string {
	sev := "ERROR"
	if v.Severity == SeverityWarning {
		sev = "WARN"
	}
	return fmt.Sprintf("[%s] %s: %s", sev, v.CellRef, v.Message)
}

// Validate checks every formula stored in the workbook without evaluating
// it. Formula cells are looked up within each sheet's stored cell range.
func (e *Evaluator) Validate(wb *Workbook) ([]ValidationIssue, error) {
	var issues []ValidationIssue
	for sheet, name := range wb.names {
		for row, cells := range wb.sheets[sheet] {
			for col := range cells {
				formula, err := wb.Formula(sheet, row, col)
				if err != nil {
					return nil, err
				}
				if formula == "" {
					continue
				}
				issues = append(issues, e.ValidateFormula(wb, NewCellRef(name, row, col), formula)...)
			}
		}
	}
	return issues, nil
}

// ValidateFormula checks formula text as if stored at ref: syntax the
// evaluator accepts, known function names, argument counts, and references
// that resolve against wb. wb may be nil to skip reference checks.
func (e *Evaluator) ValidateFormula(wb *Workbook, ref CellRef, formula string) []ValidationIssue {
	root, err := ParseFormula(formula)
	if err != nil {
		sev := SeverityError
		if errors.Is(err, ErrUnsupportedFormula) {
			sev = SeverityWarning
		}
		return []ValidationIssue{{Severity: sev, CellRef: ref, Message: err.Error()}}
	}
	sheet := -1
	if wb != nil {
		var ok bool
		if sheet, ok = wb.SheetIndex(ref.Sheet); !ok {
			sheet = 0
		}
	}
	return e.validateNode(wb, sheet, ref, root)
}

func (e *Evaluator) validateNode(wb *Workbook, sheet int, ref CellRef, n *FormulaNode) []ValidationIssue {
	var issues []ValidationIssue
	switch n.Kind {
	case OperandNode:
		if n.Token.TSubType == efp.TokenSubTypeRange && wb != nil {
			if _, err := wb.Ref(n.Token.TValue, sheet); err != nil {
				issues = append(issues, ValidationIssue{
					Severity: SeverityError,
					CellRef:  ref,
					Message:  fmt.Sprintf("invalid reference %q: %v", n.Token.TValue, err),
				})
			}
		}
	case CallNode:
		fn, ok := e.registry.Lookup(n.Name)
		switch {
		case !ok:
			issues = append(issues, ValidationIssue{
				Severity: SeverityError,
				CellRef:  ref,
				Message:  fmt.Sprintf("unknown function %q", n.Name),
			})
		case !fn.Arity.Accepts(len(n.Args)):
			issues = append(issues, ValidationIssue{
				Severity: SeverityError,
				CellRef:  ref,
				Message:  fmt.Sprintf("%s takes %s arguments, got %d", fn.Name, fn.Arity, len(n.Args)),
			})
		}
	}
	for _, a := range n.Args {
		issues = append(issues, e.validateNode(wb, sheet, ref, a)...)
	}
	return issues
}
