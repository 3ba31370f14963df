package xlcalc

import (
	"errors"
	"fmt"
)

// ErrorCode is a spreadsheet error code. The numeric values are the ones
// Excel stores in BIFF/OOXML error cells; criteria matching orders errors by
// these values.
type ErrorCode int

const (
	ErrNull  ErrorCode = 0x00 // #NULL! - intersection of ranges is empty
	ErrDiv0  ErrorCode = 0x07 // #DIV/0!
	ErrValue ErrorCode = 0x0F // #VALUE! - wrong type, wrong arg count, bad index
	ErrRef   ErrorCode = 0x17 // #REF!
	ErrName  ErrorCode = 0x1D // #NAME? - unknown function
	ErrNum   ErrorCode = 0x24 // #NUM! - domain error
	ErrNA    ErrorCode = 0x2A // #N/A

	// Engine-internal codes. They never come from cell data.
	ErrNotImplemented ErrorCode = -30
	ErrCircularRef    ErrorCode = -60
)

var errorLiterals = map[ErrorCode]string{
	ErrNull:           "#NULL!",
	ErrDiv0:           "#DIV/0!",
	ErrValue:          "#VALUE!",
	ErrRef:            "#REF!",
	ErrName:           "#NAME?",
	ErrNum:            "#NUM!",
	ErrNA:             "#N/A",
	ErrNotImplemented: "~FUNCTION~NOT~IMPLEMENTED~",
	ErrCircularRef:    "~CIRCULAR~REF~",
}

// String returns the literal Excel shows in a cell, e.g. "#DIV/0!".
func (c ErrorCode) String() string {
	if s, ok := errorLiterals[c]; ok {
		return s
	}
	return fmt.Sprintf("~UNKNOWN~ERROR~%d~", int(c))
}

// ParseErrorLiteral recognises the seven user-visible error literals.
// Matching is exact: "#n/a" is not an error literal.
func ParseErrorLiteral(s string) (ErrorCode, bool) {
	if len(s) < 4 || s[0] != '#' {
		return 0, false
	}
	switch s {
	case "#NULL!":
		return ErrNull, true
	case "#DIV/0!":
		return ErrDiv0, true
	case "#VALUE!":
		return ErrValue, true
	case "#REF!":
		return ErrRef, true
	case "#NAME?":
		return ErrName, true
	case "#NUM!":
		return ErrNum, true
	case "#N/A":
		return ErrNA, true
	}
	return 0, false
}

// EvalError is the failure raised by coercion and operand resolution.
// Function bodies convert it into an ErrorValue result with ErrorValueOf;
// it never travels past a single function call.
type EvalError struct {
	Code ErrorCode
	Msg  string
}

func (e *EvalError) Error() string {
	if e.Msg == "" {
		return e.Code.String()
	}
	return e.Code.String() + ": " + e.Msg
}

func newEvalError(code ErrorCode, format string, args ...any) *EvalError {
	return &EvalError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// errorOf wraps an error value as an EvalError carrying the same code.
func errorOf(v ErrorValue) *EvalError {
	return &EvalError{Code: v.Code}
}

// ErrorValueOf converts an error returned by coercion into the result value of
// a function. Errors that are not EvalErrors become #VALUE!.
func ErrorValueOf(err error) ErrorValue {
	var ee *EvalError
	if errors.As(err, &ee) {
		return ErrorValue{Code: ee.Code}
	}
	return ErrorValue{Code: ErrValue}
}
