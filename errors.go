package arithgen

import (
	"errors"
	"fmt"
)

// Arithmetic and parse failures are local to one expression or item.
var (
	ErrDivisionByZero       = errors.New("division by zero")
	ErrMalformedNumber      = errors.New("malformed number")
	ErrUnmatchedParenthesis = errors.New("unmatched parenthesis")
	ErrUnexpectedEnd        = errors.New("unexpected end of input")
	ErrExpectedOperator     = errors.New("expected operator")
)

// Validation failures of a Binary node.
var (
	ErrNegativeIntermediate = errors.New("subtraction result is negative")
	ErrIntegerQuotient      = errors.New("division result is an integer")
)

// ErrGenerationExhausted reports a partial generation result. It is a warning,
// not a failure: the expressions produced so far are still returned.
var ErrGenerationExhausted = errors.New("generation attempt ceiling reached")

// ParseError locates a parser failure inside the input text.
type ParseError struct {
	Input string
	Pos   int // rune offset
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q at %d: %v", e.Input, e.Pos, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ExhaustedError carries the counts of a partial generation run.
type ExhaustedError struct {
	Want     int
	Got      int
	Attempts int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("generated only %d unique problems (target: %d) after %d attempts", e.Got, e.Want, e.Attempts)
}

func (e *ExhaustedError) Unwrap() error { return ErrGenerationExhausted }
