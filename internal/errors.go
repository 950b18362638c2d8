package internal

import (
	"errors"
	"fmt"
)

// Runtime error kinds. Errors returned by evaluation wrap exactly one of
// these, so they can be tested with errors.Is.
var (
	ErrVarUndefined         = errors.New("variable is not defined")
	ErrNotCallable          = errors.New("value is not callable")
	ErrNotReferencable      = errors.New("value is not referencable")
	ErrImmutable            = errors.New("value is immutable")
	ErrIndexOutOfBounds     = errors.New("index out of bounds")
	ErrDivisionByZero       = errors.New("division by zero")
	ErrNoObjectContext      = errors.New("expression has no object context")
	ErrExecutionInterrupted = errors.New("execution interrupted")
	ErrStackOverflow        = errors.New("call depth limit exceeded")
)

// Pos is a location in source code.
type Pos struct {
	Label string
	Line  int
	Col   int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Label, p.Line, p.Col)
}

// RuntimeError is an error raised while evaluating the statement at Pos.
type RuntimeError struct {
	Pos Pos
	Err error
}

func (err *RuntimeError) Error() string {
	return err.Pos.String() + ": " + err.Err.Error()
}

func (err *RuntimeError) Unwrap() error {
	return err.Err
}

// atPos wraps err with a position unless it already has one.
func atPos(err error, pos Pos) error {
	if err == nil {
		return nil
	}
	var rt *RuntimeError
	if errors.As(err, &rt) {
		return err
	}
	return &RuntimeError{Pos: pos, Err: err}
}

// ParseError is an error in source code found before evaluation.
type ParseError struct {
	Pos Pos
	Msg string
	// incomplete is set when the source ended while a construct was still
	// open, so more input could make it valid.
	incomplete bool
}

func (err *ParseError) Error() string {
	return err.Pos.String() + ": " + err.Msg
}

// IsIncomplete returns true if err is a parse error caused by the source
// ending inside an unfinished construct.
func IsIncomplete(err error) bool {
	var perr *ParseError
	return errors.As(err, &perr) && perr.incomplete
}
