package ui

import (
	"errors"
	"fmt"
)

// ErrDivisionByZero is returned by Divide for a zero divisor.
var ErrDivisionByZero = errors.New("integer division by zero")

// OutcomeKind classifies an attempted computation.
type OutcomeKind int

const (
	OutcomeOK OutcomeKind = iota
	OutcomeDivisionByZero
	OutcomeOther
)

// Outcome is the result of Attempt. Err is set unless Kind is OutcomeOK.
type Outcome struct {
	Kind  OutcomeKind
	Value int
	Err   error
}

// Message is the line the error page shows for the outcome.
func (o Outcome) Message() string {
	switch o.Kind {
	case OutcomeOK:
		return fmt.Sprintf("Result is %d", o.Value)
	case OutcomeDivisionByZero:
		return "You can't divide by zero!"
	default:
		return fmt.Sprintf("Unexpected error: %v", o.Err)
	}
}

// Divide is integer division that reports a zero divisor as an error.
func Divide(a, b int) (int, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return a / b, nil
}

// Attempt runs fn and classifies its result. A panic inside fn becomes
// OutcomeOther carrying the panic value.
func Attempt(fn func() (int, error)) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Kind: OutcomeOther, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	v, err := fn()
	switch {
	case err == nil:
		return Outcome{Kind: OutcomeOK, Value: v}
	case errors.Is(err, ErrDivisionByZero):
		return Outcome{Kind: OutcomeDivisionByZero, Err: err}
	default:
		return Outcome{Kind: OutcomeOther, Err: err}
	}
}
