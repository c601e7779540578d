package entity

import (
	"errors"
	"fmt"
)

var (
	ErrParse            = errors.New("parse error")
	ErrEvaluation       = errors.New("evaluation error")
	ErrUnknownTool      = errors.New("unknown tool")
	ErrMaxTurnsExceeded = errors.New("max turns exceeded")
)

// ParseError reports an equation that cannot be turned into an expression in x.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %s", e.Input, e.Reason)
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// EvaluationError reports a substitution that has no real value.
type EvaluationError struct {
	Equation string
	X        float64
	Reason   string
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluate %q at x = %g: %s", e.Equation, e.X, e.Reason)
}

func (e *EvaluationError) Is(target error) bool { return target == ErrEvaluation }

// UnknownToolError means the reasoning service produced something outside
// the known set of decisions. It is a contract violation and is never retried.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool type requested: %s", e.Name)
}

func (e *UnknownToolError) Is(target error) bool { return target == ErrUnknownTool }
