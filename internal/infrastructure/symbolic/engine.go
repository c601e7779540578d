// Package symbolic implements the quadratic collaborators: solving,
// differentiating and evaluating equations in x written in infix notation.
package symbolic

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"

	"math-agent/internal/application/port/output"
	"math-agent/internal/domain/entity"
)

var _ output.MathPort = (*Engine)(nil)

// imagTolerance is the relative size below which an imaginary part is
// treated as floating point noise.
const imagTolerance = 1e-12

type Engine struct {
	logger output.LoggerPort
}

func NewEngine(logger output.LoggerPort) *Engine {
	return &Engine{logger: logger}
}

func (e *Engine) Solve(ctx context.Context, equation string) ([]entity.Root, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	poly, err := e.polynomialOf(equation)
	if err != nil {
		return nil, err
	}

	roots, err := poly.roots()
	if err != nil {
		return nil, fmt.Errorf("solve %q: %w", equation, err)
	}

	e.logger.Debug("Equation solved", "equation", equation, "degree", poly.degree(), "roots", entity.FormatRoots(roots))
	return roots, nil
}

func (e *Engine) Differentiate(ctx context.Context, equation string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	poly, err := e.polynomialOf(equation)
	if err != nil {
		return "", err
	}

	derivative := poly.derivative().String()
	e.logger.Debug("Equation differentiated", "equation", equation, "derivative", derivative)
	return derivative, nil
}

func (e *Engine) Evaluate(ctx context.Context, equation string, x float64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	expr, err := parseEquation(equation)
	if err != nil {
		return 0, err
	}

	v := expr.eval(complex(x, 0))
	if cmplx.IsNaN(v) || cmplx.IsInf(v) {
		return 0, &entity.EvaluationError{Equation: equation, X: x, Reason: "result is undefined"}
	}
	if math.Abs(imag(v)) > imagTolerance*math.Max(1, math.Abs(real(v))) {
		return 0, &entity.EvaluationError{
			Equation: equation,
			X:        x,
			Reason:   fmt.Sprintf("result %v is not a real number", v),
		}
	}

	e.logger.Debug("Equation evaluated", "equation", equation, "x", x, "result", real(v))
	return real(v), nil
}

func (e *Engine) polynomialOf(equation string) (polynomial, error) {
	expr, err := parseEquation(equation)
	if err != nil {
		return polynomial{}, err
	}

	poly, err := expr.polynomial()
	if err != nil {
		return polynomial{}, &entity.ParseError{Input: equation, Reason: err.Error()}
	}
	return poly, nil
}
