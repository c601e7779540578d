package output

import (
	"context"

	"math-agent/internal/domain/entity"
)

type EquationSolver interface {
	Solve(ctx context.Context, equation string) ([]entity.Root, error)
}

type Differentiator interface {
	Differentiate(ctx context.Context, equation string) (string, error)
}

type Evaluator interface {
	Evaluate(ctx context.Context, equation string, x float64) (float64, error)
}

// MathPort bundles the three quadratic collaborators.
type MathPort interface {
	EquationSolver
	Differentiator
	Evaluator
}
