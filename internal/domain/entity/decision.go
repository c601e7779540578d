package entity

// Decision is the next action chosen by the reasoning service. The set of
// variants is closed: Reply, SolveQuadratic, DifferentiateQuadratic and
// EvaluateQuadratic.
type Decision interface {
	ToolName() ToolName
}

type Reply struct {
	Text       string
	TaskStatus TaskStatus
}

func (Reply) ToolName() ToolName { return ToolMessageToUser }

type SolveQuadratic struct {
	Equation string
}

func (SolveQuadratic) ToolName() ToolName { return ToolQuadraticSolver }

type DifferentiateQuadratic struct {
	Equation string
}

func (DifferentiateQuadratic) ToolName() ToolName { return ToolQuadraticDerivative }

type EvaluateQuadratic struct {
	Equation string
	XValue   float64
}

func (EvaluateQuadratic) ToolName() ToolName { return ToolQuadraticEvaluator }
