package entity

type ToolName string

const (
	ToolMessageToUser       ToolName = "message_to_user"
	ToolQuadraticSolver     ToolName = "quadratic_solver"
	ToolQuadraticDerivative ToolName = "quadratic_derivative"
	ToolQuadraticEvaluator  ToolName = "quadratic_evaluator"

	ToolRecordSummary ToolName = "record_summary"
)

func (t ToolName) String() string {
	return string(t)
}
