package service

import (
	"fmt"

	"math-agent/internal/domain/entity"
)

func MessageToUserTool() entity.ToolDefinition {
	return entity.ToolDefinition{
		Name:        entity.ToolMessageToUser,
		Description: "Reply to the user directly. Use it for the final answer or to ask for clarification.",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"response": map[string]interface{}{
					"type":        "string",
					"description": "Message shown to the user",
				},
				"task_status": map[string]interface{}{
					"type":        "string",
					"enum":        []string{string(entity.TaskStatusCompleted), string(entity.TaskStatusInProgress)},
					"description": "COMPLETED when the user's request is fully answered",
				},
			},
			"required": []string{"response", "task_status"},
		},
	}
}

func QuadraticSolverTool() entity.ToolDefinition {
	return entity.ToolDefinition{
		Name:        entity.ToolQuadraticSolver,
		Description: "Solves an equation in x and returns its roots",
		Parameters:  equationSchema(false),
	}
}

func QuadraticDerivativeTool() entity.ToolDefinition {
	return entity.ToolDefinition{
		Name:        entity.ToolQuadraticDerivative,
		Description: "Differentiates an expression in x",
		Parameters:  equationSchema(false),
	}
}

func QuadraticEvaluatorTool() entity.ToolDefinition {
	return entity.ToolDefinition{
		Name:        entity.ToolQuadraticEvaluator,
		Description: "Evaluates an expression in x at a given x value",
		Parameters:  equationSchema(true),
	}
}

func RecordSummaryTool() entity.ToolDefinition {
	return entity.ToolDefinition{
		Name:        entity.ToolRecordSummary,
		Description: "Records the condensed conversation history",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"turns": map[string]interface{}{
					"type":     "array",
					"minItems": 1,
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"role": map[string]interface{}{
								"type": "string",
								"enum": []string{string(entity.RoleUser), string(entity.RoleAssistant), string(entity.RoleTool)},
							},
							"message": map[string]interface{}{
								"type": "string",
							},
						},
						"required": []string{"role", "message"},
					},
				},
			},
			"required": []string{"turns"},
		},
	}
}

func equationSchema(withX bool) map[string]interface{} {
	props := map[string]interface{}{
		"equation": map[string]interface{}{
			"type":        "string",
			"description": "Equation in x using ^ or ** for powers, e.g. x^2 + 5*x + 6 = 0",
		},
	}
	required := []string{"equation"}
	if withX {
		props["x_value"] = map[string]interface{}{
			"type":        "number",
			"description": "Value substituted for x",
		}
		required = append(required, "x_value")
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

// NewMathToolRegistry registers the decision catalogue: a direct reply plus
// the three quadratic tools.
func NewMathToolRegistry() (*ToolRegistryImpl, error) {
	registry := NewToolRegistry()
	for _, def := range []entity.ToolDefinition{
		MessageToUserTool(),
		QuadraticSolverTool(),
		QuadraticDerivativeTool(),
		QuadraticEvaluatorTool(),
	} {
		if err := registry.Register(def); err != nil {
			return nil, fmt.Errorf("register %s: %w", def.Name, err)
		}
	}
	return registry, nil
}

// NewSummaryToolRegistry holds the single tool used for compaction.
func NewSummaryToolRegistry() (*ToolRegistryImpl, error) {
	registry := NewToolRegistry()
	if err := registry.Register(RecordSummaryTool()); err != nil {
		return nil, fmt.Errorf("register %s: %w", entity.ToolRecordSummary, err)
	}
	return registry, nil
}
