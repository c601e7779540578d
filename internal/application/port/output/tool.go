package output

import (
	"math-agent/internal/domain/entity"
)

type ToolRegistry interface {
	Register(def entity.ToolDefinition) error
	Get(name entity.ToolName) (entity.ToolDefinition, bool)
	Definitions() []entity.ToolDefinition
	Validate(name entity.ToolName, arguments string) error
}
