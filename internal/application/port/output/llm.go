package output

import (
	"context"

	"math-agent/internal/domain/entity"
)

type LLMPort interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

type ChatRequest struct {
	Messages    []entity.Message
	Tools       []entity.ToolDefinition
	ToolChoice  ToolChoice
	Temperature float32
}

// ToolChoice mirrors the OpenAI tool_choice values; empty means "auto".
type ToolChoice string

const (
	ToolChoiceAuto     ToolChoice = "auto"
	ToolChoiceRequired ToolChoice = "required"
)

type ChatResponse struct {
	Message entity.Message
	Usage   entity.Usage
}
