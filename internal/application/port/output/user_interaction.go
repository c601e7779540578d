package output

import (
	"context"

	"math-agent/internal/domain/entity"
)

// ToolObserver is told about every tool call the agent makes.
type ToolObserver interface {
	ShowToolStart(ctx context.Context, toolName entity.ToolName, arguments map[string]any)
	ShowToolResult(ctx context.Context, toolName entity.ToolName, result string, isError bool)
}

type UserInteractionPort interface {
	ToolObserver
	ReadLine(ctx context.Context, prompt string) (string, error)
	ShowBanner(ctx context.Context)
	ShowHelp(ctx context.Context)
	ShowReply(ctx context.Context, reply string)
	ShowError(ctx context.Context, err error)
}
