package prompts

import (
	"fmt"

	"math-agent/internal/application/port/output"
	"math-agent/internal/domain/entity"

	"github.com/tmc/langchaingo/prompts"
)

type ToolInfo struct {
	Name        string
	Description string
}

// GenerateMathChatPrompt renders the system prompt with the tool catalogue
// taken from the registry.
func GenerateMathChatPrompt(baseTemplate string, registry output.ToolRegistry) (string, error) {
	defs := registry.Definitions()
	tools := make([]ToolInfo, 0, len(defs))
	for _, def := range defs {
		tools = append(tools, ToolInfo{
			Name:        def.Name.String(),
			Description: def.Description,
		})
	}

	tmpl := prompts.NewPromptTemplate(baseTemplate, []string{"Tools", "ReplyTool"})
	result, err := tmpl.Format(map[string]any{
		"Tools":     tools,
		"ReplyTool": entity.ToolMessageToUser.String(),
	})
	if err != nil {
		return "", fmt.Errorf("render math chat prompt: %w", err)
	}
	return result, nil
}

func GenerateSummaryPrompt(baseTemplate string, history []string) (string, error) {
	tmpl := prompts.NewPromptTemplate(baseTemplate, []string{"History", "Count", "SummaryTool"})
	result, err := tmpl.Format(map[string]any{
		"History":     history,
		"Count":       len(history),
		"SummaryTool": entity.ToolRecordSummary.String(),
	})
	if err != nil {
		return "", fmt.Errorf("render summary prompt: %w", err)
	}
	return result, nil
}
