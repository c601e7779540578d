package reasoning

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"math-agent/internal/application/port/output"
	"math-agent/internal/domain/entity"
	"math-agent/internal/infrastructure/prompts"
)

var errEmptySummary = errors.New("summary is empty")

var _ output.Summarizer = (*Summarizer)(nil)

type Summarizer struct {
	llm      output.LLMPort
	tools    output.ToolRegistry
	logger   output.LoggerPort
	template string
}

// NewSummarizer expects a registry holding only the record_summary tool.
func NewSummarizer(llm output.LLMPort, tools output.ToolRegistry, logger output.LoggerPort) *Summarizer {
	return &Summarizer{
		llm:      llm,
		tools:    tools,
		logger:   logger,
		template: prompts.SummarizePrompt,
	}
}

func (s *Summarizer) Summarize(ctx context.Context, req output.SummaryRequest) (*output.SummaryResponse, error) {
	prompt, err := prompts.GenerateSummaryPrompt(s.template, req.History)
	if err != nil {
		return nil, err
	}

	resp, err := s.llm.Chat(ctx, output.ChatRequest{
		Messages:    []entity.Message{{Role: entity.RoleUser, Content: prompt}},
		Tools:       s.tools.Definitions(),
		ToolChoice:  output.ToolChoiceRequired,
		Temperature: deterministicTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("summary request failed: %w", err)
	}

	turns, err := s.decode(resp.Message)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Summary decoded", "before", len(req.History), "after", len(turns))
	return &output.SummaryResponse{
		Turns: turns,
		Usage: resp.Usage,
	}, nil
}

func (s *Summarizer) decode(msg entity.Message) ([]entity.Turn, error) {
	for _, tc := range msg.ToolCalls {
		if tc.Name != entity.ToolRecordSummary {
			s.logger.Warn("Ignoring unexpected tool call in summary", "tool", tc.Name)
			continue
		}
		if err := s.tools.Validate(tc.Name, tc.Arguments); err != nil {
			return nil, fmt.Errorf("malformed summary: %w", err)
		}

		var args struct {
			Turns []struct {
				Role    string `json:"role"`
				Message string `json:"message"`
			} `json:"turns"`
		}
		if err := json.Unmarshal([]byte(tc.Arguments), &args); err != nil {
			return nil, fmt.Errorf("decode summary: %w", err)
		}

		turns := make([]entity.Turn, 0, len(args.Turns))
		for _, t := range args.Turns {
			turns = append(turns, entity.NewSummaryTurn(entity.MessageRole(t.Role), t.Message))
		}
		return turns, nil
	}

	text := strings.TrimSpace(msg.Content)
	if text == "" {
		return nil, errEmptySummary
	}
	return []entity.Turn{entity.NewSummaryTurn(entity.RoleAssistant, text)}, nil
}
