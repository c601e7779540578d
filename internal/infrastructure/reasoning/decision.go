// Package reasoning adapts an LLM into the decision and summarization
// services: the model picks tools, this package turns its tool calls into
// typed values.
package reasoning

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"math-agent/internal/application/port/output"
	"math-agent/internal/domain/entity"
	"math-agent/internal/infrastructure/prompts"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// deterministicTemperature stands in for zero, which go-openai omits from
// the request body.
const deterministicTemperature = math.SmallestNonzeroFloat32

var errEmptyDecision = errors.New("model returned neither a tool call nor text")

var _ output.DecisionService = (*DecisionService)(nil)

type DecisionService struct {
	llm          output.LLMPort
	tools        output.ToolRegistry
	logger       output.LoggerPort
	systemPrompt string
}

func NewDecisionService(llm output.LLMPort, tools output.ToolRegistry, logger output.LoggerPort) (*DecisionService, error) {
	systemPrompt, err := prompts.GenerateMathChatPrompt(prompts.MathChatPrompt, tools)
	if err != nil {
		return nil, err
	}

	return &DecisionService{
		llm:          llm,
		tools:        tools,
		logger:       logger,
		systemPrompt: systemPrompt,
	}, nil
}

func (s *DecisionService) Decide(ctx context.Context, req output.DecisionRequest) (*output.DecisionResponse, error) {
	resp, err := s.llm.Chat(ctx, output.ChatRequest{
		Messages: []entity.Message{
			{Role: entity.RoleSystem, Content: s.systemPrompt},
			{Role: entity.RoleUser, Content: strings.Join(req.History, "\n")},
		},
		Tools:       s.tools.Definitions(),
		ToolChoice:  output.ToolChoiceRequired,
		Temperature: deterministicTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("decision request failed: %w", err)
	}

	decision, err := s.decode(resp.Message)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Decision decoded", "tool", decision.ToolName(), "promptTokens", resp.Usage.PromptTokens)
	return &output.DecisionResponse{
		Decision: decision,
		Usage:    resp.Usage,
	}, nil
}

func (s *DecisionService) decode(msg entity.Message) (entity.Decision, error) {
	if len(msg.ToolCalls) == 0 {
		text := strings.TrimSpace(msg.Content)
		if text == "" {
			return nil, errEmptyDecision
		}
		return entity.Reply{Text: text, TaskStatus: entity.TaskStatusInProgress}, nil
	}

	if len(msg.ToolCalls) > 1 {
		s.logger.Warn("Model returned several tool calls, using the first", "count", len(msg.ToolCalls))
	}
	tc := msg.ToolCalls[0]

	if _, ok := s.tools.Get(tc.Name); !ok {
		return nil, &entity.UnknownToolError{Name: tc.Name.String()}
	}
	if err := s.tools.Validate(tc.Name, tc.Arguments); err != nil {
		return nil, fmt.Errorf("malformed %s decision: %w", tc.Name, err)
	}

	switch tc.Name {
	case entity.ToolMessageToUser:
		var args struct {
			Response   string `json:"response"`
			TaskStatus string `json:"task_status"`
		}
		if err := json.Unmarshal([]byte(tc.Arguments), &args); err != nil {
			return nil, fmt.Errorf("decode %s arguments: %w", tc.Name, err)
		}
		return entity.Reply{Text: args.Response, TaskStatus: entity.TaskStatus(args.TaskStatus)}, nil

	case entity.ToolQuadraticSolver, entity.ToolQuadraticDerivative:
		var args struct {
			Equation string `json:"equation"`
		}
		if err := json.Unmarshal([]byte(tc.Arguments), &args); err != nil {
			return nil, fmt.Errorf("decode %s arguments: %w", tc.Name, err)
		}
		if tc.Name == entity.ToolQuadraticSolver {
			return entity.SolveQuadratic{Equation: args.Equation}, nil
		}
		return entity.DifferentiateQuadratic{Equation: args.Equation}, nil

	case entity.ToolQuadraticEvaluator:
		var args struct {
			Equation string  `json:"equation"`
			XValue   float64 `json:"x_value"`
		}
		if err := json.Unmarshal([]byte(tc.Arguments), &args); err != nil {
			return nil, fmt.Errorf("decode %s arguments: %w", tc.Name, err)
		}
		return entity.EvaluateQuadratic{Equation: args.Equation, XValue: args.XValue}, nil

	default:
		return nil, &entity.UnknownToolError{Name: tc.Name.String()}
	}
}
