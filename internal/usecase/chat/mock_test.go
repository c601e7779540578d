package chat

import (
	"context"

	"math-agent/internal/application/port/output"
	"math-agent/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

type mockDecider struct {
	mock.Mock
}

func (m *mockDecider) Decide(ctx context.Context, req output.DecisionRequest) (*output.DecisionResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*output.DecisionResponse)
	return resp, args.Error(1)
}

// then queues decisions to be returned in order.
func (m *mockDecider) then(decisions ...entity.Decision) *mockDecider {
	for _, d := range decisions {
		m.On("Decide", mock.Anything, mock.Anything).Return(&output.DecisionResponse{
			Decision: d,
			Usage:    entity.Usage{Calls: 1, PromptTokens: 10, CompletionTokens: 2, TotalTokens: 12},
		}, nil).Once()
	}
	return m
}

type mockSummarizer struct {
	mock.Mock
}

func (m *mockSummarizer) Summarize(ctx context.Context, req output.SummaryRequest) (*output.SummaryResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*output.SummaryResponse)
	return resp, args.Error(1)
}

type mockMath struct {
	mock.Mock
}

func (m *mockMath) Solve(ctx context.Context, equation string) ([]entity.Root, error) {
	args := m.Called(ctx, equation)
	roots, _ := args.Get(0).([]entity.Root)
	return roots, args.Error(1)
}

func (m *mockMath) Differentiate(ctx context.Context, equation string) (string, error) {
	args := m.Called(ctx, equation)
	return args.String(0), args.Error(1)
}

func (m *mockMath) Evaluate(ctx context.Context, equation string, x float64) (float64, error) {
	args := m.Called(ctx, equation, x)
	return args.Get(0).(float64), args.Error(1)
}

type toolEvent struct {
	tool    entity.ToolName
	result  string
	isError bool
	start   bool
}

type recordingObserver struct {
	events []toolEvent
}

func (o *recordingObserver) ShowToolStart(_ context.Context, tool entity.ToolName, _ map[string]any) {
	o.events = append(o.events, toolEvent{tool: tool, start: true})
}

func (o *recordingObserver) ShowToolResult(_ context.Context, tool entity.ToolName, result string, isError bool) {
	o.events = append(o.events, toolEvent{tool: tool, result: result, isError: isError})
}

// unsupported is a decision no handler knows about.
type unsupported struct{}

func (unsupported) ToolName() entity.ToolName { return "cubic_solver" }
