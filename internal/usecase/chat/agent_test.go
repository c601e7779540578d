package chat

import (
	"context"
	"errors"
	"testing"

	"math-agent/internal/application/port/output"
	"math-agent/internal/domain/entity"
	"math-agent/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	decider    *mockDecider
	summarizer *mockSummarizer
	math       *mockMath
	observer   *recordingObserver
	agent      *Agent
}

func newFixture(opts Options) *fixture {
	f := &fixture{
		decider:    new(mockDecider),
		summarizer: new(mockSummarizer),
		math:       new(mockMath),
		observer:   &recordingObserver{},
	}
	f.agent = New(f.decider, f.summarizer, f.math, f.observer, logger.NewNopLogger(), opts)
	return f
}

func TestAgent_ChatSolveThenReply(t *testing.T) {
	f := newFixture(Options{})
	f.decider.then(
		entity.SolveQuadratic{Equation: "x^2 + 5*x + 6 = 0"},
		entity.Reply{Text: "The roots are -3 and -2.", TaskStatus: entity.TaskStatusCompleted},
	)
	f.math.On("Solve", mock.Anything, "x^2 + 5*x + 6 = 0").
		Return([]entity.Root{{Real: -3, Exact: "-3"}, {Real: -2, Exact: "-2"}}, nil)

	reply, err := f.agent.Chat(context.Background(), "Solve x^2 + 5x + 6 = 0")
	require.NoError(t, err)
	assert.Equal(t, "The roots are -3 and -2.", reply)

	history := f.agent.History()
	require.Len(t, history, 4)
	assert.Equal(t, entity.RoleUser, history[0].Role)

	assert.Equal(t, entity.RoleAssistant, history[1].Role)
	assert.Equal(t, entity.ToolQuadraticSolver, history[1].ToolName)
	assert.Equal(t, "I need to solve this quadratic equation", history[1].Message)
	assert.Equal(t, "x^2 + 5*x + 6 = 0", history[1].ToolArgs[entity.MetaEquation])

	assert.Equal(t, entity.RoleTool, history[2].Role)
	assert.Equal(t, "Solved equation: x^2 + 5*x + 6 = 0. Roots: [-3, -2]", history[2].Message)
	assert.Equal(t, "[-3, -2]", history[2].Metadata[entity.MetaResult])
	assert.Equal(t, entity.TaskStatusCompleted, history[2].TaskStatus())

	assert.Equal(t, entity.RoleAssistant, history[3].Role)
	assert.Equal(t, entity.ToolMessageToUser, history[3].ToolName)
	assert.Equal(t, entity.TaskStatusCompleted, history[3].TaskStatus())

	assert.Equal(t, entity.Usage{Calls: 2, PromptTokens: 20, CompletionTokens: 4, TotalTokens: 24}, f.agent.Usage())
	f.decider.AssertExpectations(t)
	f.summarizer.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
}

func TestAgent_DecisionSeesFullProjection(t *testing.T) {
	f := newFixture(Options{})
	f.decider.On("Decide", mock.Anything, mock.MatchedBy(func(req output.DecisionRequest) bool {
		return len(req.History) == 1
	})).Return(&output.DecisionResponse{Decision: entity.DifferentiateQuadratic{Equation: "2*x^2 + 4*x - 6"}}, nil).Once()
	f.decider.On("Decide", mock.Anything, mock.MatchedBy(func(req output.DecisionRequest) bool {
		return len(req.History) == 3
	})).Return(&output.DecisionResponse{Decision: entity.Reply{Text: "4*x + 4", TaskStatus: entity.TaskStatusCompleted}}, nil).Once()
	f.math.On("Differentiate", mock.Anything, "2*x^2 + 4*x - 6").Return("4*x + 4", nil)

	reply, err := f.agent.Chat(context.Background(), "derivative of 2x^2 + 4x - 6")
	require.NoError(t, err)
	assert.Equal(t, "4*x + 4", reply)

	history := f.agent.History()
	require.Len(t, history, 4)
	assert.Equal(t, "Derivative of equation: 2*x^2 + 4*x - 6. Result: 4*x + 4", history[2].Message)
	f.decider.AssertExpectations(t)
}

func TestAgent_EvaluateRecordsFormattedResult(t *testing.T) {
	f := newFixture(Options{})
	f.decider.then(
		entity.EvaluateQuadratic{Equation: "3*x^2 - 2*x + 1", XValue: 2},
		entity.Reply{Text: "9", TaskStatus: entity.TaskStatusCompleted},
	)
	f.math.On("Evaluate", mock.Anything, "3*x^2 - 2*x + 1", 2.0).Return(9.0, nil)

	_, err := f.agent.Chat(context.Background(), "Evaluate 3x^2 - 2x + 1 at x = 2")
	require.NoError(t, err)

	history := f.agent.History()
	require.Len(t, history, 4)
	assert.Equal(t, 2.0, history[1].ToolArgs[entity.MetaXValue])
	assert.Equal(t, "Evaluated equation: 3*x^2 - 2*x + 1 at x = 2.0. Result: 9.0", history[2].Message)
	assert.Equal(t, "9.0", history[2].Metadata[entity.MetaResult])

	require.Len(t, f.observer.events, 2)
	assert.True(t, f.observer.events[0].start)
	assert.Equal(t, toolEvent{tool: entity.ToolQuadraticEvaluator, result: "9.0"}, f.observer.events[1])
}

func TestAgent_HistoryGrowth(t *testing.T) {
	f := newFixture(Options{})
	f.decider.then(
		entity.SolveQuadratic{Equation: "x^2 = 4"},
		entity.DifferentiateQuadratic{Equation: "x^2"},
		entity.EvaluateQuadratic{Equation: "x^2", XValue: 3},
		entity.Reply{Text: "done", TaskStatus: entity.TaskStatusInProgress},
	)
	f.math.On("Solve", mock.Anything, "x^2 = 4").Return([]entity.Root{{Real: -2}, {Real: 2}}, nil)
	f.math.On("Differentiate", mock.Anything, "x^2").Return("2*x", nil)
	f.math.On("Evaluate", mock.Anything, "x^2", 3.0).Return(9.0, nil)

	_, err := f.agent.Chat(context.Background(), "do everything")
	require.NoError(t, err)

	// 1 user + 3 tools * 2 + 1 reply
	assert.Len(t, f.agent.History(), 8)
	last := f.agent.History()[7]
	assert.Equal(t, entity.RoleAssistant, last.Role)
}

func TestAgent_CompactionFiresOnCompletedReply(t *testing.T) {
	f := newFixture(Options{ContextTrimming: true})
	f.decider.then(entity.Reply{Text: "Hello!", TaskStatus: entity.TaskStatusCompleted})

	summary := []entity.Turn{entity.NewSummaryTurn(entity.RoleAssistant, "Greeted the user.")}
	f.summarizer.On("Summarize", mock.Anything, mock.MatchedBy(func(req output.SummaryRequest) bool {
		return len(req.History) == 2
	})).Return(&output.SummaryResponse{Turns: summary, Usage: entity.Usage{Calls: 1, TotalTokens: 30}}, nil).Once()

	reply, err := f.agent.Chat(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "Hello!", reply)

	history := f.agent.History()
	require.Len(t, history, 1)
	assert.Equal(t, "Greeted the user.", history[0].Message)
	assert.Equal(t, 2, f.agent.Usage().Calls)
	assert.Equal(t, 42, f.agent.Usage().TotalTokens)
	f.summarizer.AssertExpectations(t)
}

func TestAgent_CompactionConditions(t *testing.T) {
	tests := []struct {
		name     string
		trimming bool
		status   entity.TaskStatus
		want     bool
	}{
		{name: "enabled and completed", trimming: true, status: entity.TaskStatusCompleted, want: true},
		{name: "enabled and in progress", trimming: true, status: entity.TaskStatusInProgress},
		{name: "disabled and completed", trimming: false, status: entity.TaskStatusCompleted},
		{name: "enabled and unknown status", trimming: true, status: "DONE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(Options{ContextTrimming: tt.trimming})
			f.decider.then(entity.Reply{Text: "ok", TaskStatus: tt.status})
			f.summarizer.On("Summarize", mock.Anything, mock.Anything).
				Return(&output.SummaryResponse{Turns: []entity.Turn{entity.NewSummaryTurn(entity.RoleUser, "s")}}, nil).Maybe()

			_, err := f.agent.Chat(context.Background(), "hi")
			require.NoError(t, err)

			if tt.want {
				f.summarizer.AssertNumberOfCalls(t, "Summarize", 1)
				assert.Len(t, f.agent.History(), 1)
			} else {
				f.summarizer.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
				assert.Len(t, f.agent.History(), 2)
			}
		})
	}
}

func TestAgent_CompactionNeverFiresForToolDecisions(t *testing.T) {
	f := newFixture(Options{ContextTrimming: true})
	f.decider.then(
		entity.SolveQuadratic{Equation: "x^2 = 4"},
		entity.Reply{Text: "roots", TaskStatus: entity.TaskStatusInProgress},
	)
	f.math.On("Solve", mock.Anything, "x^2 = 4").Return([]entity.Root{{Real: -2}, {Real: 2}}, nil)

	_, err := f.agent.Chat(context.Background(), "solve")
	require.NoError(t, err)

	// The tool result carries COMPLETED but only replies can trigger compaction.
	f.summarizer.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
	assert.Len(t, f.agent.History(), 4)
}

func TestAgent_CompactionIsStableOnSingleEntry(t *testing.T) {
	f := newFixture(Options{ContextTrimming: true})
	summary := entity.NewSummaryTurn(entity.RoleAssistant, "Solved x^2 = 4.")

	f.agent.history.Replace([]entity.Turn{summary})
	f.summarizer.On("Summarize", mock.Anything, output.SummaryRequest{History: []string{summary.String()}}).
		Return(&output.SummaryResponse{Turns: []entity.Turn{summary}}, nil).Twice()

	require.NoError(t, f.agent.compact(context.Background()))
	first := f.agent.History()
	require.NoError(t, f.agent.compact(context.Background()))

	assert.Equal(t, first, f.agent.History())
	f.summarizer.AssertExpectations(t)
}

func TestAgent_CompactionFailurePropagates(t *testing.T) {
	f := newFixture(Options{ContextTrimming: true})
	f.decider.then(entity.Reply{Text: "bye", TaskStatus: entity.TaskStatusCompleted})
	boom := errors.New("summary service down")
	f.summarizer.On("Summarize", mock.Anything, mock.Anything).Return(nil, boom)

	_, err := f.agent.Chat(context.Background(), "thanks")
	require.ErrorIs(t, err, boom)

	// The reply stays recorded and nothing is discarded.
	assert.Len(t, f.agent.History(), 2)
}

func TestAgent_EvaluationErrorKeepsIntentOnly(t *testing.T) {
	f := newFixture(Options{})
	f.decider.then(entity.EvaluateQuadratic{Equation: "sqrt(x)", XValue: -1})
	evalErr := &entity.EvaluationError{Equation: "sqrt(x)", X: -1, Reason: "not a real number"}
	f.math.On("Evaluate", mock.Anything, "sqrt(x)", -1.0).Return(0.0, evalErr)

	_, err := f.agent.Chat(context.Background(), "sqrt(x) at -1")
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrEvaluation)

	history := f.agent.History()
	require.Len(t, history, 2)
	assert.Equal(t, entity.ToolQuadraticEvaluator, history[1].ToolName)
	assert.Equal(t, entity.RoleAssistant, history[1].Role)

	require.Len(t, f.observer.events, 2)
	assert.True(t, f.observer.events[1].isError)
}

func TestAgent_ParseErrorAbortsTurn(t *testing.T) {
	f := newFixture(Options{})
	f.decider.then(entity.SolveQuadratic{Equation: "x^^2"})
	f.math.On("Solve", mock.Anything, "x^^2").Return(nil, &entity.ParseError{Input: "x^^2", Reason: "unexpected token"})

	_, err := f.agent.Chat(context.Background(), "solve x^^2")
	assert.ErrorIs(t, err, entity.ErrParse)
	assert.Len(t, f.agent.History(), 2)
	f.decider.AssertNumberOfCalls(t, "Decide", 1)
}

func TestAgent_UnknownDecision(t *testing.T) {
	f := newFixture(Options{})

	_, done, err := f.agent.Dispatch(context.Background(), unsupported{})
	require.Error(t, err)
	assert.False(t, done)
	assert.ErrorIs(t, err, entity.ErrUnknownTool)
	assert.Contains(t, err.Error(), "cubic_solver")
	assert.Equal(t, 0, f.agent.history.Len())
}

func TestAgent_DecisionErrorPropagates(t *testing.T) {
	f := newFixture(Options{})
	boom := errors.New("llm unreachable")
	f.decider.On("Decide", mock.Anything, mock.Anything).Return(nil, boom)

	_, err := f.agent.Chat(context.Background(), "hi")
	assert.ErrorIs(t, err, boom)
	assert.Len(t, f.agent.History(), 1)
}

func TestAgent_MaxTurns(t *testing.T) {
	f := newFixture(Options{MaxTurns: 2})
	f.decider.then(
		entity.DifferentiateQuadratic{Equation: "x^2"},
		entity.DifferentiateQuadratic{Equation: "x^2"},
	)
	f.math.On("Differentiate", mock.Anything, "x^2").Return("2*x", nil)

	_, err := f.agent.Chat(context.Background(), "loop forever")
	require.ErrorIs(t, err, entity.ErrMaxTurnsExceeded)
	f.decider.AssertNumberOfCalls(t, "Decide", 2)

	// 1 user + 2 tools * 2 + the closing assistant record
	history := f.agent.History()
	require.Len(t, history, 6)
	last := history[5]
	assert.Equal(t, entity.RoleAssistant, last.Role)
	assert.Equal(t, entity.ToolMessageToUser, last.ToolName)
	assert.Equal(t, entity.TaskStatusInProgress, last.TaskStatus())
	assert.Contains(t, last.Message, "Stopped after 2 steps")
	f.summarizer.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
}

func TestAgent_CancelledContext(t *testing.T) {
	f := newFixture(Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.agent.Chat(ctx, "hi")
	assert.ErrorIs(t, err, context.Canceled)
	f.decider.AssertNotCalled(t, "Decide", mock.Anything, mock.Anything)
}

func TestAgent_HistoryIsACopy(t *testing.T) {
	f := newFixture(Options{})
	f.decider.then(entity.Reply{Text: "hi", TaskStatus: entity.TaskStatusInProgress})

	_, err := f.agent.Chat(context.Background(), "hello")
	require.NoError(t, err)

	history := f.agent.History()
	history[1].Metadata[entity.MetaTaskStatus] = "TAMPERED"
	assert.Equal(t, entity.TaskStatusInProgress, f.agent.History()[1].TaskStatus())
}

func TestAgent_IDsAreUnique(t *testing.T) {
	a := newFixture(Options{}).agent
	b := newFixture(Options{}).agent
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "9.0", formatNumber(9))
	assert.Equal(t, "-2.0", formatNumber(-2))
	assert.Equal(t, "2.5", formatNumber(2.5))
	assert.Equal(t, "0.1", formatNumber(0.1))
	assert.Equal(t, "1e+20", formatNumber(1e20))
}
