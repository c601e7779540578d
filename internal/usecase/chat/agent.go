// Package chat runs the conversation loop: it asks the decision service for
// the next action, dispatches it, and records every step in the history.
package chat

import (
	"context"
	"fmt"

	"math-agent/internal/application/port/input"
	"math-agent/internal/application/port/output"
	"math-agent/internal/domain/entity"

	"github.com/google/uuid"
)

var _ input.ChatExecutor = (*Agent)(nil)

type Options struct {
	// ContextTrimming replaces the history with a summary after each
	// completed reply.
	ContextTrimming bool
	// MaxTurns caps the decisions made for a single message. Zero or less
	// means no cap.
	MaxTurns int
}

type Agent struct {
	id         string
	opts       Options
	history    *entity.History
	usage      entity.Usage
	decider    output.DecisionService
	summarizer output.Summarizer
	math       output.MathPort
	observer   output.ToolObserver
	logger     output.LoggerPort
}

func New(
	decider output.DecisionService,
	summarizer output.Summarizer,
	math output.MathPort,
	observer output.ToolObserver,
	logger output.LoggerPort,
	opts Options,
) *Agent {
	if observer == nil {
		observer = nopObserver{}
	}

	id := uuid.NewString()
	return &Agent{
		id:         id,
		opts:       opts,
		history:    entity.NewHistory(),
		decider:    decider,
		summarizer: summarizer,
		math:       math,
		observer:   observer,
		logger: logger.WithFields(map[string]any{
			"agent_id":         id,
			"context_trimming": opts.ContextTrimming,
			"max_turns":        opts.MaxTurns,
		}),
	}
}

func (a *Agent) ID() string {
	return a.id
}

// Chat appends the message to the history and loops over decisions until
// one of them is a reply, which is returned.
func (a *Agent) Chat(ctx context.Context, message string) (string, error) {
	a.history.Append(entity.NewUserTurn(message))
	a.logger.Info("User message received", "historyLen", a.history.Len())

	for turn := 1; a.opts.MaxTurns <= 0 || turn <= a.opts.MaxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		log := a.logger.WithField("turn", turn)
		log.Debug("Requesting decision", "historyLen", a.history.Len())
		resp, err := a.decider.Decide(ctx, output.DecisionRequest{History: a.history.Projection()})
		if err != nil {
			return "", fmt.Errorf("decide next action: %w", err)
		}
		a.usage.Add(resp.Usage)

		record, done, err := a.Dispatch(ctx, resp.Decision)
		if err != nil {
			return "", err
		}
		if done {
			return record.Message, nil
		}
	}

	a.logger.Warn("Turn limit reached", "maxTurns", a.opts.MaxTurns)
	if last, ok := a.history.Last(); ok && last.Role != entity.RoleAssistant {
		a.history.Append(entity.NewReplyTurn(
			fmt.Sprintf("Stopped after %d steps without an answer.", a.opts.MaxTurns),
			entity.TaskStatusInProgress,
		))
	}
	return "", fmt.Errorf("%w: no reply after %d decisions", entity.ErrMaxTurnsExceeded, a.opts.MaxTurns)
}

// Usage returns the LLM usage accumulated by this agent so far.
func (a *Agent) Usage() entity.Usage {
	return a.usage
}

func (a *Agent) History() []entity.Turn {
	return a.history.Turns()
}

type nopObserver struct{}

func (nopObserver) ShowToolStart(context.Context, entity.ToolName, map[string]any) {}
func (nopObserver) ShowToolResult(context.Context, entity.ToolName, string, bool)  {}
