package output

import (
	"context"

	"math-agent/internal/domain/entity"
)

// DecisionService picks the next action for a conversation.
type DecisionService interface {
	Decide(ctx context.Context, req DecisionRequest) (*DecisionResponse, error)
}

type DecisionRequest struct {
	History []string
}

type DecisionResponse struct {
	Decision entity.Decision
	Usage    entity.Usage
}

// Summarizer condenses a history projection into a new, shorter history.
type Summarizer interface {
	Summarize(ctx context.Context, req SummaryRequest) (*SummaryResponse, error)
}

type SummaryRequest struct {
	History []string
}

type SummaryResponse struct {
	Turns []entity.Turn
	Usage entity.Usage
}
