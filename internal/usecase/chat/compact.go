package chat

import (
	"context"
	"fmt"

	"math-agent/internal/application/port/output"
)

// compact replaces the whole history with the summarizer's version of it.
// On failure the history is left untouched.
func (a *Agent) compact(ctx context.Context) error {
	before := a.history.Len()

	resp, err := a.summarizer.Summarize(ctx, output.SummaryRequest{History: a.history.Projection()})
	if err != nil {
		return fmt.Errorf("compact history: %w", err)
	}
	a.usage.Add(resp.Usage)

	a.history.Replace(resp.Turns)
	a.logger.Info("History compacted", "before", before, "after", a.history.Len())
	return nil
}
