package chat

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"math-agent/internal/domain/entity"
)

const (
	solveIntent         = "I need to solve this quadratic equation"
	differentiateIntent = "I need to find the derivative of this quadratic equation"
	evaluateIntent      = "I need to evaluate this quadratic equation at a specific x value"
)

// Dispatch executes one decision and appends its records to the history.
// It returns the last record written and whether the loop should stop.
// A failing tool leaves its intent record in place and writes no result.
func (a *Agent) Dispatch(ctx context.Context, decision entity.Decision) (entity.Turn, bool, error) {
	switch d := decision.(type) {
	case entity.Reply:
		return a.reply(ctx, d)
	case entity.SolveQuadratic:
		return a.solve(ctx, d)
	case entity.DifferentiateQuadratic:
		return a.differentiate(ctx, d)
	case entity.EvaluateQuadratic:
		return a.evaluate(ctx, d)
	default:
		name := "<nil>"
		if decision != nil {
			name = decision.ToolName().String()
		}
		a.logger.Error("Unknown tool type requested", "tool", name)
		return entity.Turn{}, false, &entity.UnknownToolError{Name: name}
	}
}

func (a *Agent) reply(ctx context.Context, d entity.Reply) (entity.Turn, bool, error) {
	record := entity.NewReplyTurn(d.Text, d.TaskStatus)
	a.history.Append(record)

	if a.opts.ContextTrimming && d.TaskStatus.IsCompleted() {
		if err := a.compact(ctx); err != nil {
			return record, true, err
		}
	}
	return record, true, nil
}

func (a *Agent) solve(ctx context.Context, d entity.SolveQuadratic) (entity.Turn, bool, error) {
	args := map[string]any{entity.MetaEquation: d.Equation}
	a.startTool(ctx, d.ToolName(), solveIntent, args)

	roots, err := a.math.Solve(ctx, d.Equation)
	if err != nil {
		return a.toolFailed(ctx, d.ToolName(), err)
	}

	result := entity.FormatRoots(roots)
	return a.finishTool(ctx, d.ToolName(),
		fmt.Sprintf("Solved equation: %s. Roots: %s", d.Equation, result),
		map[string]any{entity.MetaEquation: d.Equation, entity.MetaResult: result})
}

func (a *Agent) differentiate(ctx context.Context, d entity.DifferentiateQuadratic) (entity.Turn, bool, error) {
	args := map[string]any{entity.MetaEquation: d.Equation}
	a.startTool(ctx, d.ToolName(), differentiateIntent, args)

	result, err := a.math.Differentiate(ctx, d.Equation)
	if err != nil {
		return a.toolFailed(ctx, d.ToolName(), err)
	}

	return a.finishTool(ctx, d.ToolName(),
		fmt.Sprintf("Derivative of equation: %s. Result: %s", d.Equation, result),
		map[string]any{entity.MetaEquation: d.Equation, entity.MetaResult: result})
}

func (a *Agent) evaluate(ctx context.Context, d entity.EvaluateQuadratic) (entity.Turn, bool, error) {
	args := map[string]any{entity.MetaEquation: d.Equation, entity.MetaXValue: d.XValue}
	a.startTool(ctx, d.ToolName(), evaluateIntent, args)

	value, err := a.math.Evaluate(ctx, d.Equation, d.XValue)
	if err != nil {
		return a.toolFailed(ctx, d.ToolName(), err)
	}

	result := formatNumber(value)
	return a.finishTool(ctx, d.ToolName(),
		fmt.Sprintf("Evaluated equation: %s at x = %s. Result: %s", d.Equation, formatNumber(d.XValue), result),
		map[string]any{entity.MetaEquation: d.Equation, entity.MetaXValue: d.XValue, entity.MetaResult: result})
}

func (a *Agent) startTool(ctx context.Context, tool entity.ToolName, intent string, args map[string]any) {
	a.history.Append(entity.NewIntentTurn(tool, intent, args))
	a.logger.Info("Executing tool", "name", tool, "args", args)
	a.observer.ShowToolStart(ctx, tool, args)
}

func (a *Agent) finishTool(ctx context.Context, tool entity.ToolName, msg string, meta map[string]any) (entity.Turn, bool, error) {
	meta[entity.MetaTaskStatus] = entity.TaskStatusCompleted.String()
	record := entity.NewResultTurn(tool, msg, meta)
	a.history.Append(record)

	a.logger.Debug("Tool completed", "name", tool, "result", meta[entity.MetaResult])
	a.observer.ShowToolResult(ctx, tool, fmt.Sprint(meta[entity.MetaResult]), false)
	return record, false, nil
}

func (a *Agent) toolFailed(ctx context.Context, tool entity.ToolName, err error) (entity.Turn, bool, error) {
	a.logger.Error("Tool execution failed", "name", tool, "error", err)
	a.observer.ShowToolResult(ctx, tool, err.Error(), true)
	return entity.Turn{}, false, fmt.Errorf("%s: %w", tool, err)
}

// formatNumber prints whole numbers with one decimal place ("9.0") and
// everything else in shortest form.
func formatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e16 {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
