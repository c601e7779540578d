package userinteraction

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"math-agent/internal/application/port/output"
	"math-agent/internal/domain/entity"

	"github.com/fatih/color"
)

var _ output.UserInteractionPort = (*ConsoleUserInteraction)(nil)

const helpText = `
Available capabilities:
- Solve quadratic equations (e.g., "Solve x^2 - 5x + 6 = 0")
- Find derivatives of quadratic equations (e.g., "What is the derivative of 2x^2 + 4x - 6?")
- Evaluate quadratic equations (e.g., "Evaluate 3x^2 - 2x + 1 when x = 2")
- Ask general math questions`

type ConsoleUserInteraction struct {
	reader *bufio.Reader
	out    io.Writer
	// pending carries the result of a read that outlived a cancelled
	// ReadLine; the next call picks it up.
	pending chan lineResult
}

type lineResult struct {
	line string
	err  error
}

func NewConsoleUserInteraction() *ConsoleUserInteraction {
	return newConsole(os.Stdin, color.Output)
}

func newConsole(in io.Reader, out io.Writer) *ConsoleUserInteraction {
	return &ConsoleUserInteraction{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// ReadLine returns io.EOF once input is exhausted and nothing was typed,
// and ctx.Err() as soon as ctx is done, even while the read is blocked.
func (u *ConsoleUserInteraction) ReadLine(ctx context.Context, prompt string) (string, error) {
	color.New(color.FgCyan, color.Bold).Fprint(u.out, prompt)

	if u.pending == nil {
		u.pending = make(chan lineResult, 1)
		go func(ch chan<- lineResult) {
			line, err := u.reader.ReadString('\n')
			ch <- lineResult{line: line, err: err}
		}(u.pending)
	}

	var res lineResult
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res = <-u.pending:
		u.pending = nil
	}

	if res.err != nil {
		if errors.Is(res.err, io.EOF) && res.line != "" {
			return strings.TrimSpace(res.line), nil
		}
		if errors.Is(res.err, io.EOF) {
			return "", io.EOF
		}
		return "", fmt.Errorf("failed to read user input: %w", res.err)
	}

	return strings.TrimSpace(res.line), nil
}

func (u *ConsoleUserInteraction) ShowBanner(ctx context.Context) {
	bold := color.New(color.Bold)
	bold.Fprintln(u.out, "=== Math Agent Interactive Chat ===")
	fmt.Fprintln(u.out, "Type 'exit', 'quit', or 'q' to end the session")
	fmt.Fprintln(u.out, "Type 'help' for information about available capabilities")
	bold.Fprintln(u.out, strings.Repeat("=", 36))
}

func (u *ConsoleUserInteraction) ShowHelp(ctx context.Context) {
	fmt.Fprintln(u.out, helpText)
}

func (u *ConsoleUserInteraction) ShowReply(ctx context.Context, reply string) {
	color.New(color.FgGreen, color.Bold).Fprint(u.out, "\nAgent: ")
	fmt.Fprintln(u.out, reply)
}

func (u *ConsoleUserInteraction) ShowError(ctx context.Context, err error) {
	color.New(color.FgRed).Fprintf(u.out, "\nAn error occurred: %v\n", err)
	color.New(color.Faint).Fprintln(u.out, "Please try again or type 'exit' to quit.")
}

func (u *ConsoleUserInteraction) ShowToolStart(ctx context.Context, toolName entity.ToolName, arguments map[string]any) {
	icon, name := getToolDisplay(toolName)

	yellow := color.New(color.FgYellow, color.Bold)
	yellow.Fprintf(u.out, "%s Calling %s tool", icon, name)

	if summary := formatToolArguments(toolName, arguments); summary != "" {
		fmt.Fprintf(u.out, " %s", summary)
	}
	fmt.Fprintln(u.out)
}

func (u *ConsoleUserInteraction) ShowToolResult(ctx context.Context, toolName entity.ToolName, result string, isError bool) {
	if isError {
		red := color.New(color.FgRed)
		red.Fprint(u.out, "❌ Error: ")

		dim := color.New(color.Faint)
		dim.Fprintln(u.out, truncate(result, 300))
		return
	}

	green := color.New(color.FgGreen)
	green.Fprintf(u.out, "✓ %s\n", truncate(result, 200))
}

func getToolDisplay(toolName entity.ToolName) (string, string) {
	displays := map[entity.ToolName][2]string{
		entity.ToolQuadraticSolver:     {"🧮", "quadratic equation solver"},
		entity.ToolQuadraticDerivative: {"📈", "quadratic derivative"},
		entity.ToolQuadraticEvaluator:  {"🔢", "quadratic evaluator"},
	}

	if display, ok := displays[toolName]; ok {
		return display[0], display[1]
	}
	return "🔧", toolName.String()
}

func formatToolArguments(toolName entity.ToolName, args map[string]any) string {
	equation, _ := args[entity.MetaEquation].(string)
	if equation == "" {
		return ""
	}

	switch toolName {
	case entity.ToolQuadraticEvaluator:
		return fmt.Sprintf("with equation: %s at x = %v", equation, args[entity.MetaXValue])
	default:
		return fmt.Sprintf("with equation: %s", equation)
	}
}

// truncate keeps at most maxLen runes.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
