package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_MatchSentinels(t *testing.T) {
	var err error = &ParseError{Input: "x^", Reason: "unexpected end of input"}
	assert.True(t, errors.Is(fmt.Errorf("solve: %w", err), ErrParse))
	assert.False(t, errors.Is(err, ErrEvaluation))

	err = &EvaluationError{Equation: "sqrt(x)", X: -1, Reason: "result is not real"}
	assert.True(t, errors.Is(err, ErrEvaluation))
	assert.Contains(t, err.Error(), "x = -1")

	err = &UnknownToolError{Name: "launch_rocket"}
	assert.True(t, errors.Is(err, ErrUnknownTool))
	assert.Equal(t, "unknown tool type requested: launch_rocket", err.Error())
}

func TestRoot_String(t *testing.T) {
	assert.Equal(t, "-1 + sqrt(2)", Root{Real: 0.414, Exact: "-1 + sqrt(2)"}.String())
	assert.Equal(t, "2", Root{Real: 2}.String())
	assert.Equal(t, "1 - 2*I", Root{Real: 1, Imag: -2}.String())
	assert.Equal(t, "3*I", Root{Imag: 3}.String())
	assert.Equal(t, "[-3, -2]", FormatRoots([]Root{{Real: -3}, {Real: -2}}))
	assert.Equal(t, "[]", FormatRoots(nil))
}

func TestUsage_Add(t *testing.T) {
	var u Usage
	u.Add(Usage{Calls: 1, PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15})
	u.Add(Usage{Calls: 1, PromptTokens: 3, CompletionTokens: 2, TotalTokens: 5})
	assert.Equal(t, Usage{Calls: 2, PromptTokens: 13, CompletionTokens: 7, TotalTokens: 20}, u)
}
