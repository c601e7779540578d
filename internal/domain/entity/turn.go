package entity

import (
	"fmt"
	"maps"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	MetaTaskStatus = "task_status"
	MetaEquation   = "equation"
	MetaXValue     = "x_value"
	MetaResult     = "result"
	MetaSummary    = "summary"
)

// Turn is one record of conversation history. Values are copied in and out
// of History, so a Turn held by a caller never aliases the stored one.
type Turn struct {
	Role     MessageRole    `json:"role"`
	Message  string         `json:"msg"`
	ToolName ToolName       `json:"tool_name,omitempty"`
	ToolArgs map[string]any `json:"tool_args,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func NewUserTurn(msg string) Turn {
	return Turn{Role: RoleUser, Message: msg}
}

func NewReplyTurn(text string, status TaskStatus) Turn {
	return Turn{
		Role:     RoleAssistant,
		Message:  text,
		ToolName: ToolMessageToUser,
		Metadata: map[string]any{MetaTaskStatus: status.String()},
	}
}

// NewIntentTurn records that the assistant decided to call a tool.
func NewIntentTurn(tool ToolName, msg string, args map[string]any) Turn {
	return Turn{
		Role:     RoleAssistant,
		Message:  msg,
		ToolName: tool,
		ToolArgs: maps.Clone(args),
	}
}

// NewResultTurn records the output of a tool call.
func NewResultTurn(tool ToolName, msg string, meta map[string]any) Turn {
	return Turn{
		Role:     RoleTool,
		Message:  msg,
		ToolName: tool,
		Metadata: maps.Clone(meta),
	}
}

func NewSummaryTurn(role MessageRole, msg string) Turn {
	return Turn{
		Role:     role,
		Message:  msg,
		Metadata: map[string]any{MetaSummary: true},
	}
}

func (t Turn) TaskStatus() TaskStatus {
	if s, ok := t.Metadata[MetaTaskStatus].(string); ok {
		return TaskStatus(s)
	}
	return ""
}

func (t Turn) clone() Turn {
	t.ToolArgs = maps.Clone(t.ToolArgs)
	t.Metadata = maps.Clone(t.Metadata)
	return t
}

// String renders the turn the way it is shown to the reasoning service.
func (t Turn) String() string {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Sprintf("{role: %s, msg: %s}", t.Role, t.Message)
	}
	return string(data)
}
