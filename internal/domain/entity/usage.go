package entity

import "fmt"

// Usage is a snapshot of LLM consumption for a single agent.
type Usage struct {
	Calls            int `json:"calls"`
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

func (u *Usage) Add(other Usage) {
	u.Calls += other.Calls
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
	u.TotalTokens += other.TotalTokens
}

func (u Usage) String() string {
	return fmt.Sprintf("calls=%d prompt_tokens=%d completion_tokens=%d total_tokens=%d",
		u.Calls, u.PromptTokens, u.CompletionTokens, u.TotalTokens)
}
