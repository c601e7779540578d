package prompts

import (
	_ "embed"
)

//go:embed mathchat.txt
var MathChatPrompt string

//go:embed summarize.txt
var SummarizePrompt string
