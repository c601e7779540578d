package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"math-agent/internal/application/port/output"
	"math-agent/internal/domain/entity"

	"github.com/sashabaranov/go-openai"
)

var _ output.LLMPort = (*OpenRouterAdapter)(nil)

type OpenRouterAdapter struct {
	client *openai.Client
	model  string
	logger output.LoggerPort
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Logger  output.LoggerPort
	// HTTPDebug logs every request body and response status.
	HTTPDebug bool
}

func DefaultConfig(apiKey, model string) Config {
	return Config{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: "https://openrouter.ai/api/v1",
	}
}

type loggingTransport struct {
	base   http.RoundTripper
	logger output.LoggerPort
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var bodyBytes []byte
	if req.Body != nil {
		bodyBytes, _ = io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
	}

	var requestData map[string]interface{}
	if len(bodyBytes) > 0 {
		_ = json.Unmarshal(bodyBytes, &requestData)
	}

	t.logger.Debug("HTTP Request",
		"method", req.Method,
		"url", req.URL.String(),
		"body", requestData,
	)

	resp, err := t.base.RoundTrip(req)

	if resp != nil {
		t.logger.Debug("HTTP Response",
			"status", resp.Status,
			"statusCode", resp.StatusCode,
		)
	}

	return resp, err
}

func NewOpenRouterAdapter(cfg Config) *OpenRouterAdapter {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	if cfg.Logger != nil && cfg.HTTPDebug {
		config.HTTPClient = &http.Client{
			Transport: &loggingTransport{
				base:   http.DefaultTransport,
				logger: cfg.Logger,
			},
		}
	}

	return &OpenRouterAdapter{
		client: openai.NewClientWithConfig(config),
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

func (a *OpenRouterAdapter) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	request := openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    convertMessages(req.Messages),
		Temperature: req.Temperature,
	}
	if len(req.Tools) > 0 {
		request.Tools = convertTools(req.Tools)
		request.ToolChoice = toolChoice(req.ToolChoice)
	}

	if a.logger != nil {
		a.logger.Debug("Creating chat completion",
			"model", a.model,
			"messagesCount", len(request.Messages),
			"toolsCount", len(request.Tools),
		)
	}

	resp, err := a.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	return &output.ChatResponse{
		Message: convertResponseMessage(resp.Choices[0].Message),
		Usage:   convertUsage(resp.Usage),
	}, nil
}

func toolChoice(choice output.ToolChoice) string {
	if choice == "" {
		return string(output.ToolChoiceAuto)
	}
	return string(choice)
}

func convertMessages(messages []entity.Message) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		oaiMsg := openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		}

		if msg.ToolCallID != "" {
			oaiMsg.ToolCallID = msg.ToolCallID
		}
		if msg.Name != "" {
			oaiMsg.Name = msg.Name
		}

		for _, tc := range msg.ToolCalls {
			oaiMsg.ToolCalls = append(oaiMsg.ToolCalls, openai.ToolCall{
				ID:   tc.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      tc.Name.String(),
					Arguments: tc.Arguments,
				},
			})
		}

		result = append(result, oaiMsg)
	}
	return result
}

func convertTools(tools []entity.ToolDefinition) []openai.Tool {
	result := make([]openai.Tool, 0, len(tools))
	for _, t := range tools {
		result = append(result, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name.String(),
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}
	return result
}

func convertResponseMessage(msg openai.ChatCompletionMessage) entity.Message {
	result := entity.Message{
		Role:    entity.MessageRole(msg.Role),
		Content: msg.Content,
	}

	for _, tc := range msg.ToolCalls {
		result.ToolCalls = append(result.ToolCalls, entity.ToolCall{
			ID:        tc.ID,
			Name:      entity.ToolName(tc.Function.Name),
			Arguments: tc.Function.Arguments,
		})
	}

	return result
}

func convertUsage(usage openai.Usage) entity.Usage {
	return entity.Usage{
		Calls:            1,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      usage.TotalTokens,
	}
}
