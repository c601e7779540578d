package di

import (
	"fmt"

	"math-agent/internal/application/port/output"
	"math-agent/internal/application/service"
	"math-agent/internal/infrastructure/llm/openrouter"
	"math-agent/internal/infrastructure/logger"
	"math-agent/internal/infrastructure/reasoning"
	"math-agent/internal/infrastructure/symbolic"
	"math-agent/internal/infrastructure/userinteraction"
	"math-agent/internal/usecase/chat"
)

type Container struct {
	LLM         output.LLMPort
	Logger      output.LoggerPort
	Tools       output.ToolRegistry
	Decider     output.DecisionService
	Summarizer  output.Summarizer
	Math        output.MathPort
	Interaction output.UserInteractionPort
}

type Config struct {
	Name             string
	OpenRouterAPIKey string
	OpenRouterModel  string
	OpenRouterURL    string
	HTTPDebug        bool
	LogDir           string
	LogLevel         string
}

func NewContainer(cfg Config) (*Container, error) {
	logCfg := logger.DefaultConfig(cfg.Name)
	if cfg.LogDir != "" {
		logCfg.Dir = cfg.LogDir
	}
	if cfg.LogLevel != "" {
		logCfg.Level = cfg.LogLevel
	}
	log, err := logger.NewLoggerAdapter(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	llmCfg := openrouter.DefaultConfig(cfg.OpenRouterAPIKey, cfg.OpenRouterModel)
	if cfg.OpenRouterURL != "" {
		llmCfg.BaseURL = cfg.OpenRouterURL
	}
	llmCfg.Logger = log
	llmCfg.HTTPDebug = cfg.HTTPDebug
	llm := openrouter.NewOpenRouterAdapter(llmCfg)

	return wire(llm, log, userinteraction.NewConsoleUserInteraction())
}

func wire(llm output.LLMPort, log output.LoggerPort, ui output.UserInteractionPort) (*Container, error) {
	tools, err := service.NewMathToolRegistry()
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to build tool registry: %w", err)
	}
	summaryTools, err := service.NewSummaryToolRegistry()
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to build summary registry: %w", err)
	}

	decider, err := reasoning.NewDecisionService(llm, tools, log)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to create decision service: %w", err)
	}

	return &Container{
		LLM:         llm,
		Logger:      log,
		Tools:       tools,
		Decider:     decider,
		Summarizer:  reasoning.NewSummarizer(llm, summaryTools, log),
		Math:        symbolic.NewEngine(log),
		Interaction: ui,
	}, nil
}

// NewAgent returns a fresh agent with its own history and usage.
func (c *Container) NewAgent(opts chat.Options) *chat.Agent {
	return chat.New(c.Decider, c.Summarizer, c.Math, c.Interaction, c.Logger, opts)
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}
