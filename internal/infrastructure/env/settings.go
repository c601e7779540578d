package env

import (
	"math-agent/internal/application/port/output"
)

const (
	KeyAPIKey          = "OPENROUTER_API_KEY"
	KeyModel           = "OPENROUTER_MODEL_NAME"
	KeyBaseURL         = "OPENROUTER_BASE_URL"
	KeyContextTrimming = "CONTEXT_TRIMMING"
	KeyMaxTurns        = "MAX_TURNS"
	KeyLogDir          = "LOG_DIR"
	KeyLogLevel        = "LOG_LEVEL"
	KeyHTTPDebug       = "HTTP_DEBUG"

	DefaultBaseURL  = "https://openrouter.ai/api/v1"
	DefaultMaxTurns = 25
)

// Settings is everything the binaries read from the environment.
type Settings struct {
	APIKey          string
	Model           string
	BaseURL         string
	ContextTrimming bool
	MaxTurns        int
	LogDir          string
	LogLevel        string
	HTTPDebug       bool
}

func LoadSettings(cfg output.ConfigPort) Settings {
	return Settings{
		APIKey:          cfg.MustGet(KeyAPIKey),
		Model:           cfg.MustGet(KeyModel),
		BaseURL:         cfg.GetWithDefault(KeyBaseURL, DefaultBaseURL),
		ContextTrimming: cfg.GetBool(KeyContextTrimming, true),
		MaxTurns:        cfg.GetInt(KeyMaxTurns, DefaultMaxTurns),
		LogDir:          cfg.GetWithDefault(KeyLogDir, "log"),
		LogLevel:        cfg.GetWithDefault(KeyLogLevel, "info"),
		HTTPDebug:       cfg.GetBool(KeyHTTPDebug, false),
	}
}
