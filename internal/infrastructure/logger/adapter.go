package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"math-agent/internal/application/port/output"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ output.LoggerPort = (*LoggerAdapter)(nil)

type Config struct {
	Dir   string
	Name  string
	Level string
}

func DefaultConfig(name string) Config {
	return Config{
		Dir:   "log",
		Name:  name,
		Level: "info",
	}
}

// LoggerAdapter writes JSON lines to a per-session file. Loggers derived with
// WithField share the file; only the root one closes it.
type LoggerAdapter struct {
	sugar *zap.SugaredLogger
	file  *os.File
	root  bool
}

func NewLoggerAdapter(cfg Config) (*LoggerAdapter, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.log", time.Now().Format("2006-01-02_15-04-05"), sanitize(cfg.Name))
	file, err := os.Create(filepath.Join(cfg.Dir, filename))
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.MessageKey = "message"
	encoderCfg.EncodeTime = zapcore.RFC3339TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(file), level)

	return &LoggerAdapter{
		sugar: zap.New(core).Sugar(),
		file:  file,
		root:  true,
	}, nil
}

// NewNopLogger discards everything.
func NewNopLogger() *LoggerAdapter {
	return &LoggerAdapter{sugar: zap.NewNop().Sugar()}
}

func (l *LoggerAdapter) Debug(msg string, args ...any) {
	l.sugar.Debugw(msg, args...)
}

func (l *LoggerAdapter) Info(msg string, args ...any) {
	l.sugar.Infow(msg, args...)
}

func (l *LoggerAdapter) Warn(msg string, args ...any) {
	l.sugar.Warnw(msg, args...)
}

func (l *LoggerAdapter) Error(msg string, args ...any) {
	l.sugar.Errorw(msg, args...)
}

func (l *LoggerAdapter) WithField(key string, value any) output.LoggerPort {
	return &LoggerAdapter{
		sugar: l.sugar.With(key, value),
		file:  l.file,
	}
}

func (l *LoggerAdapter) WithFields(fields map[string]any) output.LoggerPort {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, len(fields)*2)
	for _, k := range keys {
		args = append(args, k, fields[k])
	}

	return &LoggerAdapter{
		sugar: l.sugar.With(args...),
		file:  l.file,
	}
}

func (l *LoggerAdapter) Close() error {
	if !l.root || l.file == nil {
		return nil
	}
	_ = l.sugar.Sync()
	return l.file.Close()
}

func sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, s)
	s = strings.Trim(s, "_")
	if s == "" {
		return "session"
	}
	if len(s) > 60 {
		s = s[:60]
	}
	return s
}
