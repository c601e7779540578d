package input

import (
	"context"

	"math-agent/internal/domain/entity"
)

type ChatExecutor interface {
	Chat(ctx context.Context, message string) (string, error)
	Usage() entity.Usage
	History() []entity.Turn
}
