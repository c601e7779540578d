package reasoning

import (
	"context"

	"math-agent/internal/application/port/output"

	"github.com/stretchr/testify/mock"
)

type mockLLM struct {
	mock.Mock
}

func (m *mockLLM) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*output.ChatResponse)
	return resp, args.Error(1)
}
