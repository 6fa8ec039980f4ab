package testutils

import (
	"context"

	"github.com/smartmealplanner/backend/internal/ports/outbound"
	"github.com/stretchr/testify/mock"
)

// MockCompletionClient provides a mock implementation of outbound.CompletionClient
type MockCompletionClient struct {
	mock.Mock
}

func NewMockCompletionClient() *MockCompletionClient {
	return &MockCompletionClient{}
}

// Complete returns the configured response for the request
func (m *MockCompletionClient) Complete(ctx context.Context, req outbound.CompletionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockCompletionClient) Provider() string {
	return "mock"
}

// LastRequest returns the request passed to the most recent Complete call
func (m *MockCompletionClient) LastRequest() outbound.CompletionRequest {
	calls := m.Calls
	if len(calls) == 0 {
		return outbound.CompletionRequest{}
	}
	return calls[len(calls)-1].Arguments.Get(1).(outbound.CompletionRequest)
}
