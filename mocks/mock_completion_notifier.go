package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"runsheet/internal/domain"
)

// MockCompletionNotifier is a mock implementation of port.CompletionNotifier.
type MockCompletionNotifier struct {
	mock.Mock
}

func (m *MockCompletionNotifier) OnComplete(ctx context.Context, summary *domain.OwnershipSummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}
