package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"runsheet/internal/domain"
)

// MockMatchConfirmer is a mock implementation of port.MatchConfirmer.
type MockMatchConfirmer struct {
	mock.Mock
}

func (m *MockMatchConfirmer) Confirm(ctx context.Context, candidates []domain.GranteeMatches) (*domain.MatchConfirmation, error) {
	args := m.Called(ctx, candidates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MatchConfirmation), args.Error(1)
}
