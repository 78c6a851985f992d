package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"runsheet/internal/domain"
	"runsheet/internal/service"
)

// MockSessionService is a mock implementation of service.SessionService.
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Create(ctx context.Context, input *service.CreateSessionInput) (*domain.Session, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionService) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionService) List(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockSessionService) AnalyzeRow(ctx context.Context, id uuid.UUID, row int) (*domain.DocumentRow, error) {
	args := m.Called(ctx, id, row)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentRow), args.Error(1)
}

func (m *MockSessionService) CorrectRow(ctx context.Context, id uuid.UUID, row int, a *domain.Analysis) (*domain.DocumentRow, error) {
	args := m.Called(ctx, id, row, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentRow), args.Error(1)
}

func (m *MockSessionService) ApproveRow(ctx context.Context, id uuid.UUID, row int, input *service.ApproveInput) (*service.ApproveResult, error) {
	args := m.Called(ctx, id, row, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ApproveResult), args.Error(1)
}

func (m *MockSessionService) Navigate(ctx context.Context, id uuid.UUID, row int) (*domain.Session, error) {
	args := m.Called(ctx, id, row)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionService) OwnershipAt(ctx context.Context, id uuid.UUID, row int) (*domain.OngoingOwnership, error) {
	args := m.Called(ctx, id, row)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OngoingOwnership), args.Error(1)
}

func (m *MockSessionService) StartFresh(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionService) Summary(ctx context.Context, id uuid.UUID) (*domain.OwnershipSummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OwnershipSummary), args.Error(1)
}

func (m *MockSessionService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
