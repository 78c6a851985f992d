package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"runsheet/internal/domain"
)

// MockCheckpointStore is a mock implementation of port.CheckpointStore.
type MockCheckpointStore struct {
	mock.Mock
}

func (m *MockCheckpointStore) Save(ctx context.Context, key string, cp *domain.Checkpoint) error {
	args := m.Called(ctx, key, cp)
	return args.Error(0)
}

func (m *MockCheckpointStore) Load(ctx context.Context, key string) (*domain.Checkpoint, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Checkpoint), args.Error(1)
}

func (m *MockCheckpointStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCheckpointStore) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
