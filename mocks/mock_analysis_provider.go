package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"runsheet/internal/port"
)

// MockAnalysisProvider is a mock implementation of port.AnalysisProvider.
type MockAnalysisProvider struct {
	mock.Mock
}

func (m *MockAnalysisProvider) Analyze(ctx context.Context, req port.AnalysisRequest) (*port.AnalysisOutput, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.AnalysisOutput), args.Error(1)
}
