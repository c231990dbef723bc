package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueAnalysis(ctx context.Context, gameID int64) error {
	args := m.Called(ctx, gameID)
	return args.Error(0)
}

func (m *MockJobQueue) EnqueueImport(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}
