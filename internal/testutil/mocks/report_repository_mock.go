package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/chessreview/internal/review"
)

// MockReportRepository is a mock implementation of repository.ReportRepository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) SaveReport(ctx context.Context, gameID int64, report *review.Report) error {
	args := m.Called(ctx, gameID, report)
	return args.Error(0)
}

func (m *MockReportRepository) GetReport(ctx context.Context, gameID int64) (*review.Report, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Report), args.Error(1)
}
