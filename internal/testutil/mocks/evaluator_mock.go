package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/chessreview/internal/review"
)

// MockEvaluator is a mock implementation of review.Evaluator
type MockEvaluator struct {
	mock.Mock
}

func (m *MockEvaluator) Evaluate(ctx context.Context, fen string) (review.EvaluationSample, error) {
	args := m.Called(ctx, fen)
	return args.Get(0).(review.EvaluationSample), args.Error(1)
}
