package services_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/vytor/chessreview/internal/errors"
	"github.com/vytor/chessreview/internal/models"
	"github.com/vytor/chessreview/internal/services"
	"github.com/vytor/chessreview/internal/testutil/mocks"
)

func TestGetGame_NotFound(t *testing.T) {
	gameRepo := new(mocks.MockGameRepository)
	gameRepo.On("GetByID", mock.Anything, int64(42)).Return(nil, sql.ErrNoRows)

	svc := services.NewGameService(gameRepo, new(mocks.MockJobQueue))
	_, err := svc.GetGame(context.Background(), 42)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}

func TestQueueGameAnalysis_EnqueuesPendingGame(t *testing.T) {
	gameRepo := new(mocks.MockGameRepository)
	jobQueue := new(mocks.MockJobQueue)
	game := &models.Game{ID: 7, AnalysisStatus: models.StatusPending}
	gameRepo.On("GetByID", mock.Anything, int64(7)).Return(game, nil)
	jobQueue.On("EnqueueAnalysis", mock.Anything, int64(7)).Return(nil)

	svc := services.NewGameService(gameRepo, jobQueue)
	err := svc.QueueGameAnalysis(context.Background(), 7)

	require.NoError(t, err)
	jobQueue.AssertExpectations(t)
}

func TestQueueGameAnalysis_SkipsCompletedGame(t *testing.T) {
	gameRepo := new(mocks.MockGameRepository)
	jobQueue := new(mocks.MockJobQueue)
	game := &models.Game{ID: 7, AnalysisStatus: models.StatusCompleted}
	gameRepo.On("GetByID", mock.Anything, int64(7)).Return(game, nil)

	svc := services.NewGameService(gameRepo, jobQueue)
	err := svc.QueueGameAnalysis(context.Background(), 7)

	require.NoError(t, err)
	jobQueue.AssertNotCalled(t, "EnqueueAnalysis", mock.Anything, mock.Anything)
}

func TestResumeAnalysis_QueuesEveryUnanalyzedGame(t *testing.T) {
	gameRepo := new(mocks.MockGameRepository)
	jobQueue := new(mocks.MockJobQueue)
	gameRepo.On("ListUnanalyzed", mock.Anything).Return([]models.Game{
		{ID: 1, AnalysisStatus: models.StatusPending},
		{ID: 2, AnalysisStatus: models.StatusFailed},
		{ID: 3, AnalysisStatus: models.StatusProcessing},
	}, nil)
	jobQueue.On("EnqueueAnalysis", mock.Anything, mock.Anything).Return(nil)

	svc := services.NewGameService(gameRepo, jobQueue)
	queued, err := svc.ResumeAnalysis(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, queued)
	jobQueue.AssertNumberOfCalls(t, "EnqueueAnalysis", 3)
}

func TestResumeAnalysis_ContinuesPastEnqueueFailure(t *testing.T) {
	gameRepo := new(mocks.MockGameRepository)
	jobQueue := new(mocks.MockJobQueue)
	gameRepo.On("ListUnanalyzed", mock.Anything).Return([]models.Game{
		{ID: 1}, {ID: 2}, {ID: 3},
	}, nil)
	jobQueue.On("EnqueueAnalysis", mock.Anything, int64(1)).Return(nil)
	jobQueue.On("EnqueueAnalysis", mock.Anything, int64(2)).Return(errors.New("queue full"))
	jobQueue.On("EnqueueAnalysis", mock.Anything, int64(3)).Return(nil)

	svc := services.NewGameService(gameRepo, jobQueue)
	queued, err := svc.ResumeAnalysis(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, queued, "the failed game should be skipped, not fatal")
}

func TestResumeAnalysis_ListFailure(t *testing.T) {
	gameRepo := new(mocks.MockGameRepository)
	gameRepo.On("ListUnanalyzed", mock.Anything).Return(nil, errors.New("db down"))

	svc := services.NewGameService(gameRepo, new(mocks.MockJobQueue))
	_, err := svc.ResumeAnalysis(context.Background())

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeInternal, appErr.Code)
}
