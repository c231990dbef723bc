package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/vytor/chessreview/internal/errors"
	"github.com/vytor/chessreview/internal/logger"
	"github.com/vytor/chessreview/internal/models"
	"github.com/vytor/chessreview/internal/repository"
	"github.com/vytor/chessreview/internal/review"
)

// ReviewService handles game review business logic
type ReviewService interface {
	AnalyzeGame(ctx context.Context, gameID int64) error
	GetReport(ctx context.Context, gameID int64) (*review.Report, error)
}

type reviewService struct {
	gameRepo   repository.GameRepository
	reportRepo repository.ReportRepository
	reviewer   *review.Reviewer
}

// NewReviewService creates a new ReviewService
func NewReviewService(gameRepo repository.GameRepository, reportRepo repository.ReportRepository, reviewer *review.Reviewer) ReviewService {
	return &reviewService{
		gameRepo:   gameRepo,
		reportRepo: reportRepo,
		reviewer:   reviewer,
	}
}

func (s *reviewService) AnalyzeGame(ctx context.Context, gameID int64) error {
	log := logger.FromContext(ctx).WithField("game_id", gameID)
	log.Info("starting game review")

	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		if err == sql.ErrNoRows {
			return errors.NewNotFoundError("game", gameID)
		}
		log.Error("failed to get game: %v", err)
		return errors.NewInternalError(err)
	}

	if game.AnalysisStatus == models.StatusCompleted {
		log.Debug("game already analyzed, skipping")
		return nil
	}

	log = log.WithFields(map[string]any{
		"white": game.White,
		"black": game.Black,
	})

	tokens := game.MoveTokens()
	if len(tokens) == 0 {
		_ = s.gameRepo.UpdateStatus(ctx, gameID, models.StatusFailed)
		return errors.NewValidationError("moves", "game has no moves")
	}

	log.Debug("updating game status to processing")
	if err := s.gameRepo.UpdateStatus(ctx, gameID, models.StatusProcessing); err != nil {
		log.Error("failed to update game status: %v", err)
		return errors.NewInternalError(err)
	}

	start := time.Now()
	report, err := s.reviewer.Review(ctx, review.GameInput{
		White: game.White,
		Black: game.Black,
		Moves: tokens,
	})
	if err != nil {
		log.Error("review failed: %v", err)
		_ = s.gameRepo.UpdateStatus(ctx, gameID, models.StatusFailed)
		return err
	}

	if err := s.reportRepo.SaveReport(ctx, gameID, report); err != nil {
		log.Error("failed to save report: %v", err)
		_ = s.gameRepo.UpdateStatus(ctx, gameID, models.StatusFailed)
		return errors.NewInternalError(err)
	}

	if err := s.gameRepo.MarkAnalyzed(ctx, gameID); err != nil {
		log.Error("failed to mark game analyzed: %v", err)
		return errors.NewInternalError(err)
	}

	log.Info("review completed: %d moves in %v", len(report.MoveAnalysis), time.Since(start))
	return nil
}

func (s *reviewService) GetReport(ctx context.Context, gameID int64) (*review.Report, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting report: game_id=%d", gameID)

	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("game", gameID)
		}
		log.Error("failed to get game: %v", err)
		return nil, errors.NewInternalError(err)
	}

	if game.AnalysisStatus != models.StatusCompleted {
		return nil, errors.NewValidationError("game", "has not been analyzed yet")
	}

	report, err := s.reportRepo.GetReport(ctx, gameID)
	if err != nil {
		log.Error("failed to load report: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return report, nil
}
