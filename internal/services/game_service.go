package services

import (
	"context"
	"database/sql"

	"github.com/vytor/chessreview/internal/errors"
	"github.com/vytor/chessreview/internal/jobs"
	"github.com/vytor/chessreview/internal/logger"
	"github.com/vytor/chessreview/internal/models"
	"github.com/vytor/chessreview/internal/repository"
)

// GameService handles game-related business logic
type GameService interface {
	GetGame(ctx context.Context, id int64) (*models.Game, error)
	ListGames(ctx context.Context, filter models.GameFilter) ([]models.Game, error)
	QueueGameAnalysis(ctx context.Context, gameID int64) error
	ResumeAnalysis(ctx context.Context) ([]int64, error)
}

type gameService struct {
	gameRepo repository.GameRepository
	jobQueue jobs.JobQueue
}

// NewGameService creates a new GameService
func NewGameService(gameRepo repository.GameRepository, jobQueue jobs.JobQueue) GameService {
	return &gameService{
		gameRepo: gameRepo,
		jobQueue: jobQueue,
	}
}

func (s *gameService) GetGame(ctx context.Context, id int64) (*models.Game, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting game: id=%d", id)

	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("game", id)
		}
		log.Error("failed to get game: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return game, nil
}

func (s *gameService) ListGames(ctx context.Context, filter models.GameFilter) ([]models.Game, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing games: player=%q, status=%q", filter.Player, filter.Status)

	games, err := s.gameRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list games: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return games, nil
}

func (s *gameService) QueueGameAnalysis(ctx context.Context, gameID int64) error {
	log := logger.FromContext(ctx)
	log.Debug("queueing game analysis: game_id=%d", gameID)

	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		if err == sql.ErrNoRows {
			return errors.NewNotFoundError("game", gameID)
		}
		log.Error("failed to get game: %v", err)
		return errors.NewInternalError(err)
	}

	if game.AnalysisStatus == models.StatusCompleted {
		log.Debug("game already analyzed, skipping queue")
		return nil
	}

	return s.jobQueue.EnqueueAnalysis(ctx, gameID)
}

// ResumeAnalysis queues every game that still needs a review, including
// games a previous run left in processing or failed. Returns the ids of
// the games that were queued.
func (s *gameService) ResumeAnalysis(ctx context.Context) ([]int64, error) {
	log := logger.FromContext(ctx)
	log.Debug("resuming analysis of unanalyzed games")

	games, err := s.gameRepo.ListUnanalyzed(ctx)
	if err != nil {
		log.Error("failed to list unanalyzed games: %v", err)
		return nil, errors.NewInternalError(err)
	}

	queued := make([]int64, 0, len(games))
	for _, g := range games {
		if err := s.jobQueue.EnqueueAnalysis(ctx, g.ID); err != nil {
			log.Warn("failed to enqueue analysis for game %d: %v", g.ID, err)
			continue
		}
		queued = append(queued, g.ID)
	}

	log.Info("queued %d games for analysis", len(queued))
	return queued, nil
}
