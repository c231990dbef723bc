package repository

import (
	"context"

	"github.com/vytor/chessreview/internal/models"
	"github.com/vytor/chessreview/internal/review"
)

// GameRepository handles imported game data access
type GameRepository interface {
	Insert(ctx context.Context, game models.Game) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Game, error)
	List(ctx context.Context, filter models.GameFilter) ([]models.Game, error)
	ListUnanalyzed(ctx context.Context) ([]models.Game, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	MarkAnalyzed(ctx context.Context, id int64) error
}

// ReportRepository persists per-game review reports and reloads them
type ReportRepository interface {
	SaveReport(ctx context.Context, gameID int64, report *review.Report) error
	GetReport(ctx context.Context, gameID int64) (*review.Report, error)
}

// StatsRepository aggregates classification statistics across analyzed games
type StatsRepository interface {
	PhaseStats(ctx context.Context) ([]models.PhaseClassificationStat, error)
	PlayerStats(ctx context.Context) ([]models.PlayerClassificationStat, error)
}
