package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/chessreview/internal/logger"
	"github.com/vytor/chessreview/internal/models"
	"github.com/vytor/chessreview/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) PhaseStats(ctx context.Context) ([]models.PhaseClassificationStat, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("fetching phase classification stats")

	query := sqlBuilder.Select(
		"m.phase",
		"m.classification",
		"COUNT(*) AS count",
		"COALESCE(AVG(m.evaluation_loss), 0) AS avg_eval_loss",
	).
		From("move_records m").
		Join("games g ON g.id = m.game_id").
		Where(squirrel.Eq{"g.analysis_status": models.StatusCompleted}).
		Where(squirrel.Eq{"m.error": ""}).
		GroupBy("m.phase", "m.classification").
		OrderBy("m.phase", "m.classification")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query phase stats: %v", err)
		return nil, err
	}
	defer rows.Close()

	var stats []models.PhaseClassificationStat
	for rows.Next() {
		var s models.PhaseClassificationStat
		if err := rows.Scan(&s.Phase, &s.Classification, &s.Count, &s.AvgEvalLoss); err != nil {
			log.Error("failed to scan phase stat row: %v", err)
			return nil, err
		}
		stats = append(stats, s)
	}
	log.Debug("found %d phase stats", len(stats))
	return stats, rows.Err()
}

func (r *statsRepository) PlayerStats(ctx context.Context) ([]models.PlayerClassificationStat, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("fetching player classification stats")

	query := sqlBuilder.Select(
		"player_name",
		"classification",
		"SUM(count) AS count",
	).
		From("player_summaries").
		GroupBy("player_name", "classification").
		OrderBy("player_name", "classification")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query player stats: %v", err)
		return nil, err
	}
	defer rows.Close()

	var stats []models.PlayerClassificationStat
	for rows.Next() {
		var s models.PlayerClassificationStat
		if err := rows.Scan(&s.Player, &s.Classification, &s.Count); err != nil {
			log.Error("failed to scan player stat row: %v", err)
			return nil, err
		}
		stats = append(stats, s)
	}
	log.Debug("found %d player stats", len(stats))
	return stats, rows.Err()
}
