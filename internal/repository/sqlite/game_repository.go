package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/chessreview/internal/logger"
	"github.com/vytor/chessreview/internal/models"
	"github.com/vytor/chessreview/internal/repository"
)

type gameRepository struct {
	db *sql.DB
}

// NewGameRepository creates a new GameRepository implementation
func NewGameRepository(db *sql.DB) repository.GameRepository {
	return &gameRepository{db: db}
}

const gameColumns = "id, source, format, white, black, moves, analysis_status, imported_at, analyzed_at"

func scanGame(row interface{ Scan(dest ...any) error }) (*models.Game, error) {
	var g models.Game
	var analyzedAt sql.NullTime
	if err := row.Scan(&g.ID, &g.Source, &g.Format, &g.White, &g.Black, &g.Moves, &g.AnalysisStatus, &g.ImportedAt, &analyzedAt); err != nil {
		return nil, err
	}
	if analyzedAt.Valid {
		t := analyzedAt.Time
		g.AnalyzedAt = &t
	}
	return &g, nil
}

func (r *gameRepository) Insert(ctx context.Context, g models.Game) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("inserting game: source=%s, white=%s, black=%s", g.Source, g.White, g.Black)

	status := g.AnalysisStatus
	if status == "" {
		status = models.StatusPending
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO games (source, format, white, black, moves, analysis_status)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(source) WHERE source != '' DO NOTHING
`, g.Source, g.Format, g.White, g.Black, g.Moves, status)
	if err != nil {
		log.Error("failed to insert game: %v", err)
		return 0, err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		if id, err := res.LastInsertId(); err == nil {
			log.Debug("game inserted: id=%d", id)
			return id, nil
		}
	}

	// The source was imported before; return the existing row's id.
	var id int64
	err = r.db.QueryRowContext(ctx, `SELECT id FROM games WHERE source = ?`, g.Source).Scan(&id)
	if err != nil {
		log.Error("failed to get game id: %v", err)
	} else {
		log.Debug("game already imported: id=%d", id)
	}
	return id, err
}

func (r *gameRepository) GetByID(ctx context.Context, id int64) (*models.Game, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("getting game: id=%d", id)

	g, err := scanGame(r.db.QueryRowContext(ctx, `
SELECT `+gameColumns+`
FROM games
WHERE id = ?
`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("game not found: id=%d", id)
		} else {
			log.Error("failed to get game: %v", err)
		}
		return nil, err
	}
	log.Debug("game found: white=%s, black=%s, status=%s", g.White, g.Black, g.AnalysisStatus)
	return g, nil
}

func (r *gameRepository) List(ctx context.Context, filter models.GameFilter) ([]models.Game, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("listing games with filter: player=%s, source=%s, status=%s", filter.Player, filter.Source, filter.Status)

	query := sqlBuilder.Select(
		"id", "source", "format", "white", "black", "moves",
		"analysis_status", "imported_at", "analyzed_at",
	).From("games")

	// Dynamic WHERE clauses
	if filter.Player != "" {
		query = query.Where(squirrel.Or{
			squirrel.Eq{"white": filter.Player},
			squirrel.Eq{"black": filter.Player},
		})
	}
	if filter.Source != "" {
		query = query.Where(squirrel.Eq{"source": filter.Source})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"analysis_status": filter.Status})
	}
	if filter.Analyzed != nil {
		if *filter.Analyzed {
			query = query.Where(squirrel.NotEq{"analyzed_at": nil})
		} else {
			query = query.Where(squirrel.Eq{"analyzed_at": nil})
		}
	}

	query = query.OrderBy("imported_at DESC", "id DESC")

	// Pagination
	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list games: %v", err)
		return nil, err
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			log.Error("failed to scan game row: %v", err)
			return nil, err
		}
		games = append(games, *g)
	}
	log.Debug("found %d games", len(games))
	return games, rows.Err()
}

func (r *gameRepository) ListUnanalyzed(ctx context.Context) ([]models.Game, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("listing games awaiting analysis")

	// A stale 'processing' row means a previous run died mid-game; pick it
	// up again.
	rows, err := r.db.QueryContext(ctx, `
SELECT `+gameColumns+`
FROM games
WHERE analysis_status IN ('pending','processing','failed')
ORDER BY imported_at ASC, id ASC
`)
	if err != nil {
		log.Error("failed to list games awaiting analysis: %v", err)
		return nil, err
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			log.Error("failed to scan game row: %v", err)
			return nil, err
		}
		games = append(games, *g)
	}
	log.Debug("found %d games awaiting analysis", len(games))
	return games, rows.Err()
}

func (r *gameRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("updating game status: game_id=%d, status=%s", id, status)

	_, err := r.db.ExecContext(ctx, `UPDATE games SET analysis_status = ? WHERE id = ?`, status, id)
	if err != nil {
		log.Error("failed to update game status: %v", err)
	}
	return err
}

func (r *gameRepository) MarkAnalyzed(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("marking game analyzed: game_id=%d", id)

	_, err := r.db.ExecContext(ctx, `
UPDATE games
SET analysis_status = ?, analyzed_at = CURRENT_TIMESTAMP
WHERE id = ?
`, models.StatusCompleted, id)
	if err != nil {
		log.Error("failed to mark game analyzed: %v", err)
	}
	return err
}
