package sqlite

import (
	"context"
	"database/sql"

	"github.com/vytor/chessreview/internal/logger"
	"github.com/vytor/chessreview/internal/repository"
	"github.com/vytor/chessreview/internal/review"
)

type reportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new ReportRepository implementation
func NewReportRepository(db *sql.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) SaveReport(ctx context.Context, gameID int64, report *review.Report) error {
	log := logger.FromContext(ctx).WithPrefix("report_repo")
	log.Debug("saving report: game_id=%d, moves=%d", gameID, len(report.MoveAnalysis))

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		// Re-analysis replaces the previous report wholesale.
		for _, table := range []string{"move_records", "phase_summaries", "player_summaries"} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE game_id = ?`, gameID); err != nil {
				return err
			}
		}

		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO move_records (game_id, move_number, player, move, evaluation, evaluation_loss, classification, phase, error)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
		if err != nil {
			log.Error("failed to prepare move record insert: %v", err)
			return err
		}
		defer stmt.Close()

		for _, m := range report.MoveAnalysis {
			if _, err := stmt.ExecContext(ctx, gameID, m.MoveNumber, m.Player, m.Move,
				m.Evaluation, m.EvaluationLoss, string(m.Classification), string(m.Phase), m.Error); err != nil {
				log.Error("failed to insert move record %d (%s): %v", m.MoveNumber, m.Move, err)
				return err
			}
		}

		for phase, summary := range report.PhaseAnalysis {
			if _, err := tx.ExecContext(ctx, `
INSERT INTO phase_summaries (game_id, phase, rating, move_count)
VALUES (?, ?, ?, ?)
`, gameID, string(phase), string(summary.Rating), summary.MoveCount); err != nil {
				log.Error("failed to insert phase summary %s: %v", phase, err)
				return err
			}
		}

		for player, counts := range report.PlayerSummaries {
			for classification, count := range counts {
				if _, err := tx.ExecContext(ctx, `
INSERT INTO player_summaries (game_id, player_name, classification, count)
VALUES (?, ?, ?, ?)
`, gameID, player, string(classification), count); err != nil {
					log.Error("failed to insert player summary %s/%s: %v", player, classification, err)
					return err
				}
			}
		}
		return nil
	})
}

func (r *reportRepository) GetReport(ctx context.Context, gameID int64) (*review.Report, error) {
	log := logger.FromContext(ctx).WithPrefix("report_repo")
	log.Debug("loading report: game_id=%d", gameID)

	report := &review.Report{
		PhaseAnalysis:   make(map[review.GamePhase]review.PhaseSummary),
		PlayerSummaries: make(map[string]review.PlayerSummary),
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT move_number, player, move, evaluation, evaluation_loss, classification, phase, error
FROM move_records
WHERE game_id = ?
ORDER BY id ASC
`, gameID)
	if err != nil {
		log.Error("failed to load move records: %v", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var m review.MoveRecord
		var eval, loss sql.NullFloat64
		var classification, phase string
		if err := rows.Scan(&m.MoveNumber, &m.Player, &m.Move, &eval, &loss, &classification, &phase, &m.Error); err != nil {
			log.Error("failed to scan move record: %v", err)
			return nil, err
		}
		if eval.Valid {
			v := eval.Float64
			m.Evaluation = &v
		}
		if loss.Valid {
			v := loss.Float64
			m.EvaluationLoss = &v
		}
		m.Classification = review.Classification(classification)
		m.Phase = review.GamePhase(phase)
		report.MoveAnalysis = append(report.MoveAnalysis, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	phaseRows, err := r.db.QueryContext(ctx, `
SELECT phase, rating, move_count
FROM phase_summaries
WHERE game_id = ?
`, gameID)
	if err != nil {
		log.Error("failed to load phase summaries: %v", err)
		return nil, err
	}
	defer phaseRows.Close()

	for phaseRows.Next() {
		var phase, rating string
		var moveCount int
		if err := phaseRows.Scan(&phase, &rating, &moveCount); err != nil {
			log.Error("failed to scan phase summary: %v", err)
			return nil, err
		}
		report.PhaseAnalysis[review.GamePhase(phase)] = review.PhaseSummary{
			Rating:    review.Classification(rating),
			MoveCount: moveCount,
		}
	}
	if err := phaseRows.Err(); err != nil {
		return nil, err
	}

	playerRows, err := r.db.QueryContext(ctx, `
SELECT player_name, classification, count
FROM player_summaries
WHERE game_id = ?
`, gameID)
	if err != nil {
		log.Error("failed to load player summaries: %v", err)
		return nil, err
	}
	defer playerRows.Close()

	for playerRows.Next() {
		var player, classification string
		var count int
		if err := playerRows.Scan(&player, &classification, &count); err != nil {
			log.Error("failed to scan player summary: %v", err)
			return nil, err
		}
		summary, ok := report.PlayerSummaries[player]
		if !ok {
			summary = make(review.PlayerSummary)
		}
		summary[review.Classification(classification)] = count
		report.PlayerSummaries[player] = summary
	}
	if err := playerRows.Err(); err != nil {
		return nil, err
	}

	log.Debug("report loaded: game_id=%d, moves=%d", gameID, len(report.MoveAnalysis))
	return report, nil
}
