package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/chessreview/internal/models"
	"github.com/vytor/chessreview/internal/repository"
	"github.com/vytor/chessreview/internal/repository/sqlite"
	"github.com/vytor/chessreview/internal/review"
	"github.com/vytor/chessreview/internal/testutil"
)

type ReportRepositorySuite struct {
	suite.Suite
	db     *sql.DB
	games  repository.GameRepository
	repo   repository.ReportRepository
	gameID int64
}

func (s *ReportRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.games = sqlite.NewGameRepository(s.db)
	s.repo = sqlite.NewReportRepository(s.db)

	id, err := s.games.Insert(context.Background(), models.Game{
		Source: "games/test.pgn",
		Format: "pgn",
		White:  "White Player",
		Black:  "Black Player",
		Moves:  "e4 e5",
	})
	s.Require().NoError(err)
	s.gameID = id
}

func (s *ReportRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func f(v float64) *float64 { return &v }

func (s *ReportRepositorySuite) TestSaveAndGetReport() {
	ctx := context.Background()

	report := &review.Report{
		MoveAnalysis: []review.MoveRecord{
			{
				MoveNumber:     1,
				Player:         review.PlayerWhite,
				Move:           "e4",
				Evaluation:     f(0.34),
				EvaluationLoss: f(0.12),
				Classification: review.Best,
				Phase:          review.Opening,
			},
			{
				MoveNumber:     1,
				Player:         review.PlayerBlack,
				Move:           "e5",
				Evaluation:     f(0.20),
				EvaluationLoss: f(0.14),
				Classification: review.Excellent,
				Phase:          review.Opening,
			},
			{
				MoveNumber: 2,
				Player:     review.PlayerUnknown,
				Move:       "Qxz9",
				Error:      "invalid move: no matching move",
			},
		},
		PhaseAnalysis: map[review.GamePhase]review.PhaseSummary{
			review.Opening: {Rating: review.Best, MoveCount: 2},
		},
		PlayerSummaries: map[string]review.PlayerSummary{
			"White Player": {review.Best: 1, review.Blunder: 0},
			"Black Player": {review.Excellent: 1, review.Blunder: 0},
		},
	}

	s.Require().NoError(s.repo.SaveReport(ctx, s.gameID, report))

	loaded, err := s.repo.GetReport(ctx, s.gameID)
	s.Require().NoError(err)

	s.Require().Len(loaded.MoveAnalysis, 3)
	s.Assert().Equal(report.MoveAnalysis[0], loaded.MoveAnalysis[0])
	s.Assert().Equal(report.MoveAnalysis[1], loaded.MoveAnalysis[1])

	failed := loaded.MoveAnalysis[2]
	s.Assert().Equal(review.PlayerUnknown, failed.Player)
	s.Assert().Nil(failed.Evaluation)
	s.Assert().Nil(failed.EvaluationLoss)
	s.Assert().NotEmpty(failed.Error)

	s.Assert().Equal(report.PhaseAnalysis, loaded.PhaseAnalysis)
	s.Assert().Equal(report.PlayerSummaries, loaded.PlayerSummaries)
}

func (s *ReportRepositorySuite) TestSaveReport_ReplacesPrevious() {
	ctx := context.Background()

	first := &review.Report{
		MoveAnalysis: []review.MoveRecord{
			{MoveNumber: 1, Player: review.PlayerWhite, Move: "e4", Evaluation: f(0.3), EvaluationLoss: f(0.0), Classification: review.Best, Phase: review.Opening},
			{MoveNumber: 1, Player: review.PlayerBlack, Move: "e5", Evaluation: f(0.2), EvaluationLoss: f(0.1), Classification: review.Good, Phase: review.Opening},
		},
		PhaseAnalysis: map[review.GamePhase]review.PhaseSummary{
			review.Opening: {Rating: review.Good, MoveCount: 2},
		},
		PlayerSummaries: map[string]review.PlayerSummary{
			"White Player": {review.Best: 1},
		},
	}
	s.Require().NoError(s.repo.SaveReport(ctx, s.gameID, first))

	second := &review.Report{
		MoveAnalysis: []review.MoveRecord{
			{MoveNumber: 1, Player: review.PlayerWhite, Move: "d4", Evaluation: f(0.1), EvaluationLoss: f(0.2), Classification: review.Excellent, Phase: review.Opening},
		},
		PhaseAnalysis: map[review.GamePhase]review.PhaseSummary{
			review.Opening: {Rating: review.Excellent, MoveCount: 1},
		},
		PlayerSummaries: map[string]review.PlayerSummary{
			"White Player": {review.Excellent: 1},
		},
	}
	s.Require().NoError(s.repo.SaveReport(ctx, s.gameID, second))

	loaded, err := s.repo.GetReport(ctx, s.gameID)
	s.Require().NoError(err)
	s.Require().Len(loaded.MoveAnalysis, 1)
	s.Assert().Equal("d4", loaded.MoveAnalysis[0].Move)
	s.Assert().Equal(review.PlayerSummary{review.Excellent: 1}, loaded.PlayerSummaries["White Player"])
}

func (s *ReportRepositorySuite) TestGetReport_Empty() {
	ctx := context.Background()

	loaded, err := s.repo.GetReport(ctx, s.gameID)
	s.Require().NoError(err)
	s.Assert().Empty(loaded.MoveAnalysis)
	s.Assert().Empty(loaded.PhaseAnalysis)
	s.Assert().Empty(loaded.PlayerSummaries)
}

func TestReportRepositorySuite(t *testing.T) {
	suite.Run(t, new(ReportRepositorySuite))
}
