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

type StatsRepositorySuite struct {
	suite.Suite
	db      *sql.DB
	games   repository.GameRepository
	reports repository.ReportRepository
	repo    repository.StatsRepository
}

func (s *StatsRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.games = sqlite.NewGameRepository(s.db)
	s.reports = sqlite.NewReportRepository(s.db)
	s.repo = sqlite.NewStatsRepository(s.db)
}

func (s *StatsRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *StatsRepositorySuite) insertGame(source string) int64 {
	id, err := s.games.Insert(context.Background(), models.Game{
		Source: source,
		Format: "pgn",
		White:  "Alice",
		Black:  "Bob",
		Moves:  "e4 e5",
	})
	s.Require().NoError(err)
	return id
}

func (s *StatsRepositorySuite) TestPhaseStats() {
	ctx := context.Background()

	analyzed := s.insertGame("games/analyzed.pgn")
	s.Require().NoError(s.reports.SaveReport(ctx, analyzed, &review.Report{
		MoveAnalysis: []review.MoveRecord{
			{MoveNumber: 1, Player: review.PlayerWhite, Move: "e4", Evaluation: f(0.3), EvaluationLoss: f(0.25), Classification: review.Best, Phase: review.Opening},
			{MoveNumber: 1, Player: review.PlayerBlack, Move: "e5", Evaluation: f(0.2), EvaluationLoss: f(0.75), Classification: review.Best, Phase: review.Opening},
			{MoveNumber: 2, Player: review.PlayerWhite, Move: "Nf3", Evaluation: f(0.1), EvaluationLoss: f(0.5), Classification: review.Good, Phase: review.Middlegame},
			{MoveNumber: 2, Player: review.PlayerUnknown, Move: "Qxz9", Error: "invalid move"},
		},
	}))
	s.Require().NoError(s.games.MarkAnalyzed(ctx, analyzed))

	// Unfinished analyses stay out of the aggregates.
	pending := s.insertGame("games/pending.pgn")
	s.Require().NoError(s.reports.SaveReport(ctx, pending, &review.Report{
		MoveAnalysis: []review.MoveRecord{
			{MoveNumber: 1, Player: review.PlayerWhite, Move: "d4", Evaluation: f(0.1), EvaluationLoss: f(2.0), Classification: review.Blunder, Phase: review.Opening},
		},
	}))

	stats, err := s.repo.PhaseStats(ctx)
	s.Require().NoError(err)

	s.Require().Len(stats, 2)
	s.Assert().Equal(models.PhaseClassificationStat{
		Phase:          string(review.Middlegame),
		Classification: string(review.Good),
		Count:          1,
		AvgEvalLoss:    0.5,
	}, stats[0])
	s.Assert().Equal(models.PhaseClassificationStat{
		Phase:          string(review.Opening),
		Classification: string(review.Best),
		Count:          2,
		AvgEvalLoss:    0.5,
	}, stats[1])
}

func (s *StatsRepositorySuite) TestPhaseStats_Empty() {
	stats, err := s.repo.PhaseStats(context.Background())
	s.Require().NoError(err)
	s.Assert().Empty(stats)
}

func (s *StatsRepositorySuite) TestPlayerStats_SumsAcrossGames() {
	ctx := context.Background()

	first := s.insertGame("games/first.pgn")
	s.Require().NoError(s.reports.SaveReport(ctx, first, &review.Report{
		PlayerSummaries: map[string]review.PlayerSummary{
			"Alice": {review.Best: 3, review.Mistake: 1},
			"Bob":   {review.Best: 2},
		},
	}))

	second := s.insertGame("games/second.pgn")
	s.Require().NoError(s.reports.SaveReport(ctx, second, &review.Report{
		PlayerSummaries: map[string]review.PlayerSummary{
			"Alice": {review.Best: 1},
		},
	}))

	stats, err := s.repo.PlayerStats(ctx)
	s.Require().NoError(err)

	s.Require().Len(stats, 3)
	s.Assert().Equal(models.PlayerClassificationStat{Player: "Alice", Classification: string(review.Best), Count: 4}, stats[0])
	s.Assert().Equal(models.PlayerClassificationStat{Player: "Alice", Classification: string(review.Mistake), Count: 1}, stats[1])
	s.Assert().Equal(models.PlayerClassificationStat{Player: "Bob", Classification: string(review.Best), Count: 2}, stats[2])
}

func TestStatsRepositorySuite(t *testing.T) {
	suite.Run(t, new(StatsRepositorySuite))
}
