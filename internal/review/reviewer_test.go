package review_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessreview/internal/book"
	"github.com/vytor/chessreview/internal/review"
	"github.com/vytor/chessreview/internal/testutil"
)

func TestReview_BookMovesAndOpeningCarryover(t *testing.T) {
	openings, err := book.Load(strings.NewReader("eco,name,moves\nA04,Zukertort Opening,1. Nf3\n"))
	require.NoError(t, err)

	evaluator := testutil.NewScriptedEvaluator(
		review.EvaluationSample{Score: 30, BestMove: "g1f3"},
		review.EvaluationSample{Score: 25, BestMove: "d7d5"},
		review.EvaluationSample{Score: 25, BestMove: "g2g3"},
	)
	reviewer := review.NewReviewer(evaluator, openings)

	report, err := reviewer.Review(context.Background(), review.GameInput{
		White: "Alice",
		Black: "Bob",
		Moves: []string{"Nf3", "d6"},
	})
	require.NoError(t, err)
	require.Len(t, report.MoveAnalysis, 2)

	first := report.MoveAnalysis[0]
	assert.Equal(t, review.Book, first.Classification)
	assert.Equal(t, review.Opening, first.Phase)
	assert.Equal(t, review.PlayerWhite, first.Player)
	require.NotNil(t, first.Evaluation)
	assert.InDelta(t, 0.25, *first.Evaluation, 1e-9)
	require.NotNil(t, first.EvaluationLoss)
	assert.InDelta(t, 0.05, *first.EvaluationLoss, 1e-9)

	// d6 leaves the book, but its phase is decided before the flag drops.
	second := report.MoveAnalysis[1]
	assert.Equal(t, review.Best, second.Classification)
	assert.Equal(t, review.Opening, second.Phase)
	assert.Equal(t, review.PlayerBlack, second.Player)

	require.Contains(t, report.PhaseAnalysis, review.Opening)
	assert.Equal(t, 2, report.PhaseAnalysis[review.Opening].MoveCount)
}

func TestReview_InvalidTokenKeepsGoing(t *testing.T) {
	evaluator := testutil.NewScriptedEvaluator(
		review.EvaluationSample{Score: 30, BestMove: "e2e4"},
		review.EvaluationSample{Score: 20, BestMove: "e7e5"},
		review.EvaluationSample{Score: 25, BestMove: "g1f3"},
	)
	reviewer := review.NewReviewer(evaluator, nil)

	report, err := reviewer.Review(context.Background(), review.GameInput{
		White: "Alice",
		Black: "Bob",
		Moves: []string{"e4", "Qxf7", "e5"},
	})
	require.NoError(t, err)
	require.Len(t, report.MoveAnalysis, 3)

	bad := report.MoveAnalysis[1]
	assert.Equal(t, 2, bad.MoveNumber)
	assert.Equal(t, review.PlayerUnknown, bad.Player)
	assert.Equal(t, "Qxf7", bad.Move)
	assert.Contains(t, bad.Error, "invalid move")
	assert.Nil(t, bad.Evaluation)
	assert.Nil(t, bad.EvaluationLoss)
	assert.Empty(t, bad.Classification)
	assert.Empty(t, bad.Phase)

	// The rejected token does not advance the move counter.
	last := report.MoveAnalysis[2]
	assert.Equal(t, 2, last.MoveNumber)
	assert.Equal(t, review.PlayerBlack, last.Player)
	assert.Equal(t, "e5", last.Move)

	// Two fresh positions after the first, plus memoized re-reads.
	assert.Equal(t, 5, evaluator.Calls)
}

func TestReview_PhasesAndPlayerAttribution(t *testing.T) {
	evaluator := testutil.NewScriptedEvaluator(
		review.EvaluationSample{Score: 30, BestMove: "e2e4"},
		review.EvaluationSample{Score: 20, BestMove: "e7e5"},
		review.EvaluationSample{Score: 28, BestMove: "g1f3"},
		review.EvaluationSample{Score: 22, BestMove: "b8c6"},
	)
	reviewer := review.NewReviewer(evaluator, nil)

	report, err := reviewer.Review(context.Background(), review.GameInput{
		White: "Alice",
		Black: "Bob",
		Moves: []string{"e4", "e5", "Nf3"},
	})
	require.NoError(t, err)
	require.Len(t, report.MoveAnalysis, 3)

	// Without a book only the very first move counts as opening.
	assert.Equal(t, review.Opening, report.MoveAnalysis[0].Phase)
	assert.Equal(t, review.Middlegame, report.MoveAnalysis[1].Phase)
	assert.Equal(t, review.Middlegame, report.MoveAnalysis[2].Phase)

	first := report.MoveAnalysis[0]
	assert.Equal(t, review.Excellent, first.Classification)
	require.NotNil(t, first.Evaluation)
	assert.InDelta(t, 0.2, *first.Evaluation, 1e-9)
	require.NotNil(t, first.EvaluationLoss)
	assert.InDelta(t, 0.1, *first.EvaluationLoss, 1e-9)

	require.Contains(t, report.PlayerSummaries, "Alice")
	require.Contains(t, report.PlayerSummaries, "Bob")
	assert.Equal(t, 2, report.PlayerSummaries["Alice"][review.Excellent])
	assert.Equal(t, 1, report.PlayerSummaries["Bob"][review.Excellent])
	assert.Len(t, report.PlayerSummaries["Bob"], len(review.AllClassifications))
	assert.Equal(t, 0, report.PlayerSummaries["Bob"][review.Blunder])

	assert.NotContains(t, report.PhaseAnalysis, review.Endgame)
	assert.Equal(t, 1, report.PhaseAnalysis[review.Opening].MoveCount)
	assert.Equal(t, 2, report.PhaseAnalysis[review.Middlegame].MoveCount)

	// A second pass over the same game reproduces the report.
	again, err := reviewer.Review(context.Background(), review.GameInput{
		White: "Alice",
		Black: "Bob",
		Moves: []string{"e4", "e5", "Nf3"},
	})
	require.NoError(t, err)
	assert.Equal(t, report, again)
}

func TestReview_EvaluatorFailureAborts(t *testing.T) {
	reviewer := review.NewReviewer(testutil.FailingEvaluator{Err: errors.New("engine crashed")}, nil)

	report, err := reviewer.Review(context.Background(), review.GameInput{
		White: "Alice",
		Black: "Bob",
		Moves: []string{"e4"},
	})
	require.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), "before move 1")
	assert.Contains(t, err.Error(), "engine crashed")
}

func TestReview_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reviewer := review.NewReviewer(testutil.NewScriptedEvaluator(), nil)
	_, err := reviewer.Review(ctx, review.GameInput{
		White: "Alice",
		Black: "Bob",
		Moves: []string{"e4"},
	})
	assert.ErrorIs(t, err, context.Canceled)
}
