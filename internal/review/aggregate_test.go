package review_test

import (
	"testing"

	"github.com/corentings/chess/v2"
	"github.com/stretchr/testify/assert"
	"github.com/vytor/chessreview/internal/review"
)

func TestPhaseRating(t *testing.T) {
	tests := []struct {
		name  string
		moves []review.Classification
		want  review.Classification
	}{
		{
			name:  "no moves rates good",
			moves: nil,
			want:  review.Good,
		},
		{
			name:  "all best",
			moves: []review.Classification{review.Best, review.Best},
			want:  review.Brilliant,
		},
		{
			name:  "best and good",
			moves: []review.Classification{review.Best, review.Good},
			want:  review.Best,
		},
		{
			name:  "all good",
			moves: []review.Classification{review.Good, review.Good},
			want:  review.Excellent,
		},
		{
			name:  "a blunder drags a best down",
			moves: []review.Classification{review.Blunder, review.Best},
			want:  review.Good,
		},
		{
			name:  "all blunders",
			moves: []review.Classification{review.Blunder, review.Blunder},
			want:  review.Blunder,
		},
		{
			name:  "mistake and miss",
			moves: []review.Classification{review.Mistake, review.Miss},
			want:  review.Miss,
		},
		{
			name:  "single inaccuracy",
			moves: []review.Classification{review.Inaccuracy},
			want:  review.Inaccuracy,
		},
		{
			name:  "book and forced score as top marks",
			moves: []review.Classification{review.Book, review.Forced},
			want:  review.Brilliant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, review.PhaseRating(tt.moves))
		})
	}
}

func TestAccumulator_PhaseSummaries(t *testing.T) {
	acc := review.NewAccumulator()
	acc.Add(chess.White, review.Opening, review.Book)
	acc.Add(chess.Black, review.Opening, review.Book)
	acc.Add(chess.White, review.Middlegame, review.Best)
	acc.Add(chess.Black, review.Middlegame, review.Blunder)

	summaries := acc.PhaseSummaries()

	assert.Len(t, summaries, 2, "untouched phases should not appear")
	assert.NotContains(t, summaries, review.Endgame)
	assert.Equal(t, review.PhaseSummary{Rating: review.Brilliant, MoveCount: 2}, summaries[review.Opening])
	assert.Equal(t, review.PhaseSummary{Rating: review.Good, MoveCount: 2}, summaries[review.Middlegame])
}

func TestAccumulator_PlayerCounts(t *testing.T) {
	acc := review.NewAccumulator()
	acc.Add(chess.White, review.Opening, review.Book)
	acc.Add(chess.White, review.Middlegame, review.Best)
	acc.Add(chess.White, review.Middlegame, review.Best)
	acc.Add(chess.Black, review.Middlegame, review.Mistake)

	white := acc.PlayerCounts(chess.White)
	black := acc.PlayerCounts(chess.Black)

	assert.Len(t, white, len(review.AllClassifications), "every grade should have a bucket")
	assert.Equal(t, 2, white[review.Best])
	assert.Equal(t, 1, white[review.Book])
	assert.Equal(t, 0, white[review.Blunder], "unused grades stay at zero")
	assert.Equal(t, 1, black[review.Mistake])
	assert.Equal(t, 0, black[review.Best])
}

func TestAccumulator_EmptyGame(t *testing.T) {
	acc := review.NewAccumulator()

	assert.Empty(t, acc.PhaseSummaries())
	counts := acc.PlayerCounts(chess.White)
	assert.Len(t, counts, len(review.AllClassifications))
	for grade, n := range counts {
		assert.Zero(t, n, "grade %s", grade)
	}
}
