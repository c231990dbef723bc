package review

import (
	"context"
	"fmt"

	"github.com/corentings/chess/v2"

	"github.com/vytor/chessreview/internal/logger"
)

// Evaluator produces an engine evaluation for a FEN position.
type Evaluator interface {
	Evaluate(ctx context.Context, fen string) (EvaluationSample, error)
}

// BookLookup recognizes positions reached by recorded opening lines.
type BookLookup interface {
	Lookup(pos *chess.Position) (move string, ok bool)
}

// GameInput is the reviewer's view of one game: the ordered move tokens and
// the players they belong to.
type GameInput struct {
	White string
	Black string
	Moves []string
}

// Reviewer grades every move of a game using a position evaluator and an
// opening book.
type Reviewer struct {
	eval Evaluator
	book BookLookup
}

// NewReviewer creates a Reviewer. A nil book disables book recognition.
func NewReviewer(eval Evaluator, book BookLookup) *Reviewer {
	return &Reviewer{eval: eval, book: book}
}

// Review walks the game's moves in order, querying the evaluator before and
// after each one, and builds the per-game report. The pass is strictly
// sequential: each pre-move evaluation must see the board left by every
// prior move. An evaluator failure aborts the game; a token the board
// rejects only produces an error record.
func (r *Reviewer) Review(ctx context.Context, game GameInput) (*Report, error) {
	log := logger.FromContext(ctx).WithPrefix("reviewer")

	board := chess.NewGame()
	acc := NewAccumulator()
	report := &Report{
		MoveAnalysis: make([]MoveRecord, 0, len(game.Moves)),
	}

	inOpening := true
	moveNumber := 1

	for _, token := range game.Moves {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pre, err := r.eval.Evaluate(ctx, board.Position().String())
		if err != nil {
			return nil, fmt.Errorf("evaluating position before move %d (%s): %w", moveNumber, token, err)
		}

		mover := board.Position().Turn()

		if err := board.PushNotationMove(token, chess.AlgebraicNotation{}, nil); err != nil {
			log.Debug("move %d (%s) rejected by board: %v", moveNumber, token, err)
			report.MoveAnalysis = append(report.MoveAnalysis, MoveRecord{
				MoveNumber: moveNumber,
				Player:     PlayerUnknown,
				Move:       token,
				Error:      fmt.Sprintf("invalid move: %v", err),
			})
			continue
		}

		post, err := r.eval.Evaluate(ctx, board.Position().String())
		if err != nil {
			return nil, fmt.Errorf("evaluating position after move %d (%s): %w", moveNumber, token, err)
		}

		pos := board.Position()
		isBook := false
		if r.book != nil {
			_, isBook = r.book.Lookup(pos)
		}

		// The phase is read before the opening flag is cleared, so the
		// first move out of book still counts as an opening move.
		phase := DetectPhase(pos, inOpening)
		if !isBook && inOpening {
			inOpening = false
		}

		moves := board.Moves()
		played := moves[len(moves)-1]

		in := ClassifyInput{
			Pre:     pre,
			Post:    post,
			MoveUCI: played.String(),
			IsBook:  isBook,
			Mover:   mover,
		}
		classification := Classify(in)
		acc.Add(mover, phase, classification)

		evaluation := post.Score / 100
		loss := in.EvaluationLoss() / 100
		report.MoveAnalysis = append(report.MoveAnalysis, MoveRecord{
			MoveNumber:     moveNumber,
			Player:         playerName(mover),
			Move:           token,
			Evaluation:     &evaluation,
			EvaluationLoss: &loss,
			Classification: classification,
			Phase:          phase,
		})
		moveNumber++
	}

	report.PhaseAnalysis = acc.PhaseSummaries()
	report.PlayerSummaries = map[string]PlayerSummary{
		game.White: acc.PlayerCounts(chess.White),
		game.Black: acc.PlayerCounts(chess.Black),
	}
	return report, nil
}

func playerName(color chess.Color) string {
	if color == chess.White {
		return PlayerWhite
	}
	return PlayerBlack
}
