package review

import (
	"math"

	"github.com/corentings/chess/v2"
)

const (
	forcedWinThreshold = 500
	missCentipawnLoss  = 300
	missMateThreshold  = 3

	greatSwing     = 150
	brilliantSwing = 300
)

// ClassifyInput carries everything the grading chain looks at for one move.
type ClassifyInput struct {
	Pre     EvaluationSample // evaluation before the move
	Post    EvaluationSample // evaluation after the move
	MoveUCI string           // the played move in UCI notation
	IsBook  bool             // the position after the move is a book position
	Mover   chess.Color      // side that played the move
}

// EvaluationLoss is |pre - post| in centipawns. Both scores are
// White-relative, so the same formula serves either mover.
func (in ClassifyInput) EvaluationLoss() float64 {
	return math.Abs(in.Pre.Score - in.Post.Score)
}

// forcedMateForMover reports whether the pre-move position was a forced
// mate in at most missMateThreshold in the mover's favor. Being mated does
// not count.
func (in ClassifyInput) forcedMateForMover() bool {
	if in.Pre.Mate == nil {
		return false
	}
	rel := *in.Pre.Mate
	if in.Mover == chess.Black {
		rel = -rel
	}
	return rel >= 1 && rel <= missMateThreshold
}

// stage is one link of the grading chain. Stages run in a fixed order and
// may overwrite the grade decided so far.
type stage func(in ClassifyInput, current Classification) Classification

// The chain order is the override precedence: book beats the centipawn
// walk, the missed-win check beats both, and the brilliancy upgrade only
// ever touches a Best.
var classifyChain = []stage{
	bookStage,
	centipawnStage,
	missedWinStage,
	brilliancyStage,
}

// Classify grades one move.
func Classify(in ClassifyInput) Classification {
	var c Classification
	for _, s := range classifyChain {
		c = s(in, c)
	}
	return c
}

func bookStage(in ClassifyInput, current Classification) Classification {
	if in.IsBook {
		return Book
	}
	return current
}

// centipawnStage walks the candidate grades from least to most severe and
// keeps the first whose loss tolerance covers the move's evaluation loss.
func centipawnStage(in ClassifyInput, current Classification) Classification {
	if current == Book {
		return current
	}
	loss := in.EvaluationLoss()
	for _, candidate := range centipawnOrder {
		if loss <= MaxLoss(candidate, in.Pre.Score) {
			return candidate
		}
	}
	return Blunder
}

// missedWinStage demotes a move played from a decisively winning position
// when it was not the engine move and either shed 300 centipawns or let a
// short forced mate slip. It overrides even a Best from the previous stage.
func missedWinStage(in ClassifyInput, current Classification) Classification {
	if current == Book {
		return current
	}
	if math.Abs(in.Pre.Score) < forcedWinThreshold {
		return current
	}
	if in.MoveUCI == in.Pre.BestMove {
		return current
	}
	if in.EvaluationLoss() >= missCentipawnLoss || in.forcedMateForMover() {
		return Miss
	}
	return current
}

// brilliancyStage upgrades a Best that turned a lost position into a won
// one. The larger swing is checked first so exactly one of best, great,
// brilliant results.
func brilliancyStage(in ClassifyInput, current Classification) Classification {
	if current != Best {
		return current
	}
	switch {
	case in.Pre.Score <= -brilliantSwing && in.Post.Score >= brilliantSwing:
		return Brilliant
	case in.Pre.Score <= -greatSwing && in.Post.Score >= greatSwing:
		return Great
	default:
		return current
	}
}
