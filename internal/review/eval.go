package review

// EvaluationSample is one engine judgment of a single position.
type EvaluationSample struct {
	// Score is the evaluation in centipawns from White's point of view,
	// regardless of who is to move. Mate scores are folded into it by the
	// engine adapter. A score the engine never produced is 0.
	Score float64

	// Mate is the number of moves until forced mate from White's point of
	// view (negative when Black mates). Nil when the engine saw no mate.
	Mate *int

	// BestMove is the engine's principal move in UCI notation, empty when
	// the engine reported none.
	BestMove string
}

// IsMate reports whether the engine saw a forced mate from this position.
func (s EvaluationSample) IsMate() bool {
	return s.Mate != nil
}
