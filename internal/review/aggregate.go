package review

import "github.com/corentings/chess/v2"

// ratingOrder maps an average quality score to the phase rating: the first
// entry whose threshold the average meets wins.
var ratingOrder = []struct {
	rating    Classification
	threshold float64
}{
	{Brilliant, 0.95},
	{Great, 0.85},
	{Best, 0.75},
	{Excellent, 0.65},
	{Good, 0.5},
	{Inaccuracy, 0.35},
	{Miss, 0.25},
	{Mistake, 0.15},
}

// PhaseRating condenses a phase's grades into one representative grade by
// averaging their quality scores. An empty phase rates Good by convention.
func PhaseRating(moves []Classification) Classification {
	if len(moves) == 0 {
		return Good
	}
	total := 0.0
	for _, m := range moves {
		total += m.QualityScore()
	}
	average := total / float64(len(moves))
	for _, entry := range ratingOrder {
		if average >= entry.threshold {
			return entry.rating
		}
	}
	return Blunder
}

// Accumulator folds the per-move grade stream of one game into phase and
// player tallies. Buckets exist for every player and phase from the start,
// and counts only ever grow.
type Accumulator struct {
	byPlayer map[chess.Color]map[GamePhase][]Classification
	byPhase  map[GamePhase][]Classification
}

func NewAccumulator() *Accumulator {
	acc := &Accumulator{
		byPlayer: make(map[chess.Color]map[GamePhase][]Classification, 2),
		byPhase:  make(map[GamePhase][]Classification, len(AllPhases)),
	}
	for _, color := range []chess.Color{chess.White, chess.Black} {
		acc.byPlayer[color] = make(map[GamePhase][]Classification, len(AllPhases))
		for _, phase := range AllPhases {
			acc.byPlayer[color][phase] = nil
		}
	}
	for _, phase := range AllPhases {
		acc.byPhase[phase] = nil
	}
	return acc
}

// Add records one graded move for the given player and phase.
func (a *Accumulator) Add(player chess.Color, phase GamePhase, c Classification) {
	a.byPlayer[player][phase] = append(a.byPlayer[player][phase], c)
	a.byPhase[phase] = append(a.byPhase[phase], c)
}

// PhaseSummaries reports the rating and move count of every phase that saw
// at least one graded move.
func (a *Accumulator) PhaseSummaries() map[GamePhase]PhaseSummary {
	summaries := make(map[GamePhase]PhaseSummary, len(AllPhases))
	for _, phase := range AllPhases {
		moves := a.byPhase[phase]
		if len(moves) == 0 {
			continue
		}
		summaries[phase] = PhaseSummary{
			Rating:    PhaseRating(moves),
			MoveCount: len(moves),
		}
	}
	return summaries
}

// PlayerCounts tallies one player's grades across all phases. Every grade
// appears as a key, zero when it never occurred.
func (a *Accumulator) PlayerCounts(player chess.Color) PlayerSummary {
	counts := make(PlayerSummary, len(AllClassifications))
	for _, c := range AllClassifications {
		counts[c] = 0
	}
	for _, phase := range AllPhases {
		for _, c := range a.byPlayer[player][phase] {
			counts[c]++
		}
	}
	return counts
}
