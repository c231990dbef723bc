package review

// Classification grades a single move.
type Classification string

const (
	Brilliant  Classification = "brilliant"
	Great      Classification = "great"
	Best       Classification = "best"
	Excellent  Classification = "excellent"
	Good       Classification = "good"
	Inaccuracy Classification = "inaccuracy"
	Mistake    Classification = "mistake"
	Miss       Classification = "miss"
	Blunder    Classification = "blunder"
	Book       Classification = "book"
	Forced     Classification = "forced"
)

// AllClassifications lists every grade. Tallies are zero-filled from this
// list so summaries always carry the full key set.
var AllClassifications = []Classification{
	Brilliant,
	Great,
	Best,
	Excellent,
	Good,
	Inaccuracy,
	Mistake,
	Miss,
	Blunder,
	Book,
	Forced,
}

var qualityScores = map[Classification]float64{
	Blunder:    0,
	Mistake:    0.2,
	Miss:       0.3,
	Inaccuracy: 0.4,
	Good:       0.65,
	Excellent:  0.9,
	Best:       1,
	Great:      1,
	Brilliant:  1,
	Book:       1,
	Forced:     1,
}

// QualityScore returns the grade's contribution to a phase rating average,
// between 0 (blunder) and 1 (best and above).
func (c Classification) QualityScore() float64 {
	return qualityScores[c]
}

// GamePhase is the stage of the game a move belongs to. A game walks
// forward only: once the opening is over it never resumes.
type GamePhase string

const (
	Opening    GamePhase = "opening"
	Middlegame GamePhase = "middlegame"
	Endgame    GamePhase = "endgame"
)

// AllPhases lists the phases in game order.
var AllPhases = []GamePhase{Opening, Middlegame, Endgame}
