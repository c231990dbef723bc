package review

// Player labels as they appear in move records.
const (
	PlayerWhite   = "White"
	PlayerBlack   = "Black"
	PlayerUnknown = "Unknown"
)

// MoveRecord is the analysis of one move. Records appear in game order,
// exactly one per processed token. A token the board rejected produces a
// record with Error set and no evaluation fields.
type MoveRecord struct {
	MoveNumber     int            `json:"move_number"`
	Player         string         `json:"player"`
	Move           string         `json:"move"`
	Evaluation     *float64       `json:"evaluation,omitempty"`      // post-move eval, pawns
	EvaluationLoss *float64       `json:"evaluation_loss,omitempty"` // pawns, >= 0
	Classification Classification `json:"classification,omitempty"`
	Phase          GamePhase      `json:"phase,omitempty"`
	Error          string         `json:"error,omitempty"`
}

// PhaseSummary is the aggregate view of one game phase.
type PhaseSummary struct {
	Rating    Classification `json:"rating"`
	MoveCount int            `json:"move_count"`
}

// PlayerSummary tallies a player's grades. Every classification is present
// as a key, including those that never occurred.
type PlayerSummary map[Classification]int

// Report is the full analysis of one game.
type Report struct {
	MoveAnalysis    []MoveRecord               `json:"move_analysis"`
	PhaseAnalysis   map[GamePhase]PhaseSummary `json:"phase_analysis"`
	PlayerSummaries map[string]PlayerSummary   `json:"player_summaries"`
}
