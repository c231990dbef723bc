package models

import (
	"strings"
	"time"
)

// Analysis status values for Game.AnalysisStatus.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

type Game struct {
	ID             int64      `json:"id"`
	Source         string     `json:"source"`
	Format         string     `json:"format"`
	White          string     `json:"white"`
	Black          string     `json:"black"`
	Moves          string     `json:"moves"`
	AnalysisStatus string     `json:"analysis_status"`
	ImportedAt     time.Time  `json:"imported_at"`
	AnalyzedAt     *time.Time `json:"analyzed_at,omitempty"`
}

// MoveTokens splits the stored move text back into the ordered token list.
func (g Game) MoveTokens() []string {
	return strings.Fields(g.Moves)
}

type GameFilter struct {
	Player   string // matches either side
	Source   string
	Status   string
	Analyzed *bool
	Limit    int
	Offset   int
}

type PhaseClassificationStat struct {
	Phase          string  `json:"phase"`
	Classification string  `json:"classification"`
	Count          int     `json:"count"`
	AvgEvalLoss    float64 `json:"avg_eval_loss"`
}

type PlayerClassificationStat struct {
	Player         string `json:"player"`
	Classification string `json:"classification"`
	Count          int    `json:"count"`
}
