// Package ingest reduces game sources to the ordered move tokens and player
// names the reviewer consumes.
package ingest

// Game is one game reduced to its move tokens, in game order, plus the
// players they belong to.
type Game struct {
	White string
	Black string
	Moves []string
}
