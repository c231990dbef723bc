package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// jsonGame mirrors the upload shape: player metadata plus numbered move
// lines like "1. e4 e5".
type jsonGame struct {
	White string   `json:"White"`
	Black string   `json:"Black"`
	Moves []string `json:"Moves"`
}

// ParseJSON reads a game provided as JSON with a "Moves" list. Each entry
// carries one or two moves behind a move number; the number tokens are
// dropped and the move tokens keep their order.
func ParseJSON(r io.Reader) (Game, error) {
	var jg jsonGame
	if err := json.NewDecoder(r).Decode(&jg); err != nil {
		return Game{}, fmt.Errorf("decoding game json: %w", err)
	}

	tokens := make([]string, 0, len(jg.Moves)*2)
	for _, line := range jg.Moves {
		for _, token := range strings.Fields(line) {
			if strings.HasSuffix(token, ".") {
				continue
			}
			tokens = append(tokens, token)
		}
	}

	game := Game{
		White: jg.White,
		Black: jg.Black,
		Moves: tokens,
	}
	if game.White == "" {
		game.White = "White"
	}
	if game.Black == "" {
		game.Black = "Black"
	}
	return game, nil
}
