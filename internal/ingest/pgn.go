package ingest

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/corentings/chess/v2"
)

var headerRe = regexp.MustCompile(`\[(\w+)\s+"([^"]+)"\]`)

// ParseHeaders extracts PGN header tags into a map
func ParseHeaders(pgn string) map[string]string {
	out := map[string]string{}
	for _, line := range strings.Split(pgn, "\n") {
		if !strings.HasPrefix(line, "[") {
			continue
		}
		m := headerRe.FindStringSubmatch(line)
		if len(m) == 3 {
			out[m[1]] = m[2]
		}
	}
	return out
}

// ParsePGN reads one PGN game. The move list is re-encoded to plain SAN
// tokens against the replayed positions, so comments, variations, and
// annotation glyphs in the source never reach the reviewer.
func ParsePGN(r io.Reader) (Game, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Game{}, fmt.Errorf("reading pgn: %w", err)
	}
	text := string(data)

	opt, err := chess.PGN(strings.NewReader(text))
	if err != nil {
		return Game{}, fmt.Errorf("parsing pgn: %w", err)
	}
	g := chess.NewGame(opt)

	positions := g.Positions()
	moves := g.Moves()
	tokens := make([]string, 0, len(moves))
	for i, m := range moves {
		if i >= len(positions) {
			break
		}
		tokens = append(tokens, chess.AlgebraicNotation{}.Encode(positions[i], m))
	}

	headers := ParseHeaders(text)
	game := Game{
		White: headers["White"],
		Black: headers["Black"],
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
