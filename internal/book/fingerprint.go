package book

import (
	"strconv"
	"strings"

	"github.com/corentings/chess/v2"
)

// Fingerprint is the canonical identity of a position for book matching:
// piece placement, side to move, castling rights, and en-passant target.
// The move counters are stripped so the same position matches at whatever
// move number a game reaches it.
type Fingerprint string

// FingerprintPosition derives the fingerprint of a position from its FEN.
func FingerprintPosition(pos *chess.Position) Fingerprint {
	fields := strings.Fields(pos.String())
	if len(fields) < 4 {
		return Fingerprint(pos.String())
	}
	return Fingerprint(strings.Join(fields[:4], " "))
}

// FullmoveNumber reads the position's fullmove counter (FEN field six).
func FullmoveNumber(pos *chess.Position) int {
	fields := strings.Fields(pos.String())
	if len(fields) < 6 {
		return 1
	}
	n, err := strconv.Atoi(fields[5])
	if err != nil || n < 1 {
		return 1
	}
	return n
}
