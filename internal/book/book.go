package book

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/corentings/chess/v2"

	"github.com/vytor/chessreview/internal/logger"
)

// MaxDepth bounds book influence to the early game: past this fullmove
// number nothing counts as a book move, whatever the book contains.
const MaxDepth = 8

// Book maps position fingerprints to the move, in UCI notation, that a
// recorded opening line played to reach them. A Book is immutable once
// loaded, so concurrent lookups need no locking.
type Book struct {
	moves map[Fingerprint]string
}

// Load builds a book from CSV opening data. The first row is a header;
// every following row's third column holds one line as numbered PGN
// movetext ("1. e4 e5 2. Nf3 ..."). Each line is replayed move by move on
// a fresh board and the position after each move is recorded with the move
// that produced it. A token the board rejects stops that line only; rows
// with fewer than three columns are skipped.
func Load(r io.Reader) (*Book, error) {
	log := logger.Default().WithPrefix("book")

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	b := &Book{moves: make(map[Fingerprint]string)}
	header := true
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading opening book: %w", err)
		}
		if header {
			header = false
			continue
		}
		if len(row) < 3 {
			continue
		}
		b.addLine(row[2], log)
	}

	log.Debug("opening book loaded: %d positions", len(b.moves))
	return b, nil
}

// LoadFile loads a book from a CSV file on disk.
func LoadFile(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening book file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func (b *Book) addLine(pgnMoves string, log *logger.Logger) {
	game := chess.NewGame()
	for _, token := range strings.Fields(pgnMoves) {
		// Move number tokens ("1.", "12...") are not moves.
		if strings.Contains(token, ".") {
			continue
		}
		if err := game.PushNotationMove(token, chess.AlgebraicNotation{}, nil); err != nil {
			log.Debug("book line stopped at %q: %v", token, err)
			break
		}
		moves := game.Moves()
		played := moves[len(moves)-1]
		b.moves[FingerprintPosition(game.Position())] = played.String()
	}
}

// Lookup returns the recorded move that reaches the given position, if the
// position is in book and still within MaxDepth fullmoves. A nil Book
// recognizes nothing.
func (b *Book) Lookup(pos *chess.Position) (string, bool) {
	if b == nil || pos == nil {
		return "", false
	}
	if FullmoveNumber(pos) > MaxDepth {
		return "", false
	}
	move, ok := b.moves[FingerprintPosition(pos)]
	return move, ok
}

// Len reports how many positions the book covers.
func (b *Book) Len() int {
	return len(b.moves)
}
