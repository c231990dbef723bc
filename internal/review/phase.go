package review

import "github.com/corentings/chess/v2"

const (
	endgameMaterialThreshold = 24
	queenValue               = 9
)

var pieceValues = map[chess.PieceType]int{
	chess.Pawn:   1,
	chess.Knight: 3,
	chess.Bishop: 3,
	chess.Rook:   5,
	chess.Queen:  queenValue,
}

// DetectPhase reports the phase of the given position. While inOpening is
// set the answer is always Opening; the caller clears the flag once a move
// falls out of book. Afterwards the phase follows the non-king material
// left on the board: 24 points or fewer is an endgame, as is a queenless
// board at 48 or fewer.
func DetectPhase(pos *chess.Position, inOpening bool) GamePhase {
	if inOpening {
		return Opening
	}

	board := pos.Board()
	totalMaterial := 0
	queens := 0
	for file := chess.FileA; file <= chess.FileH; file++ {
		for rank := chess.Rank1; rank <= chess.Rank8; rank++ {
			piece := board.Piece(chess.NewSquare(file, rank))
			if piece == chess.NoPiece {
				continue
			}
			value, ok := pieceValues[piece.Type()]
			if !ok {
				continue
			}
			totalMaterial += value
			if piece.Type() == chess.Queen {
				queens++
			}
		}
	}

	if totalMaterial <= endgameMaterialThreshold ||
		(queens == 0 && totalMaterial <= 2*endgameMaterialThreshold) {
		return Endgame
	}
	return Middlegame
}
