package engine

import "github.com/lgbarn/tilechess-go/internal/chess"

// KingInCheck returns true if the given colour's king is attacked.
// A snapshot without that king is reported as not in check.
func KingInCheck(colour chess.Colour, pieces []chess.Piece, board chess.Board) bool {
	king, ok := FindKing(colour, pieces)
	if !ok {
		return false
	}
	return CellIsAttacked(colour, king.Cell, pieces, board)
}

// FindKing returns the first king of the given colour in the snapshot.
func FindKing(colour chess.Colour, pieces []chess.Piece) (chess.Piece, bool) {
	for _, p := range pieces {
		if p.Kind == chess.King && p.Colour == colour {
			return p, true
		}
	}
	return chess.Piece{}, false
}

// CellIsAttacked returns true if any piece of defender's opponent has cell
// among its pseudo-legal destinations. An enemy king's destinations are
// computed without its own attack filter, so cells next to it count as
// attacked.
func CellIsAttacked(defender chess.Colour, cell chess.Cell, pieces []chess.Piece, board chess.Board) bool {
	attacker := defender.Opposite()
	for _, p := range pieces {
		if p.Colour != attacker {
			continue
		}
		if containsCell(destinations(p, board, pieces, true), cell) {
			return true
		}
	}
	return false
}
