package engine

import "github.com/lgbarn/tilechess-go/internal/chess"

// ApplyMove simulates moving mover to the destination cell. The input
// snapshot is not modified: a new snapshot is returned without the mover's
// old entry and without any piece captured on the destination, plus the
// mover relocated to the destination. captured is nil for a quiet move.
func ApplyMove(pieces []chess.Piece, to chess.Cell, mover chess.Piece) (captured *chess.Piece, after []chess.Piece) {
	after = make([]chess.Piece, 0, len(pieces))
	moverRemoved := false

	for _, p := range pieces {
		if !moverRemoved && p == mover {
			moverRemoved = true
			continue
		}
		if p.Cell == to {
			if captured == nil {
				c := p
				captured = &c
			}
			continue
		}
		after = append(after, p)
	}

	after = append(after, mover.At(to))
	return captured, after
}

// IsMoveSafe reports whether moving mover to the destination leaves the
// mover's own king out of check. This is the commit-time filter; the
// destination generators never apply it to non-king pieces.
func IsMoveSafe(mover chess.Piece, to chess.Cell, pieces []chess.Piece, board chess.Board) bool {
	_, after := ApplyMove(pieces, to, mover)
	return !KingInCheck(mover.Colour, after, board)
}
