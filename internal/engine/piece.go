package engine

import "github.com/lgbarn/tilechess-go/internal/chess"

var knightOffsets = []direction{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}

// knightDestinations returns the in-range knight jumps not blocked by an ally.
func knightDestinations(p chess.Piece, board chess.Board, occ occupancy) []chess.Cell {
	out := make([]chess.Cell, 0, len(knightOffsets))
	for _, d := range knightOffsets {
		target := p.Cell.Offset(d.di, d.dj)
		if board.IsOutOfRange(target) || occ.ally(target) {
			continue
		}
		out = append(out, target)
	}
	return out
}

// kingDestinations takes the queen's cells within one step of the king and,
// unless skipCheck is set, drops those attacked by the opponent.
func kingDestinations(p chess.Piece, board chess.Board, pieces []chess.Piece, occ occupancy, skipCheck bool) []chess.Cell {
	var out []chess.Cell
	for _, cell := range queenDestinations(p, board, occ) {
		if chebyshev(p.Cell, cell) > 1 {
			continue
		}
		if !skipCheck && CellIsAttacked(p.Colour, cell, pieces, board) {
			continue
		}
		out = append(out, cell)
	}
	return out
}
