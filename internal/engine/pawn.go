package engine

import "github.com/lgbarn/tilechess-go/internal/chess"

// pawnDestinations returns forward pushes onto empty cells (two from the
// starting rank) and diagonal captures of enemy pieces. There is no
// en passant and no promotion.
func pawnDestinations(p chess.Piece, board chess.Board, occ occupancy) []chess.Cell {
	var out []chess.Cell
	dir := chess.ColourOffset(p.Colour)

	one := p.Cell.Offset(0, dir)
	if !board.IsOutOfRange(one) && !occ.occupied(one) {
		out = append(out, one)

		two := p.Cell.Offset(0, 2*dir)
		if onStartingRank(p, board) && !board.IsOutOfRange(two) && !occ.occupied(two) {
			out = append(out, two)
		}
	}

	for _, di := range []int8{1, -1} {
		target := p.Cell.Offset(di, dir)
		if occ.enemy(target) {
			out = append(out, target)
		}
	}
	return out
}

// onStartingRank reports whether a pawn still stands on its initial rank.
func onStartingRank(p chess.Piece, board chess.Board) bool {
	if p.Colour == chess.White {
		return p.Cell.J == board.First+1
	}
	return p.Cell.J == board.Last-1
}
