package engine

import "github.com/lgbarn/tilechess-go/internal/chess"

// KingIsMated returns true if no pseudo-legal move of any piece of the given
// colour leaves its king out of check. A side with no moves at all is
// reported as mated; use Status to tell checkmate from stalemate.
func KingIsMated(colour chess.Colour, pieces []chess.Piece, board chess.Board) bool {
	return !HasSafeMove(colour, pieces, board)
}

// HasSafeMove returns true if the given colour has at least one move that
// does not leave its own king in check.
func HasSafeMove(colour chess.Colour, pieces []chess.Piece, board chess.Board) bool {
	for _, p := range pieces {
		if p.Colour != colour {
			continue
		}
		for _, to := range LegalDestinations(p, board, pieces) {
			if IsMoveSafe(p, to, pieces, board) {
				return true
			}
		}
	}
	return false
}

// SafeDestinations filters LegalDestinations down to the moves that would be
// accepted at commit time.
func SafeDestinations(p chess.Piece, board chess.Board, pieces []chess.Piece) []chess.Cell {
	var out []chess.Cell
	for _, to := range LegalDestinations(p, board, pieces) {
		if IsMoveSafe(p, to, pieces, board) {
			out = append(out, to)
		}
	}
	return out
}

// Status classifies the position for the given colour.
func Status(colour chess.Colour, pieces []chess.Piece, board chess.Board) chess.CheckStatus {
	inCheck := KingInCheck(colour, pieces, board)
	hasMove := HasSafeMove(colour, pieces, board)

	switch {
	case inCheck && !hasMove:
		return chess.Checkmate
	case inCheck:
		return chess.Check
	case !hasMove:
		return chess.Stalemate
	}
	return chess.NoCheck
}
