package engine

import "github.com/lgbarn/tilechess-go/internal/chess"

// occupancy partitions a snapshot into cells held by the mover's side and
// cells held by the opponent. It is rebuilt on every call.
type occupancy struct {
	allies  map[chess.Cell]struct{}
	enemies map[chess.Cell]struct{}
}

// splitByColour builds the occupancy seen by a piece of the given colour.
func splitByColour(colour chess.Colour, pieces []chess.Piece) occupancy {
	occ := occupancy{
		allies:  make(map[chess.Cell]struct{}, len(pieces)),
		enemies: make(map[chess.Cell]struct{}, len(pieces)),
	}
	for _, p := range pieces {
		if p.Colour == colour {
			occ.allies[p.Cell] = struct{}{}
		} else {
			occ.enemies[p.Cell] = struct{}{}
		}
	}
	return occ
}

func (o occupancy) ally(c chess.Cell) bool {
	_, ok := o.allies[c]
	return ok
}

func (o occupancy) enemy(c chess.Cell) bool {
	_, ok := o.enemies[c]
	return ok
}

func (o occupancy) occupied(c chess.Cell) bool {
	return o.ally(c) || o.enemy(c)
}

// LegalDestinations returns the pseudo-legal destinations of p: cells that
// match its movement pattern and the current occupancy. Whether a move
// leaves the mover's own king in check is not considered, except for the
// king, whose destinations exclude cells attacked by the opponent.
func LegalDestinations(p chess.Piece, board chess.Board, pieces []chess.Piece) []chess.Cell {
	return destinations(p, board, pieces, false)
}

// destinations dispatches on kind. skipCheck suppresses the king's attack
// filter, which is needed when one king's moves are evaluated while testing
// whether the other king may step next to it.
func destinations(p chess.Piece, board chess.Board, pieces []chess.Piece, skipCheck bool) []chess.Cell {
	occ := splitByColour(p.Colour, pieces)

	switch p.Kind {
	case chess.Pawn:
		return pawnDestinations(p, board, occ)
	case chess.Rook:
		return rookDestinations(p, board, occ)
	case chess.Bishop:
		return bishopDestinations(p, board, occ)
	case chess.Knight:
		return knightDestinations(p, board, occ)
	case chess.Queen:
		return queenDestinations(p, board, occ)
	case chess.King:
		return kingDestinations(p, board, pieces, occ, skipCheck)
	}
	return nil
}
