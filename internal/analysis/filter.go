package analysis

import "github.com/lgbarn/tilechess-go/internal/chess"

// Filter selects reports by the status of the side to move and by the
// number of pieces on the board. A zero Filter matches everything.
type Filter struct {
	Check     bool // side to move is in check (including checkmate)
	Checkmate bool
	Stalemate bool

	// Piece count bounds, 0 = unbounded.
	MinPieces int
	MaxPieces int
}

// Active reports whether any status condition is set.
func (f Filter) Active() bool {
	return f.Check || f.Checkmate || f.Stalemate
}

// Matches reports whether the report is within the piece bounds and
// satisfies at least one status condition.
func (f Filter) Matches(r *Report) bool {
	n := r.White.Pieces + r.Black.Pieces
	if f.MinPieces > 0 && n < f.MinPieces {
		return false
	}
	if f.MaxPieces > 0 && n > f.MaxPieces {
		return false
	}
	if !f.Active() {
		return true
	}

	switch r.State {
	case chess.Check:
		return f.Check
	case chess.Checkmate:
		return f.Check || f.Checkmate
	case chess.Stalemate:
		return f.Stalemate
	}
	return false
}
