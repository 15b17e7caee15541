// Package chess provides core chess types and board geometry.
package chess

// Colour represents the colour of a piece or player.
type Colour int

const (
	White Colour = iota
	Black
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Letter returns the single lower-case letter used for a colour in tile maps and FEN.
func (c Colour) Letter() byte {
	if c == White {
		return 'w'
	}
	return 'b'
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// ParseColour converts "w"/"white"/"b"/"black" (any case) to a colour.
func ParseColour(s string) (Colour, bool) {
	switch s {
	case "w", "W", "white", "White", "WHITE":
		return White, true
	case "b", "B", "black", "Black", "BLACK":
		return Black, true
	}
	return White, false
}

// ColourOffset returns +1 for White, -1 for Black (for pawn direction).
func ColourOffset(colour Colour) int8 {
	if colour == White {
		return 1
	}
	return -1
}

// PieceKind represents a chess piece type.
type PieceKind int

const (
	Pawn PieceKind = iota
	Bishop
	Knight
	Rook
	Queen
	King
	NumPieceKinds
)

// String returns the string representation of a piece kind.
func (k PieceKind) String() string {
	names := []string{"Pawn", "Bishop", "Knight", "Rook", "Queen", "King"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece kind (uppercase).
func (k PieceKind) Letter() byte {
	letters := []byte{'P', 'B', 'N', 'R', 'Q', 'K'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// Piece is a coloured piece standing on a cell.
type Piece struct {
	Cell   Cell
	Colour Colour
	Kind   PieceKind
}

// NewPiece creates a piece at file i, rank j.
func NewPiece(i, j int8, colour Colour, kind PieceKind) Piece {
	return Piece{Cell: Cell{I: i, J: j}, Colour: colour, Kind: kind}
}

// At returns a copy of the piece relocated to cell.
func (p Piece) At(cell Cell) Piece {
	p.Cell = cell
	return p
}

// String returns e.g. "White Knight g1".
func (p Piece) String() string {
	return p.Colour.String() + " " + p.Kind.String() + " " + p.Cell.String()
}

// CheckStatus describes the state of a side's king.
type CheckStatus int

const (
	NoCheck CheckStatus = iota
	Check
	Checkmate
	Stalemate
)

// String returns the string representation of a check status.
func (s CheckStatus) String() string {
	switch s {
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	}
	return "none"
}

// Terminal reports whether no further moves can be played.
func (s CheckStatus) Terminal() bool {
	return s == Checkmate || s == Stalemate
}
