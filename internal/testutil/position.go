package testutil

import (
	"testing"
	"unicode"

	"github.com/lgbarn/tilechess-go/internal/chess"
)

// MustPieces builds a snapshot on the default board from FEN-style specs:
// the piece letter (upper case White, lower case Black) followed by the
// cell name, e.g. "Ke1", "qd8", "Pe2". It calls t.Fatal on a malformed spec.
func MustPieces(t *testing.T, specs ...string) []chess.Piece {
	t.Helper()
	board := chess.DefaultBoard()
	pieces := make([]chess.Piece, 0, len(specs))
	for _, spec := range specs {
		if len(spec) < 3 {
			t.Fatalf("malformed piece spec %q", spec)
		}
		kind, ok := kindFromLetter(spec[0])
		if !ok {
			t.Fatalf("unknown piece letter in %q", spec)
		}
		cell, err := board.ParseCell(spec[1:])
		if err != nil {
			t.Fatalf("piece spec %q: %v", spec, err)
		}
		colour := chess.White
		if unicode.IsLower(rune(spec[0])) {
			colour = chess.Black
		}
		pieces = append(pieces, chess.Piece{Cell: cell, Colour: colour, Kind: kind})
	}
	return pieces
}

// MustCells converts cell names on the default board, calling t.Fatal on error.
func MustCells(t *testing.T, names ...string) []chess.Cell {
	t.Helper()
	board := chess.DefaultBoard()
	cells := make([]chess.Cell, 0, len(names))
	for _, name := range names {
		cell, err := board.ParseCell(name)
		if err != nil {
			t.Fatalf("MustCells(%q): %v", name, err)
		}
		cells = append(cells, cell)
	}
	return cells
}

// MustFind returns the piece standing on the named cell, calling t.Fatal if
// the cell is empty.
func MustFind(t *testing.T, pieces []chess.Piece, name string) chess.Piece {
	t.Helper()
	cell := MustCells(t, name)[0]
	p, ok := chess.PieceAt(pieces, cell)
	if !ok {
		t.Fatalf("no piece on %s", name)
	}
	return p
}

func kindFromLetter(c byte) (chess.PieceKind, bool) {
	switch unicode.ToUpper(rune(c)) {
	case 'P':
		return chess.Pawn, true
	case 'N':
		return chess.Knight, true
	case 'B':
		return chess.Bishop, true
	case 'R':
		return chess.Rook, true
	case 'Q':
		return chess.Queen, true
	case 'K':
		return chess.King, true
	}
	return chess.Pawn, false
}
