package chess

import (
	"errors"
	"testing"

	chesserrors "github.com/lgbarn/tilechess-go/internal/errors"
)

func TestNewBoard(t *testing.T) {
	tests := []struct {
		name        string
		first, last int8
		wantSize    int
		wantErr     bool
	}{
		{"standard", 0, 7, 8, false},
		{"offset", 1, 8, 8, false},
		{"smallest", 0, 3, 4, false},
		{"largest", 0, 25, 26, false},
		{"too small", 0, 2, 0, true},
		{"too large", 0, 26, 0, true},
		{"inverted", 7, 0, 0, true},
		{"highest", MaxCoord - 7, MaxCoord, 8, false},
		{"lowest", MinCoord, MinCoord + 7, 8, false},
		{"top of int8", 120, 127, 0, true},
		{"bottom of int8", -128, -121, 0, true},
		{"one short of top", 118, MaxCoord + 1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBoard(tt.first, tt.last)
			if tt.wantErr {
				if !errors.Is(err, chesserrors.ErrInvalidBoard) {
					t.Errorf("NewBoard(%d, %d) error = %v; want ErrInvalidBoard", tt.first, tt.last, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewBoard(%d, %d) error = %v", tt.first, tt.last, err)
			}
			if b.Size() != tt.wantSize {
				t.Errorf("Size() = %d; want %d", b.Size(), tt.wantSize)
			}
			if first, last := b.CellRange(); first != tt.first || last != tt.last {
				t.Errorf("CellRange() = %d..%d; want %d..%d", first, last, tt.first, tt.last)
			}
		})
	}
}

func TestIsOutOfRange(t *testing.T) {
	b := DefaultBoard()
	tests := []struct {
		cell Cell
		want bool
	}{
		{Cell{0, 0}, false},
		{Cell{7, 7}, false},
		{Cell{3, 5}, false},
		{Cell{-1, 0}, true},
		{Cell{0, -1}, true},
		{Cell{8, 0}, true},
		{Cell{0, 8}, true},
	}

	for _, tt := range tests {
		if got := b.IsOutOfRange(tt.cell); got != tt.want {
			t.Errorf("IsOutOfRange(%v) = %v; want %v", tt.cell, got, tt.want)
		}
	}
}

func TestCells(t *testing.T) {
	b := DefaultBoard()
	n := 0
	seen := make(map[Cell]bool)
	for c := range b.Cells() {
		if b.IsOutOfRange(c) {
			t.Fatalf("Cells yielded off-board cell %v", c)
		}
		seen[c] = true
		n++
	}
	if n != 64 || len(seen) != 64 {
		t.Errorf("Cells yielded %d cells (%d distinct); want 64", n, len(seen))
	}

	// Early termination.
	count := 0
	for range b.Cells() {
		count++
		if count == 3 {
			break
		}
	}
	if count != 3 {
		t.Errorf("early break yielded %d cells; want 3", count)
	}
}

func TestParseCell(t *testing.T) {
	b := DefaultBoard()
	tests := []struct {
		name    string
		want    Cell
		wantErr bool
	}{
		{"a1", Cell{0, 0}, false},
		{"h8", Cell{7, 7}, false},
		{"e4", Cell{4, 3}, false},
		{"i1", Cell{}, true},
		{"a9", Cell{}, true},
		{"a0", Cell{}, true},
		{"a257", Cell{}, true},
		{"a-1", Cell{}, true},
		{"z1", Cell{}, true},
		{"4e", Cell{}, true},
		{"e", Cell{}, true},
		{"", Cell{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.ParseCell(tt.name)
			if tt.wantErr {
				if !errors.Is(err, chesserrors.ErrInvalidCell) {
					t.Errorf("ParseCell(%q) error = %v; want ErrInvalidCell", tt.name, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCell(%q) error = %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("ParseCell(%q) = %v; want %v", tt.name, got, tt.want)
			}
			if name := b.CellName(got); name != tt.name {
				t.Errorf("CellName(%v) = %q; want %q", got, name, tt.name)
			}
		})
	}
}

func TestCellNameOffsetBoard(t *testing.T) {
	b, err := NewBoard(1, 8)
	if err != nil {
		t.Fatal(err)
	}
	if got := b.CellName(Cell{1, 1}); got != "a1" {
		t.Errorf("CellName({1,1}) = %q; want a1", got)
	}
	c, err := b.ParseCell("h8")
	if err != nil || c != (Cell{8, 8}) {
		t.Errorf("ParseCell(h8) = %v, %v; want {8,8}", c, err)
	}
}

func TestBoardAtCoordLimits(t *testing.T) {
	for _, first := range []int8{MinCoord, MaxCoord - MaxBoardSize + 1} {
		b, err := NewBoard(first, first+MaxBoardSize-1)
		if err != nil {
			t.Fatalf("NewBoard(%d): %v", first, err)
		}

		n := 0
		for c := range b.Cells() {
			if b.IsOutOfRange(c) {
				t.Fatalf("Cells yielded %v outside %d..%d", c, b.First, b.Last)
			}
			n++
		}
		if n != MaxBoardSize*MaxBoardSize {
			t.Errorf("board at %d: %d cells, want %d", first, n, MaxBoardSize*MaxBoardSize)
		}

		c, err := b.ParseCell("z26")
		if err != nil || c != (Cell{b.Last, b.Last}) {
			t.Errorf("ParseCell(z26) on board at %d = %v, %v", first, c, err)
		}
		if _, err := b.ParseCell("a27"); !errors.Is(err, chesserrors.ErrInvalidCell) {
			t.Errorf("ParseCell(a27) on board at %d error = %v", first, err)
		}
	}
}

func TestCells_UnvalidatedEdgeBoard(t *testing.T) {
	for _, b := range []Board{{First: 120, Last: 127}, {First: -128, Last: -121}} {
		n := 0
		for range b.Cells() {
			n++
		}
		if n != 64 {
			t.Errorf("Board{%d, %d}.Cells() yielded %d cells, want 64", b.First, b.Last, n)
		}
	}
}

func TestCellString(t *testing.T) {
	tests := []struct {
		cell Cell
		want string
	}{
		{Cell{0, 0}, "a1"},
		{Cell{4, 3}, "e4"},
		{Cell{7, 7}, "h8"},
		{Cell{-1, 2}, "(-1,2)"},
	}
	for _, tt := range tests {
		if got := tt.cell.String(); got != tt.want {
			t.Errorf("%#v.String() = %q; want %q", tt.cell, got, tt.want)
		}
	}
	if got := (Cell{2, 2}).Offset(1, -2); got != (Cell{3, 0}) {
		t.Errorf("Offset = %v; want {3,0}", got)
	}
}

func TestStartingPosition(t *testing.T) {
	b := DefaultBoard()
	pieces := StartingPosition(b)

	if len(pieces) != 32 {
		t.Fatalf("len = %d; want 32", len(pieces))
	}

	counts := make(map[Colour]map[PieceKind]int)
	for _, p := range pieces {
		if counts[p.Colour] == nil {
			counts[p.Colour] = make(map[PieceKind]int)
		}
		counts[p.Colour][p.Kind]++
	}
	want := map[PieceKind]int{Pawn: 8, Knight: 2, Bishop: 2, Rook: 2, Queen: 1, King: 1}
	for _, colour := range []Colour{White, Black} {
		for kind, n := range want {
			if counts[colour][kind] != n {
				t.Errorf("%v %v count = %d; want %d", colour, kind, counts[colour][kind], n)
			}
		}
	}

	checks := []struct {
		cell Cell
		want Piece
	}{
		{Cell{3, 0}, NewPiece(3, 0, White, Queen)},
		{Cell{4, 0}, NewPiece(4, 0, White, King)},
		{Cell{3, 7}, NewPiece(3, 7, Black, Queen)},
		{Cell{4, 7}, NewPiece(4, 7, Black, King)},
		{Cell{0, 1}, NewPiece(0, 1, White, Pawn)},
		{Cell{7, 6}, NewPiece(7, 6, Black, Pawn)},
	}
	for _, c := range checks {
		got, ok := PieceAt(pieces, c.cell)
		if !ok || got != c.want {
			t.Errorf("PieceAt(%v) = %v, %v; want %v", c.cell, got, ok, c.want)
		}
	}

	if _, ok := PieceAt(pieces, Cell{4, 4}); ok {
		t.Error("PieceAt(e5) found a piece in the starting position")
	}
}

func TestClone(t *testing.T) {
	pieces := StartingPosition(DefaultBoard())
	clone := Clone(pieces)
	clone[0] = clone[0].At(Cell{5, 5})

	if pieces[0].Cell == clone[0].Cell {
		t.Error("modifying the clone changed the original")
	}
}

func TestColour(t *testing.T) {
	if White.Opposite() != Black || Black.Opposite() != White {
		t.Error("Opposite is not an involution")
	}
	if ColourOffset(White) != 1 || ColourOffset(Black) != -1 {
		t.Error("unexpected pawn direction")
	}
	if White.Letter() != 'w' || Black.Letter() != 'b' {
		t.Error("unexpected colour letters")
	}

	for _, s := range []string{"w", "white", "White"} {
		if c, ok := ParseColour(s); !ok || c != White {
			t.Errorf("ParseColour(%q) = %v, %v; want White", s, c, ok)
		}
	}
	if c, ok := ParseColour("b"); !ok || c != Black {
		t.Errorf("ParseColour(b) = %v, %v; want Black", c, ok)
	}
	if _, ok := ParseColour("red"); ok {
		t.Error("ParseColour(red) succeeded")
	}
}

func TestPieceKind(t *testing.T) {
	letters := "PBNRQK"
	for k := Pawn; k < NumPieceKinds; k++ {
		if k.Letter() != letters[k] {
			t.Errorf("%v.Letter() = %c; want %c", k, k.Letter(), letters[k])
		}
	}
	if NumPieceKinds.String() != "Unknown" || NumPieceKinds.Letter() != '?' {
		t.Error("out-of-range kind should be Unknown/?")
	}
	if got := NewPiece(6, 0, White, Knight).String(); got != "White Knight g1" {
		t.Errorf("Piece.String() = %q", got)
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		status   CheckStatus
		name     string
		terminal bool
	}{
		{NoCheck, "none", false},
		{Check, "check", false},
		{Checkmate, "checkmate", true},
		{Stalemate, "stalemate", true},
	}
	for _, tt := range tests {
		if tt.status.String() != tt.name || tt.status.Terminal() != tt.terminal {
			t.Errorf("%d: got %q/%v; want %q/%v", tt.status, tt.status.String(), tt.status.Terminal(), tt.name, tt.terminal)
		}
	}
}
