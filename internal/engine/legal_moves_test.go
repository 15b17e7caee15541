package engine

import (
	"testing"

	"github.com/lgbarn/tilechess-go/internal/chess"
	"github.com/lgbarn/tilechess-go/internal/testutil"
)

var board = chess.DefaultBoard()

func TestLegalDestinations_RookOnEmptyBoard(t *testing.T) {
	for _, name := range []string{"a1", "d4", "h8", "e2", "b7"} {
		t.Run(name, func(t *testing.T) {
			rook := testutil.MustPieces(t, "R"+name)
			got := LegalDestinations(rook[0], board, rook)
			if len(got) != 14 {
				t.Errorf("rook on %s has %d destinations, want 14: %v", name, len(got), got)
			}
		})
	}
}

func TestLegalDestinations_Rook(t *testing.T) {
	tests := []struct {
		name   string
		pieces []string
		want   []string
	}{
		{
			name:   "ally blocks and is excluded",
			pieces: []string{"Ra1", "Pa3", "Nb1"},
			want:   []string{"a2"},
		},
		{
			name:   "enemy is captured and ends the ray",
			pieces: []string{"Ra1", "pa3", "nc1"},
			want:   []string{"a2", "a3", "b1", "c1"},
		},
		{
			name:   "boxed in",
			pieces: []string{"Rd4", "Pd5", "Pd3", "Pc4", "Pe4"},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pieces := testutil.MustPieces(t, tt.pieces...)
			got := LegalDestinations(pieces[0], board, pieces)
			testutil.AssertSameCells(t, got, testutil.MustCells(t, tt.want...))
		})
	}
}

func TestLegalDestinations_Pawn(t *testing.T) {
	tests := []struct {
		name   string
		pieces []string
		want   []string
	}{
		{"white on starting rank", []string{"Pe2"}, []string{"e3", "e4"}},
		{"white after first move", []string{"Pe3"}, []string{"e4"}},
		{"black on starting rank", []string{"pe7"}, []string{"e6", "e5"}},
		{"black after first move", []string{"pe6"}, []string{"e5"}},
		{"diagonal captures", []string{"Pe2", "pd3", "pf3"}, []string{"e3", "e4", "d3", "f3"}},
		{"no capture of allies", []string{"Pe2", "Nd3", "Bf3"}, []string{"e3", "e4"}},
		{"blocked directly ahead", []string{"Pe2", "pe3"}, nil},
		{"double step blocked", []string{"Pe2", "pe4"}, []string{"e3"}},
		{"black captures downward", []string{"pd5", "Pc4", "Pe4", "Pd4"}, []string{"c4", "e4"}},
		{"last rank has no forward move", []string{"Pe8"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pieces := testutil.MustPieces(t, tt.pieces...)
			got := LegalDestinations(pieces[0], board, pieces)
			testutil.AssertSameCells(t, got, testutil.MustCells(t, tt.want...))
		})
	}
}

func TestLegalDestinations_Knight(t *testing.T) {
	tests := []struct {
		name   string
		pieces []string
		want   []string
	}{
		{"corner", []string{"Na1"}, []string{"b3", "c2"}},
		{"centre", []string{"Nd4"}, []string{"b3", "b5", "c2", "c6", "e2", "e6", "f3", "f5"}},
		{"allies excluded, enemies captured", []string{"Na1", "Pb3", "pc2"}, []string{"c2"}},
		{"jumps over pieces", []string{"Nb1", "Pa2", "Pb2", "Pc2", "Pd2"}, []string{"a3", "c3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pieces := testutil.MustPieces(t, tt.pieces...)
			got := LegalDestinations(pieces[0], board, pieces)
			testutil.AssertSameCells(t, got, testutil.MustCells(t, tt.want...))
		})
	}
}

func TestLegalDestinations_Bishop(t *testing.T) {
	tests := []struct {
		name   string
		pieces []string
		want   []string
	}{
		{"edge", []string{"Bc1"}, []string{"b2", "a3", "d2", "e3", "f4", "g5", "h6"}},
		{"blocked", []string{"Bc1", "Pb2", "pe3"}, []string{"d2", "e3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pieces := testutil.MustPieces(t, tt.pieces...)
			got := LegalDestinations(pieces[0], board, pieces)
			testutil.AssertSameCells(t, got, testutil.MustCells(t, tt.want...))
		})
	}

	t.Run("centre of empty board", func(t *testing.T) {
		pieces := testutil.MustPieces(t, "Bd4")
		if got := LegalDestinations(pieces[0], board, pieces); len(got) != 13 {
			t.Errorf("bishop on d4 has %d destinations, want 13", len(got))
		}
	})
}

func TestLegalDestinations_QueenIsRookPlusBishop(t *testing.T) {
	pieces := testutil.MustPieces(t, "Qd4", "pd6", "Pf6", "Nb2")
	queen := pieces[0]
	rook := chess.Piece{Cell: queen.Cell, Colour: queen.Colour, Kind: chess.Rook}
	bishop := chess.Piece{Cell: queen.Cell, Colour: queen.Colour, Kind: chess.Bishop}

	want := append(LegalDestinations(rook, board, pieces), LegalDestinations(bishop, board, pieces)...)
	testutil.AssertEqual(t, LegalDestinations(queen, board, pieces), want)

	empty := testutil.MustPieces(t, "Qd4")
	if got := LegalDestinations(empty[0], board, empty); len(got) != 27 {
		t.Errorf("queen on d4 has %d destinations, want 27", len(got))
	}
}

func TestLegalDestinations_King(t *testing.T) {
	tests := []struct {
		name   string
		pieces []string
		want   []string
	}{
		{
			name:   "alone on its home cell",
			pieces: []string{"Ke1"},
			want:   []string{"d1", "f1", "d2", "e2", "f2"},
		},
		{
			name:   "attacked rank removed",
			pieces: []string{"Ke1", "ra2"},
			want:   []string{"d1", "f1"},
		},
		{
			name:   "cannot step next to the enemy king",
			pieces: []string{"Ke1", "ke3"},
			want:   []string{"d1", "f1"},
		},
		{
			name:   "captures an undefended piece",
			pieces: []string{"Ke1", "qe2", "ka8"},
			want:   []string{"e2"},
		},
		{
			name:   "surrounded by allies",
			pieces: []string{"Ke1", "Qd1", "Bf1", "Pd2", "Pe2", "Pf2"},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pieces := testutil.MustPieces(t, tt.pieces...)
			got := LegalDestinations(pieces[0], board, pieces)
			testutil.AssertSameCells(t, got, testutil.MustCells(t, tt.want...))
		})
	}
}

func TestLegalDestinations_KingMutualRecursionTerminates(t *testing.T) {
	pieces := testutil.MustPieces(t, "Kd4", "kf4")
	white := LegalDestinations(pieces[0], board, pieces)
	black := LegalDestinations(pieces[1], board, pieces)

	testutil.AssertSameCells(t, white, testutil.MustCells(t, "c3", "c4", "c5", "d3", "d5"))
	testutil.AssertSameCells(t, black, testutil.MustCells(t, "f3", "f5", "g3", "g4", "g5"))
}

func TestLegalDestinations_PinnedPieceStillMoves(t *testing.T) {
	pieces := testutil.MustPieces(t, "Re2", "Ke1", "re8", "kh8")
	got := LegalDestinations(pieces[0], board, pieces)

	if !containsCell(got, testutil.MustCells(t, "d2")[0]) {
		t.Errorf("pinned rook destinations %v should still include d2", got)
	}
}

func TestLegalDestinations_StartingPosition(t *testing.T) {
	pieces := chess.StartingPosition(board)

	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		total := 0
		for _, p := range pieces {
			if p.Colour == colour {
				total += len(LegalDestinations(p, board, pieces))
			}
		}
		if total != 20 {
			t.Errorf("%v has %d destinations in the starting position, want 20", colour, total)
		}
	}
}

func TestLegalDestinations_DoesNotMutateSnapshot(t *testing.T) {
	pieces := chess.StartingPosition(board)
	before := chess.Clone(pieces)

	for _, p := range pieces {
		LegalDestinations(p, board, pieces)
	}
	testutil.AssertEqual(t, pieces, before)
}

func TestLegalDestinations_OffsetBoard(t *testing.T) {
	offset, err := chess.NewBoard(1, 8)
	if err != nil {
		t.Fatalf("NewBoard(1, 8): %v", err)
	}

	pawn := chess.NewPiece(3, 2, chess.White, chess.Pawn)
	got := LegalDestinations(pawn, offset, []chess.Piece{pawn})
	testutil.AssertSameCells(t, got, []chess.Cell{{I: 3, J: 3}, {I: 3, J: 4}})

	rook := chess.NewPiece(1, 1, chess.White, chess.Rook)
	for _, c := range LegalDestinations(rook, offset, []chess.Piece{rook}) {
		if offset.IsOutOfRange(c) {
			t.Errorf("destination %v is off the board", c)
		}
	}
}
