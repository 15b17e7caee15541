package engine

import (
	"testing"

	refchess "github.com/corentings/chess/v2"

	"github.com/lgbarn/tilechess-go/internal/chess"
)

// referenceGame loads a FEN into the corentings/chess engine.
func referenceGame(t *testing.T, fen string) *refchess.Game {
	t.Helper()
	opt, err := refchess.FEN(fen)
	if err != nil {
		t.Fatalf("reference FEN %q: %v", fen, err)
	}
	return refchess.NewGame(opt)
}

func safeMoveCount(colour chess.Colour, pieces []chess.Piece) int {
	n := 0
	for _, p := range pieces {
		if p.Colour == colour {
			n += len(SafeDestinations(p, board, pieces))
		}
	}
	return n
}

// Positions avoid castling rights, en passant, promotion and pawns next to
// kings, where the two rule sets intentionally differ.
func TestAgainstReferenceEngine(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"initial", InitialFEN},
		{"rook ladder mate", "R4k2/R7/8/8/8/8/8/K7 b - - 0 1"},
		{"rook ladder check", "R7/R4k2/8/8/8/8/8/K7 b - - 0 1"},
		{"stalemate", "k7/8/1Q6/8/8/8/8/7K b - - 0 1"},
		{"back rank mate", "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1"},
		{"defended queen mate", "7k/6Q1/5K2/8/8/8/8/8 b - - 0 1"},
		{"two rooks", "4k3/8/8/8/8/8/8/R3K2R w - - 0 1"},
		{"pinned knight", "4k3/4r3/8/8/8/8/4N3/4K3 w - - 0 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pieces, toMove, err := SnapshotFromFEN(tt.fen)
			if err != nil {
				t.Fatalf("SnapshotFromFEN: %v", err)
			}
			game := referenceGame(t, tt.fen)

			var want refchess.Method
			switch Status(toMove, pieces, board) {
			case chess.Checkmate:
				want = refchess.Checkmate
			case chess.Stalemate:
				want = refchess.Stalemate
			default:
				want = refchess.NoMethod
			}
			if got := game.Method(); got != want {
				t.Errorf("reference method = %v, engine implies %v", got, want)
			}

			if got, want := safeMoveCount(toMove, pieces), len(game.ValidMoves()); got != want {
				t.Errorf("engine has %d safe moves, reference has %d", got, want)
			}
		})
	}
}
