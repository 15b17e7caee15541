package engine

import (
	"testing"

	"github.com/lgbarn/tilechess-go/internal/chess"
)

var benchFENs = map[string]string{
	"Initial":  InitialFEN,
	"Midgame":  "r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w - - 0 1",
	"Endgame":  "8/5k2/8/8/8/8/5K2/4R3 w - - 0 1",
	"MateRung": "R4k2/R7/8/8/8/8/8/K7 b - - 0 1",
}

func mustSnapshot(b *testing.B, fen string) ([]chess.Piece, chess.Colour) {
	b.Helper()
	pieces, toMove, err := SnapshotFromFEN(fen)
	if err != nil {
		b.Fatal(err)
	}
	return pieces, toMove
}

func BenchmarkLegalDestinations(b *testing.B) {
	for name, fen := range benchFENs {
		b.Run(name, func(b *testing.B) {
			pieces, toMove := mustSnapshot(b, fen)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				for _, p := range pieces {
					if p.Colour == toMove {
						LegalDestinations(p, board, pieces)
					}
				}
			}
		})
	}
}

func BenchmarkKingInCheck(b *testing.B) {
	for name, fen := range benchFENs {
		b.Run(name, func(b *testing.B) {
			pieces, toMove := mustSnapshot(b, fen)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				KingInCheck(toMove, pieces, board)
			}
		})
	}
}

func BenchmarkStatus(b *testing.B) {
	for name, fen := range benchFENs {
		b.Run(name, func(b *testing.B) {
			pieces, toMove := mustSnapshot(b, fen)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				Status(toMove, pieces, board)
			}
		})
	}
}

func BenchmarkApplyMove(b *testing.B) {
	pieces, _ := mustSnapshot(b, benchFENs["Midgame"])
	var mover chess.Piece
	var to chess.Cell
	for _, p := range pieces {
		if dests := LegalDestinations(p, board, pieces); len(dests) > 0 {
			mover, to = p, dests[0]
			break
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ApplyMove(pieces, to, mover)
	}
}
