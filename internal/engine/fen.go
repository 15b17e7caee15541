// Package engine provides the chess rule engine: pseudo-legal move
// generation, attack and check detection, move simulation and mate
// detection over caller-owned piece snapshots.
//
// Every function is pure: snapshots are read, never modified, and nothing
// is retained between calls.
package engine

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lgbarn/tilechess-go/internal/chess"
	"github.com/lgbarn/tilechess-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"

// ConvertFENCharToPiece converts a FEN character to a piece kind.
func ConvertFENCharToPiece(c byte) (chess.PieceKind, bool) {
	switch c {
	case 'K', 'k':
		return chess.King, true
	case 'Q', 'q':
		return chess.Queen, true
	case 'R', 'r':
		return chess.Rook, true
	case 'N', 'n':
		return chess.Knight, true
	case 'B', 'b':
		return chess.Bishop, true
	case 'P', 'p':
		return chess.Pawn, true
	default:
		return chess.Pawn, false
	}
}

// PieceToFENLetter returns the FEN letter for a piece (lower case for Black).
func PieceToFENLetter(p chess.Piece) byte {
	letter := p.Kind.Letter()
	if p.Colour == chess.Black {
		letter = byte(unicode.ToLower(rune(letter)))
	}
	return letter
}

// SnapshotFromFEN parses the piece placement and side to move of a FEN
// string onto the default board. Castling, en passant and clock fields are
// accepted but ignored.
func SnapshotFromFEN(fen string) ([]chess.Piece, chess.Colour, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, chess.White, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}

	pieces, err := parsePiecePositions(parts[0])
	if err != nil {
		return nil, chess.White, err
	}

	toMove, err := parseSideToMove(parts)
	if err != nil {
		return nil, chess.White, err
	}
	return pieces, toMove, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
// Counters are ints so long digit runs cannot wrap back onto the board.
func parsePiecePositions(positions string) ([]chess.Piece, error) {
	var pieces []chess.Piece
	rank := chess.LastElement
	file := chess.FirstElement

	for _, c := range positions {
		switch {
		case c == '/':
			if file != chess.BoardSize {
				return nil, fmt.Errorf("rank %d has %d files: %w", rank+1, file, errors.ErrInvalidFEN)
			}
			if rank == chess.FirstElement {
				return nil, fmt.Errorf("more than %d ranks: %w", chess.BoardSize, errors.ErrInvalidFEN)
			}
			rank--
			file = chess.FirstElement
		case c >= '1' && c <= '8':
			file += int(c - '0')
			if file > chess.BoardSize {
				return nil, fmt.Errorf("rank %d has more than %d files: %w", rank+1, chess.BoardSize, errors.ErrInvalidFEN)
			}
		default:
			kind, ok := ConvertFENCharToPiece(byte(c))
			if !ok {
				return nil, fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
			}
			if file > chess.LastElement {
				return nil, fmt.Errorf("rank %d has more than %d files: %w", rank+1, chess.BoardSize, errors.ErrInvalidFEN)
			}

			colour := chess.White
			if unicode.IsLower(c) {
				colour = chess.Black
			}
			pieces = append(pieces, chess.NewPiece(int8(file), int8(rank), colour, kind))
			file++
		}
	}
	if rank != chess.FirstElement || file != chess.BoardSize {
		return nil, fmt.Errorf("incomplete piece placement: %w", errors.ErrInvalidFEN)
	}
	return pieces, nil
}

// parseSideToMove parses the side to move field. White moves when it is absent.
func parseSideToMove(parts []string) (chess.Colour, error) {
	if len(parts) < 2 {
		return chess.White, nil
	}
	switch parts[1] {
	case "w":
		return chess.White, nil
	case "b":
		return chess.Black, nil
	default:
		return chess.White, fmt.Errorf("invalid side to move: %s: %w", parts[1], errors.ErrInvalidFEN)
	}
}

// SnapshotToFEN converts a snapshot on an 8x8 board to a FEN string.
// Castling and en passant fields are always "-".
func SnapshotToFEN(pieces []chess.Piece, board chess.Board, toMove chess.Colour) (string, error) {
	if board.Size() != chess.BoardSize {
		return "", fmt.Errorf("FEN needs an 8x8 board, got %dx%d: %w", board.Size(), board.Size(), errors.ErrInvalidBoard)
	}

	var sb strings.Builder
	writePiecePositions(&sb, pieces, board)
	sb.WriteByte(' ')
	sb.WriteByte(toMove.Letter())
	sb.WriteString(" - - 0 1")
	return sb.String(), nil
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, pieces []chess.Piece, board chess.Board) {
	for rank := int(board.Last); rank >= int(board.First); rank-- {
		emptyCount := 0
		for file := int(board.First); file <= int(board.Last); file++ {
			p, ok := chess.PieceAt(pieces, chess.Cell{I: int8(file), J: int8(rank)})
			if !ok {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(PieceToFENLetter(p))
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > int(board.First) {
			sb.WriteByte('/')
		}
	}
}
