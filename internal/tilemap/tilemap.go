// Package tilemap encodes piece snapshots as pipe-delimited text grids.
//
// A grid has one line per rank, highest rank first, and one token per file:
//
//	|b_ro|b_kn|b_bi|b_qu|b_ki|b_bi|b_kn|b_ro|
//	...
//	|w_ro|w_kn|w_bi|w_qu|w_ki|w_bi|w_kn|w_ro|
//
// A token is "none" or "{w|b}_{pa|ro|kn|bi|ki|qu}".
package tilemap

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lgbarn/tilechess-go/internal/chess"
	"github.com/lgbarn/tilechess-go/internal/errors"
)

// EmptyToken marks a cell without a piece.
const EmptyToken = "none"

const separator = "|"

const expectedToken = "none or {w|b}_{pa|ro|kn|bi|ki|qu}"

var kindCodes = [chess.NumPieceKinds]string{
	chess.Pawn:   "pa",
	chess.Bishop: "bi",
	chess.Knight: "kn",
	chess.Rook:   "ro",
	chess.Queen:  "qu",
	chess.King:   "ki",
}

type tokenValue struct {
	colour chess.Colour
	kind   chess.PieceKind
}

var tokenTable = buildTokenTable()

func buildTokenTable() map[string]tokenValue {
	table := make(map[string]tokenValue, 2*len(kindCodes))
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		for kind, code := range kindCodes {
			tok := string(colour.Letter()) + "_" + code
			table[tok] = tokenValue{colour: colour, kind: chess.PieceKind(kind)}
		}
	}
	return table
}

// Token returns the grid token for a piece.
func Token(p chess.Piece) string {
	if p.Kind < 0 || p.Kind >= chess.NumPieceKinds {
		return EmptyToken
	}
	return string(p.Colour.Letter()) + "_" + kindCodes[p.Kind]
}

// ParseToken converts a piece token to its colour and kind. "none" and
// unknown tokens report false.
func ParseToken(tok string) (chess.Colour, chess.PieceKind, bool) {
	v, ok := tokenTable[tok]
	return v.colour, v.kind, ok
}

// Encode writes the snapshot as a grid covering the whole board. When two
// pieces share a cell the first one in the snapshot is written.
func Encode(pieces []chess.Piece, board chess.Board) string {
	byCell := make(map[chess.Cell]chess.Piece, len(pieces))
	for _, p := range pieces {
		if _, taken := byCell[p.Cell]; !taken {
			byCell[p.Cell] = p
		}
	}

	var sb strings.Builder
	for rank := int(board.Last); rank >= int(board.First); rank-- {
		sb.WriteString(separator)
		for file := int(board.First); file <= int(board.Last); file++ {
			if p, ok := byCell[chess.Cell{I: int8(file), J: int8(rank)}]; ok {
				sb.WriteString(Token(p))
			} else {
				sb.WriteString(EmptyToken)
			}
			sb.WriteString(separator)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// DefaultMap returns the grid of the standard starting position.
func DefaultMap() string {
	board := chess.DefaultBoard()
	return Encode(chess.StartingPosition(board), board)
}

// Decode reads a grid into a positionally indexed slice: entry
// rank*width+file holds the piece on that cell, or nil when the cell is
// empty. Rank 0 is the last line of text. Unknown tokens decode to nil.
func Decode(text string) []*chess.Piece {
	return decode(text, 0)
}

// DecodeOn is Decode with coordinates offset to start at board.First.
func DecodeOn(text string, board chess.Board) []*chess.Piece {
	return decode(text, board.First)
}

func decode(text string, origin int8) []*chess.Piece {
	var out []*chess.Piece
	for j, row := range rows(text) {
		for i, tok := range row.tokens {
			colour, kind, ok := ParseToken(tok)
			if !ok {
				out = append(out, nil)
				continue
			}
			p := chess.NewPiece(origin+int8(i), origin+int8(j), colour, kind)
			out = append(out, &p)
		}
	}
	return out
}

// Pieces compacts a decoded grid into a snapshot.
func Pieces(decoded []*chess.Piece) []chess.Piece {
	pieces := make([]chess.Piece, 0, len(decoded))
	for _, p := range decoded {
		if p != nil {
			pieces = append(pieces, *p)
		}
	}
	return pieces
}

// DecodeStrict reads a grid that must cover exactly the given board and
// contain only known tokens. Errors are *errors.ParseError values wrapping
// errors.ErrInvalidTileMap.
func DecodeStrict(text string, board chess.Board) ([]chess.Piece, error) {
	rs := rows(text)
	size := board.Size()
	if len(rs) != size {
		return nil, &errors.ParseError{
			Err:      errors.ErrInvalidTileMap,
			Source:   "tilemap",
			Expected: fmt.Sprintf("%d rows", size),
			Got:      fmt.Sprintf("%d", len(rs)),
		}
	}

	var pieces []chess.Piece
	for j, row := range rs {
		if len(row.tokens) != size {
			return nil, &errors.ParseError{
				Err:      errors.ErrInvalidTileMap,
				Source:   "tilemap",
				Line:     row.line,
				Expected: fmt.Sprintf("%d cells", size),
				Got:      fmt.Sprintf("%d", len(row.tokens)),
			}
		}
		for i, tok := range row.tokens {
			if tok == EmptyToken {
				continue
			}
			colour, kind, ok := ParseToken(tok)
			if !ok {
				return nil, &errors.ParseError{
					Err:      errors.ErrInvalidTileMap,
					Source:   "tilemap",
					Line:     row.line,
					Column:   i + 1,
					Expected: expectedToken,
					Got:      fmt.Sprintf("%q", tok),
				}
			}
			pieces = append(pieces, chess.NewPiece(board.First+int8(i), board.First+int8(j), colour, kind))
		}
	}
	return pieces, nil
}

// row is one non-blank line of a grid with its 1-based line number.
type row struct {
	line   int
	tokens []string
}

// rows splits the text into rows ordered from rank 0 upwards. Blank lines,
// surrounding whitespace and empty tokens are dropped.
func rows(text string) []row {
	var out []row
	for n, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var tokens []string
		for _, tok := range strings.Split(line, separator) {
			if tok = strings.TrimSpace(tok); tok != "" {
				tokens = append(tokens, tok)
			}
		}
		out = append(out, row{line: n + 1, tokens: tokens})
	}
	slices.Reverse(out)
	return out
}
