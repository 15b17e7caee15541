// Package analysis evaluates single positions: check and mate state for
// both sides, every piece's destinations, and identifiers such as the tile
// map, FEN and Zobrist hash.
package analysis

import (
	"fmt"

	"github.com/lgbarn/tilechess-go/internal/chess"
	"github.com/lgbarn/tilechess-go/internal/engine"
	"github.com/lgbarn/tilechess-go/internal/hashing"
	"github.com/lgbarn/tilechess-go/internal/tilemap"
)

// SideReport summarises one colour.
type SideReport struct {
	Colour    string `json:"colour"`
	Status    string `json:"status"`
	InCheck   bool   `json:"in_check"`
	Mated     bool   `json:"mated"`
	Pieces    int    `json:"pieces"`
	Moves     int    `json:"moves"`
	SafeMoves int    `json:"safe_moves"`
}

// PieceMoves lists the destinations of one piece. Destinations are the
// pseudo-legal set; Safe is the subset that keeps the own king out of check.
type PieceMoves struct {
	Piece        string   `json:"piece"`
	Cell         string   `json:"cell"`
	Destinations []string `json:"destinations"`
	Safe         []string `json:"safe"`
}

// Report holds analysis results for one position.
type Report struct {
	Name     string       `json:"name"`
	ToMove   string       `json:"to_move"`
	Status   string       `json:"status"`
	White    SideReport   `json:"white"`
	Black    SideReport   `json:"black"`
	Moves    []PieceMoves `json:"moves,omitempty"`
	TileMap  string       `json:"tilemap,omitempty"`
	FEN      string       `json:"fen,omitempty"`
	Hash     string       `json:"hash"`
	Warnings []string     `json:"warnings,omitempty"`

	// Position is kept for consumers that need the raw snapshot.
	Position Position          `json:"-"`
	State    chess.CheckStatus `json:"-"`
}

// Side returns the report of the given colour.
func (r *Report) Side(c chess.Colour) SideReport {
	if c == chess.White {
		return r.White
	}
	return r.Black
}

// Analyze evaluates the position for both sides. Moves lists the pieces of
// the side to move.
func Analyze(name string, pieces []chess.Piece, board chess.Board, toMove chess.Colour) *Report {
	r := &Report{
		Name:     name,
		ToMove:   toMove.String(),
		TileMap:  tilemap.Encode(pieces, board),
		Hash:     fmt.Sprintf("%016x", hashing.ZobristHash(pieces, toMove)),
		Warnings: Validate(pieces, board),
		Position: Position{Name: name, Pieces: chess.Clone(pieces), Board: board, ToMove: toMove},
	}
	if fen, err := engine.SnapshotToFEN(pieces, board, toMove); err == nil {
		r.FEN = fen
	}

	r.White = analyzeSide(chess.White, pieces, board)
	r.Black = analyzeSide(chess.Black, pieces, board)
	r.State = engine.Status(toMove, pieces, board)
	r.Status = r.State.String()

	for _, p := range pieces {
		if p.Colour != toMove {
			continue
		}
		r.Moves = append(r.Moves, PieceMoves{
			Piece:        tilemap.Token(p),
			Cell:         board.CellName(p.Cell),
			Destinations: cellNames(board, engine.LegalDestinations(p, board, pieces)),
			Safe:         cellNames(board, engine.SafeDestinations(p, board, pieces)),
		})
	}
	return r
}

// AnalyzePosition is Analyze over a parsed position.
func AnalyzePosition(pos Position) *Report {
	return Analyze(pos.Name, pos.Pieces, pos.Board, pos.ToMove)
}

func analyzeSide(colour chess.Colour, pieces []chess.Piece, board chess.Board) SideReport {
	s := SideReport{
		Colour:  colour.String(),
		InCheck: engine.KingInCheck(colour, pieces, board),
		Mated:   engine.KingIsMated(colour, pieces, board),
	}
	for _, p := range pieces {
		if p.Colour != colour {
			continue
		}
		s.Pieces++
		s.Moves += len(engine.LegalDestinations(p, board, pieces))
		s.SafeMoves += len(engine.SafeDestinations(p, board, pieces))
	}
	s.Status = engine.Status(colour, pieces, board).String()
	return s
}

func cellNames(board chess.Board, cells []chess.Cell) []string {
	names := make([]string, len(cells))
	for i, c := range cells {
		names[i] = board.CellName(c)
	}
	return names
}

// Validate reports positions the engine accepts but a real game could not
// reach: missing or extra kings, pieces off the board, shared cells and
// pawns on a back rank.
func Validate(pieces []chess.Piece, board chess.Board) []string {
	var warnings []string

	kings := map[chess.Colour]int{}
	seen := make(map[chess.Cell]bool, len(pieces))
	for _, p := range pieces {
		if board.IsOutOfRange(p.Cell) {
			warnings = append(warnings, fmt.Sprintf("%s is off the board", p))
			continue
		}
		if seen[p.Cell] {
			warnings = append(warnings, fmt.Sprintf("more than one piece on %s", board.CellName(p.Cell)))
		}
		seen[p.Cell] = true

		if p.Kind == chess.King {
			kings[p.Colour]++
		}
		if p.Kind == chess.Pawn && (p.Cell.J == board.First || p.Cell.J == board.Last) {
			warnings = append(warnings, fmt.Sprintf("%s pawn on back rank %s", p.Colour, board.CellName(p.Cell)))
		}
	}

	for _, c := range []chess.Colour{chess.White, chess.Black} {
		switch n := kings[c]; {
		case n == 0:
			warnings = append(warnings, fmt.Sprintf("%s has no king", c))
		case n > 1:
			warnings = append(warnings, fmt.Sprintf("%s has %d kings", c, n))
		}
	}
	return warnings
}
