package chess

import (
	"fmt"
	"iter"
	"math"
	"strconv"

	"github.com/lgbarn/tilechess-go/internal/errors"
)

// Constants for the default board dimensions.
const (
	BoardSize    = 8
	FirstElement = 0
	LastElement  = BoardSize - 1

	// MinBoardSize is the smallest grid that still has room for pawns
	// between the two back ranks.
	MinBoardSize = 4

	// MaxBoardSize keeps file letters within a..z.
	MaxBoardSize = 26

	// MinCoord and MaxCoord bound board coordinates so that a two-cell
	// offset from any cell on the board still fits in an int8.
	MinCoord = math.MinInt8 + 2
	MaxCoord = math.MaxInt8 - 2
)

// Cell is a board coordinate: file I, rank J.
type Cell struct {
	I int8
	J int8
}

// Offset returns the cell shifted by di files and dj ranks.
func (c Cell) Offset(di, dj int8) Cell {
	return Cell{I: c.I + di, J: c.J + dj}
}

// String returns the algebraic name of the cell assuming a zero-based board
// (a1 is {0,0}).
func (c Cell) String() string {
	if c.I < 0 || c.I >= MaxBoardSize || c.J < 0 {
		return fmt.Sprintf("(%d,%d)", c.I, c.J)
	}
	return string(rune('a'+c.I)) + strconv.Itoa(int(c.J)+1)
}

// Board describes the inclusive coordinate range of the grid.
type Board struct {
	First int8
	Last  int8
}

// DefaultBoard returns the standard 8x8 board.
func DefaultBoard() Board {
	return Board{First: FirstElement, Last: LastElement}
}

// NewBoard validates and returns a board spanning first..last inclusive.
func NewBoard(first, last int8) (Board, error) {
	size := int(last) - int(first) + 1
	if size < MinBoardSize || size > MaxBoardSize {
		return Board{}, fmt.Errorf("board %d..%d has %d files: %w", first, last, size, errors.ErrInvalidBoard)
	}
	if first < MinCoord || last > MaxCoord {
		return Board{}, fmt.Errorf("board %d..%d outside %d..%d: %w", first, last, MinCoord, MaxCoord, errors.ErrInvalidBoard)
	}
	return Board{First: first, Last: last}, nil
}

// CellRange returns the inclusive bounds used for iteration.
func (b Board) CellRange() (first, last int8) {
	return b.First, b.Last
}

// Size returns the number of files (and ranks) on the board.
func (b Board) Size() int {
	return int(b.Last) - int(b.First) + 1
}

// IsOutOfRange returns true if either coordinate of the cell is off the board.
func (b Board) IsOutOfRange(c Cell) bool {
	return b.outOfRange(c.I) || b.outOfRange(c.J)
}

func (b Board) outOfRange(v int8) bool {
	return v < b.First || v > b.Last
}

// Cells yields every cell of the board, rank by rank from First to Last.
// Counters are ints so a Board built without NewBoard still terminates.
func (b Board) Cells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for j := int(b.First); j <= int(b.Last); j++ {
			for i := int(b.First); i <= int(b.Last); i++ {
				if !yield(Cell{I: int8(i), J: int8(j)}) {
					return
				}
			}
		}
	}
}

// CellName returns the algebraic name of c relative to the board's First element.
func (b Board) CellName(c Cell) string {
	return Cell{I: c.I - b.First, J: c.J - b.First}.String()
}

// ParseCell converts an algebraic name such as "e4" into a cell on this board.
func (b Board) ParseCell(name string) (Cell, error) {
	if len(name) < 2 || name[0] < 'a' || name[0] > 'z' {
		return Cell{}, fmt.Errorf("cell %q: %w", name, errors.ErrInvalidCell)
	}
	rank, err := strconv.Atoi(name[1:])
	if err != nil {
		return Cell{}, fmt.Errorf("cell %q: %w", name, errors.ErrInvalidCell)
	}
	file := int(name[0] - 'a')
	if rank < 1 || rank > b.Size() || file >= b.Size() {
		return Cell{}, fmt.Errorf("cell %q is off the board: %w", name, errors.ErrInvalidCell)
	}
	return Cell{I: b.First + int8(file), J: b.First + int8(rank-1)}, nil
}

// StartingPosition returns the standard 32-piece layout for the board.
// Boards narrower than eight files receive as much of the back rank as fits.
func StartingPosition(b Board) []Piece {
	backRank := []PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	pieces := make([]Piece, 0, 4*b.Size())

	for idx := 0; idx < b.Size() && idx < len(backRank); idx++ {
		i := b.First + int8(idx)
		pieces = append(pieces, NewPiece(i, b.First, White, backRank[idx]))
	}
	for i := int(b.First); i <= int(b.Last); i++ {
		pieces = append(pieces, NewPiece(int8(i), b.First+1, White, Pawn))
	}
	for i := int(b.First); i <= int(b.Last); i++ {
		pieces = append(pieces, NewPiece(int8(i), b.Last-1, Black, Pawn))
	}
	for idx := 0; idx < b.Size() && idx < len(backRank); idx++ {
		i := b.First + int8(idx)
		pieces = append(pieces, NewPiece(i, b.Last, Black, backRank[idx]))
	}
	return pieces
}

// PieceAt returns the first piece of the snapshot standing on cell.
func PieceAt(pieces []Piece, cell Cell) (Piece, bool) {
	for _, p := range pieces {
		if p.Cell == cell {
			return p, true
		}
	}
	return Piece{}, false
}

// Clone returns an independent copy of a snapshot.
func Clone(pieces []Piece) []Piece {
	out := make([]Piece, len(pieces))
	copy(out, pieces)
	return out
}
