package engine

import (
	"iter"

	"github.com/lgbarn/tilechess-go/internal/chess"
)

// direction is a single (file, rank) step.
type direction struct {
	di, dj int8
}

// Ray orders match the order destinations are reported in.
var (
	straightDirs = []direction{{1, 0}, {-1, 0}, {0, -1}, {0, 1}}
	diagonalDirs = []direction{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
)

// ray lazily yields the cells reached by repeatedly stepping from start in
// direction d. It stops as soon as a step would leave the board, so it never
// yields more than board.Size()-1 cells. Each call returns an independent
// sequence.
func ray(start chess.Cell, d direction, board chess.Board) iter.Seq[chess.Cell] {
	return func(yield func(chess.Cell) bool) {
		cell := start
		for {
			cell = cell.Offset(d.di, d.dj)
			if board.IsOutOfRange(cell) {
				return
			}
			if !yield(cell) {
				return
			}
		}
	}
}

// walkRay collects reachable cells along a ray: an ally blocks (excluded),
// an enemy is captured (included) and ends the ray, empty cells are included.
func walkRay(cells iter.Seq[chess.Cell], occ occupancy, out []chess.Cell) []chess.Cell {
	for cell := range cells {
		if occ.ally(cell) {
			break
		}
		out = append(out, cell)
		if occ.enemy(cell) {
			break
		}
	}
	return out
}

// slidingDestinations walks each ray from p's cell.
func slidingDestinations(p chess.Piece, board chess.Board, occ occupancy, dirs []direction) []chess.Cell {
	var out []chess.Cell
	for _, d := range dirs {
		out = walkRay(ray(p.Cell, d, board), occ, out)
	}
	return out
}

func rookDestinations(p chess.Piece, board chess.Board, occ occupancy) []chess.Cell {
	return slidingDestinations(p, board, occ, straightDirs)
}

func bishopDestinations(p chess.Piece, board chess.Board, occ occupancy) []chess.Cell {
	return slidingDestinations(p, board, occ, diagonalDirs)
}

func queenDestinations(p chess.Piece, board chess.Board, occ occupancy) []chess.Cell {
	return append(rookDestinations(p, board, occ), bishopDestinations(p, board, occ)...)
}
