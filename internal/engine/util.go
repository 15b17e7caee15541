package engine

import (
	"slices"

	"github.com/lgbarn/tilechess-go/internal/chess"
)

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// chebyshev returns the king-move distance between two cells.
func chebyshev(a, b chess.Cell) int {
	return max(abs(int(a.I)-int(b.I)), abs(int(a.J)-int(b.J)))
}

// containsCell reports whether cells holds c.
func containsCell(cells []chess.Cell, c chess.Cell) bool {
	return slices.Contains(cells, c)
}
