package config

// AnnotationConfig selects the sections included in text reports.
type AnnotationConfig struct {
	ShowGrid     bool // tile map grid
	ShowMoves    bool // per-piece destination lists
	ShowFEN      bool // FEN line on 8x8 boards
	ShowHash     bool // Zobrist hash line
	ShowWarnings bool // validation warnings
}

// NewAnnotationConfig creates an AnnotationConfig with default values.
func NewAnnotationConfig() *AnnotationConfig {
	return &AnnotationConfig{
		ShowGrid:     true,
		ShowMoves:    true,
		ShowFEN:      true,
		ShowWarnings: true,
	}
}
