package config

import (
	"fmt"

	"github.com/lgbarn/tilechess-go/internal/analysis"
	"github.com/lgbarn/tilechess-go/internal/errors"
)

// FilterConfig holds settings for position filtering.
type FilterConfig struct {
	// Piece count bounds
	CheckPieceBounds bool
	MinPieces        int
	MaxPieces        int

	// Match conditions on the side to move
	MatchCheck     bool
	MatchCheckmate bool
	MatchStalemate bool
}

// NewFilterConfig creates a FilterConfig with default values.
// All fields use Go zero values - filters are disabled by default.
func NewFilterConfig() *FilterConfig {
	return &FilterConfig{}
}

// Validate checks that the filter configuration is valid.
func (f *FilterConfig) Validate() error {
	if !f.CheckPieceBounds {
		return nil
	}
	if f.MinPieces < 0 || f.MaxPieces < 0 {
		return fmt.Errorf("piece bounds must not be negative: %w", errors.ErrInvalidConfig)
	}
	if f.MaxPieces > 0 && f.MinPieces > f.MaxPieces {
		return fmt.Errorf("min pieces (%d) > max pieces (%d): %w",
			f.MinPieces, f.MaxPieces, errors.ErrInvalidConfig)
	}
	return nil
}

// Filter converts the settings to an analysis filter.
func (f *FilterConfig) Filter() analysis.Filter {
	af := analysis.Filter{
		Check:     f.MatchCheck,
		Checkmate: f.MatchCheckmate,
		Stalemate: f.MatchStalemate,
	}
	if f.CheckPieceBounds {
		af.MinPieces = f.MinPieces
		af.MaxPieces = f.MaxPieces
	}
	return af
}
