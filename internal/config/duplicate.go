package config

import "io"

// DuplicateConfig holds settings for duplicate position detection.
type DuplicateConfig struct {
	// Suppress drops positions already seen in the batch.
	Suppress bool

	// ExactMatch requires the side to move to match as well as the placement.
	ExactMatch bool

	// MaxCapacity bounds the number of stored positions (0 = unlimited).
	MaxCapacity int

	// DuplicateFile receives the names of suppressed positions.
	DuplicateFile io.Writer
}

// NewDuplicateConfig creates a DuplicateConfig with default values.
func NewDuplicateConfig() *DuplicateConfig {
	return &DuplicateConfig{ExactMatch: true}
}
