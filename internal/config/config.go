// Package config provides configuration for tilechess.
package config

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/lgbarn/tilechess-go/internal/chess"
	"github.com/lgbarn/tilechess-go/internal/errors"
)

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=errors only, 1=summary, 2=debug

	// Board bounds for tile map inputs.
	First int8
	Last  int8

	// Input
	ToMove chess.Colour // side to move for tile map inputs
	FEN    string       // analyse this FEN instead of reading inputs
	Strict bool         // reject malformed tile maps

	// Workers is the number of analysis workers; 0 means runtime.NumCPU.
	Workers int

	Output     *OutputConfig
	Duplicate  *DuplicateConfig
	Filter     *FilterConfig
	Annotation *AnnotationConfig
	Server     *ServerConfig

	// File handling
	OutputFilename string

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		First:      0,
		Last:       7,
		ToMove:     chess.White,
		Output:     NewOutputConfig(),
		Duplicate:  NewDuplicateConfig(),
		Filter:     NewFilterConfig(),
		Annotation: NewAnnotationConfig(),
		Server:     NewServerConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// Board returns the board geometry described by First and Last.
func (c *Config) Board() (chess.Board, error) {
	return chess.NewBoard(c.First, c.Last)
}

// NumWorkers resolves Workers to a positive count.
func (c *Config) NumWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// Validate checks the configuration and every sub-config.
func (c *Config) Validate() error {
	if _, err := c.Board(); err != nil {
		return fmt.Errorf("board %d..%d: %w: %w", c.First, c.Last, errors.ErrInvalidConfig, err)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers (%d) must not be negative: %w", c.Workers, errors.ErrInvalidConfig)
	}
	if c.FEN != "" && (c.First != 0 || c.Last != 7) {
		return fmt.Errorf("FEN input requires the standard board: %w", errors.ErrInvalidConfig)
	}
	if err := c.Filter.Validate(); err != nil {
		return err
	}
	return c.Server.Validate()
}

// SetOutput sets the output writer.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// SetLog sets the log writer.
func (c *Config) SetLog(w io.Writer) {
	c.LogFile = w
}
