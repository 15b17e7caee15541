package config

import (
	"fmt"
	"time"

	"github.com/lgbarn/tilechess-go/internal/errors"
)

// ServerConfig holds settings for the HTTP analysis API.
type ServerConfig struct {
	Addr            string // listen address; empty disables the server
	MaxBodyBytes    int64
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		MaxBodyBytes:    1 << 20,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Enabled reports whether an address was given.
func (s *ServerConfig) Enabled() bool {
	return s.Addr != ""
}

// Validate checks that limits and timeouts are positive.
func (s *ServerConfig) Validate() error {
	if s.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes (%d) must be positive: %w", s.MaxBodyBytes, errors.ErrInvalidConfig)
	}
	if s.ReadTimeout <= 0 || s.WriteTimeout <= 0 || s.ShutdownTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive: %w", errors.ErrInvalidConfig)
	}
	return nil
}
