package tiledbg

import (
	"errors"
	"fmt"
	"strconv"
)

// Configuration errors. NewParams wraps these in a *ConfigError naming the
// offending field; use errors.Is to test for a specific kind.
var (
	// ErrInvalidScale is returned when scale is zero or negative.
	ErrInvalidScale = errors.New("tiledbg: scale must be positive")

	// ErrInvalidSpacing is returned when spacing is outside [0, 1].
	ErrInvalidSpacing = errors.New("tiledbg: spacing must be within [0, 1]")

	// ErrInvalidTileSize is returned when the base tile size is zero or negative.
	ErrInvalidTileSize = errors.New("tiledbg: base tile size must be positive")

	// ErrNonFinite is returned when a parameter is NaN or infinite.
	ErrNonFinite = errors.New("tiledbg: value must be finite")

	// ErrDegenerateTile is returned when the tile period (base tile size
	// divided by scale) rounds to zero or overflows.
	ErrDegenerateTile = errors.New("tiledbg: tile period is degenerate")
)

// ConfigError describes a rejected configuration value.
type ConfigError struct {
	// Field is the parameter name, e.g. "scale" or "scroll.x".
	Field string

	// Value is the rejected value.
	Value float64

	// Err is one of the sentinel errors above.
	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v (%s = %s)",
		e.Err, e.Field, strconv.FormatFloat(e.Value, 'g', -1, 64))
}

// Unwrap returns the underlying sentinel error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}
