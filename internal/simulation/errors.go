package simulation

import "errors"

// Error taxonomy of the simulation core.
//
// Anything not covered here (negative intensity, corrupted proposal buffer)
// is a programming error and panics instead of surfacing as a value: a step
// either fully commits or the process dies, there is no partially-updated
// in-between state.
var (
	// ErrInvalidConfig is returned by New when a configuration value is out
	// of its legal range. Fatal at startup; values are never silently clamped.
	ErrInvalidConfig = errors.New("simulation: invalid configuration")

	// ErrOutOfBounds is returned by PlaceFood when the position lies outside
	// the plane. Recovered locally: the registry stays unchanged.
	ErrOutOfBounds = errors.New("simulation: position outside plane bounds")

	// ErrInvalidQuantity is returned by PlaceFood for a non-positive quantity.
	ErrInvalidQuantity = errors.New("simulation: food quantity must be positive")
)
