package gas

import "errors"

// Domain errors for simulation setup and state checks.
var (
	// ErrBadWorld indicates world parameters that violate the
	// construction contract.
	ErrBadWorld = errors.New("gas: invalid world parameters")

	// ErrBadCount indicates a non-positive body count.
	ErrBadCount = errors.New("gas: body count must be positive")

	// ErrInvalidState indicates a NaN or Inf crept into a position or
	// velocity.
	ErrInvalidState = errors.New("gas: invalid state (NaN or Inf detected)")
)
