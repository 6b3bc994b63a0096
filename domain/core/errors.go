package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound    = errors.New("resource not found")
	ErrRunNotFound = fmt.Errorf("%w: run", ErrNotFound)

	// Validation errors
	ErrInvalidParams    = errors.New("invalid generating parameters")
	ErrConstantX        = errors.New("predictor has zero variance")
	ErrInsufficientData = errors.New("insufficient data for analysis")
	ErrInvalidLevel     = errors.New("interval level must be in (0, 1)")
	ErrInvalidPrior     = errors.New("invalid prior hyperparameters")
	ErrInvalidInterval  = errors.New("interval bounds out of order")

	// Probability errors
	ErrProbabilityRange = errors.New("probability outside [0, 1]")
	ErrZeroDenominator  = errors.New("positive-test probability is zero")

	// Determinism errors
	ErrSeedMismatch = errors.New("seed mismatch")
	ErrHashMismatch = errors.New("dataset fingerprint mismatch")
)

// NewNotFoundError creates a contextual not-found error
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, resource, id)
}

// NewValidationError creates a contextual validation error
func NewValidationError(base error, detail string) error {
	return fmt.Errorf("%w: %s", base, detail)
}

// IsNotFound checks whether err is a not-found condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
