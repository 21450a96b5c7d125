package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input validation errors
	ErrInvalidInput = errors.New("invalid input")

	// Computation errors
	ErrUndefinedStatistic     = errors.New("test statistic undefined")
	ErrComparatorPrecondition = errors.New("comparator precondition violated")
	ErrInsufficientData       = errors.New("insufficient data for analysis")

	// Lookup errors
	ErrNotFound    = errors.New("resource not found")
	ErrRunNotFound = fmt.Errorf("%w: run", ErrNotFound)
)

// NewInvalidInputError wraps ErrInvalidInput with a reason
func NewInvalidInputError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, reason)
}

// NewInvalidInputErrorf wraps ErrInvalidInput with a formatted reason
func NewInvalidInputErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// NewNotFoundError wraps ErrNotFound with resource context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// Error checking helpers
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func IsUndefinedStatistic(err error) bool {
	return errors.Is(err, ErrUndefinedStatistic)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
