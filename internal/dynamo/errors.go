package dynamo

import (
	"errors"
	"fmt"
	"math"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidParameter indicates a construction parameter outside its valid range.
	ErrInvalidParameter = errors.New("dynamo: invalid parameter")

	// ErrDegenerateGeometry marks two bodies at the same position. The
	// integrator skips such a pair; the error only names the condition.
	ErrDegenerateGeometry = errors.New("dynamo: coincident bodies")

	// ErrInvalidState indicates a body position or velocity that is NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrUnknownScenario indicates a preset or scenario name that does not resolve.
	ErrUnknownScenario = errors.New("dynamo: unknown scenario")
)

// ParameterError describes which parameter failed validation.
type ParameterError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: %s %s, got %g", ErrInvalidParameter, e.Name, e.Reason, e.Value)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// Invalid builds a ParameterError.
func Invalid(name string, value float64, reason string) error {
	return &ParameterError{Name: name, Value: value, Reason: reason}
}

// Positive rejects v unless it is a finite number greater than zero.
// NaN fails too.
func Positive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return Invalid(name, v, "must be positive and finite")
	}
	return nil
}
