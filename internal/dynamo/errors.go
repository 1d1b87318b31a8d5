package dynamo

import (
	"errors"
	"fmt"
)

// Parameter construction errors.
var (
	// ErrConflictingSpin indicates more than one spin type was selected.
	ErrConflictingSpin = errors.New("spinflight: more than one spin type selected")

	// ErrAmbiguousSpin indicates a non-zero spin rate without a spin type.
	ErrAmbiguousSpin = errors.New("spinflight: spin rate given without a spin type")

	// ErrStepNotPositive indicates a time step that is zero or negative.
	ErrStepNotPositive = errors.New("spinflight: time step must be positive")

	// ErrDurationTooShort indicates a duration not greater than the time step.
	ErrDurationTooShort = errors.New("spinflight: duration must exceed the time step")

	// ErrNegativeCoefficient indicates a negative aerodynamic coefficient.
	ErrNegativeCoefficient = errors.New("spinflight: coefficient must not be negative")

	// ErrNotPositive indicates a physical quantity that must be strictly positive.
	ErrNotPositive = errors.New("spinflight: value must be positive")

	// ErrNonFinite indicates a NaN or infinite input.
	ErrNonFinite = errors.New("spinflight: value is not finite")
)

// ConstructionError reports which cross-field invariant failed while building
// simulation parameters.
type ConstructionError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConstructionError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid %s: %s: %v", e.Field, e.Reason, e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}
