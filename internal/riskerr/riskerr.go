// Package riskerr defines the kernel-wide error kinds of spec.md §7.
//
// Grounded on nhbchain's services/lending/engine/errors.go: package-
// prefixed sentinel errors created with errors.New, matched by callers
// with errors.Is. Per-instrument failures wrap the sentinel with
// fmt.Errorf so both the kind and the instrument context survive.
package riskerr

import (
	"errors"
	"fmt"
)

var (
	// ErrDataValidation marks a malformed row, unparseable date, unknown
	// currency, or NaN encountered while loading or parsing input.
	ErrDataValidation = errors.New("alm: data validation error")

	// ErrConfiguration marks an unknown scenario/elasticity configuration
	// name or malformed rule conditions.
	ErrConfiguration = errors.New("alm: configuration error")

	// ErrCalculation marks a per-instrument contribution computation that
	// failed. Policy is isolate-and-continue: the aggregator logs with
	// context and omits the instrument, it never aborts the batch.
	ErrCalculation = errors.New("alm: calculation error")

	// ErrInvalidPeriod marks the Factor Decomposer's comparison_date <=
	// base_date precondition failure.
	ErrInvalidPeriod = errors.New("alm: invalid period")

	// ErrFatal marks an entry-point validation failure, e.g. zero
	// instruments supplied where at least one is required.
	ErrFatal = errors.New("alm: fatal error")
)

// CalculationError wraps ErrCalculation with the per-instrument context
// the aggregator needs to log and report (§7: "{instrument_id,
// instrument_type, error}").
type CalculationError struct {
	InstrumentID   string
	InstrumentType string
	Cause          error
}

func (e *CalculationError) Error() string {
	return fmt.Sprintf("%s: instrument %s (%s): %v", ErrCalculation, e.InstrumentID, e.InstrumentType, e.Cause)
}

func (e *CalculationError) Unwrap() error {
	return ErrCalculation
}

// NewCalculationError builds a CalculationError for instrument id/typ.
func NewCalculationError(id, typ string, cause error) *CalculationError {
	return &CalculationError{InstrumentID: id, InstrumentType: typ, Cause: cause}
}
