package discrepancy

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for bad sizes, bounds, modes or methods.
	// It is always detected before any computation starts.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDimensionMismatch is returned when a point set and a candidate set
	// (or a point set and a requested dimension) disagree on d.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func dimensionMismatch(want, got int) error {
	return fmt.Errorf("%w: expected d=%d, got d=%d", ErrDimensionMismatch, want, got)
}

// DomainWarning reports coordinates outside the unit interval.
// It is a diagnostic only: computations proceed with the values unchanged.
type DomainWarning struct {
	Below int // coordinates < 0
	Above int // coordinates > 1
	NaN   int // coordinates that are not a number
	Rows  int // rows with at least one offending coordinate
}

func (w *DomainWarning) Error() string {
	return fmt.Sprintf("%d of the points fall outside [0,1]^d (%d coordinates below 0, %d above 1, %d NaN)", w.Rows, w.Below, w.Above, w.NaN)
}
