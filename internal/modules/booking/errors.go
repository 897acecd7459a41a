package booking

import (
	"errors"

	"bhavan/internal/availability"
)

var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("booking not found")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidSignature = errors.New("payment signature mismatch")
	ErrOrderMismatch    = errors.New("order id does not match booking")
)

// AvailabilityError reports every insufficient resource, not just the
// first.
type AvailabilityError struct {
	Reports []availability.Report
}

func (e *AvailabilityError) Error() string {
	return "insufficient inventory for the requested dates"
}

// Insufficient returns only the failing lines for the error payload.
func (e *AvailabilityError) Insufficient() []availability.Report {
	out := make([]availability.Report, 0, len(e.Reports))
	for _, r := range e.Reports {
		if !r.OK {
			out = append(out, r)
		}
	}
	return out
}
