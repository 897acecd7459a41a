// Package availability holds the overlap calculator: half-open date
// interval semantics, unit counting across active bookings, and the
// booking-window rules (duration and advance limits).
package availability

import (
	"fmt"
	"time"
)

// Interval is a half-open [Start, End) date range at UTC midnight. A
// check-out on day D and a check-in on day D do not overlap.
type Interval struct {
	Start time.Time
	End   time.Time
}

func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// Claim is the units an existing active booking holds on a resource over an
// interval.
type Claim struct {
	Interval
	Quantity int
}

// BookedUnits sums the units claimed by bookings overlapping the requested
// interval.
func BookedUnits(claims []Claim, req Interval) int {
	booked := 0
	for _, c := range claims {
		if c.Overlaps(req) {
			booked += c.Quantity
		}
	}
	return booked
}

// Report is the per-resource availability verdict. AvailableUnits is
// clamped to zero for reporting, but OK compares the raw remainder against
// the requested quantity.
type Report struct {
	ResourceID     int64  `json:"resource_id"`
	Name           string `json:"name,omitempty"`
	Requested      int    `json:"requested"`
	BookedUnits    int    `json:"booked_units"`
	AvailableUnits int    `json:"available_units"`
	OK             bool   `json:"is_available"`
}

// Evaluate computes the verdict for one resource. An exclusive resource
// admits no concurrent booking at all: any overlapping claim exhausts it.
func Evaluate(resourceID int64, name string, totalUnits, booked, requested int, exclusive bool) Report {
	available := totalUnits - booked
	ok := available >= requested && requested >= 1
	if exclusive && booked > 0 {
		available = 0
		ok = false
	}
	reported := available
	if reported < 0 {
		reported = 0
	}
	return Report{
		ResourceID:     resourceID,
		Name:           name,
		Requested:      requested,
		BookedUnits:    booked,
		AvailableUnits: reported,
		OK:             ok,
	}
}

// RuleError names the specific booking-window rule a request violates.
type RuleError struct {
	Rule  string
	Limit int
}

func (e *RuleError) Error() string {
	switch e.Rule {
	case "min_days":
		return fmt.Sprintf("booking must be at least %d day(s)", e.Limit)
	case "max_days":
		return fmt.Sprintf("booking must not exceed %d day(s)", e.Limit)
	case "advance_days":
		return fmt.Sprintf("booking must start within %d day(s) from today", e.Limit)
	default:
		return "booking window rule violated"
	}
}

// ValidateWindow checks the stay duration against min/max limits and the
// check-in date against the advance-booking window. Zero limits mean
// unlimited.
func ValidateWindow(days int, checkIn time.Time, minDays, maxDays, advanceDays int, today time.Time) error {
	if minDays > 0 && days < minDays {
		return &RuleError{Rule: "min_days", Limit: minDays}
	}
	if maxDays > 0 && days > maxDays {
		return &RuleError{Rule: "max_days", Limit: maxDays}
	}
	if advanceDays > 0 {
		horizon := today.AddDate(0, 0, advanceDays)
		if checkIn.After(horizon) {
			return &RuleError{Rule: "advance_days", Limit: advanceDays}
		}
	}
	return nil
}
