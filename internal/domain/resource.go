package domain

import (
	"errors"
	"fmt"
	"time"
)

type FacilityType string

const (
	FacilityRoom         FacilityType = "room"
	FacilityFunctionHall FacilityType = "function_hall"
	FacilityDiningHall   FacilityType = "dining_hall"
	FacilityMiniHall     FacilityType = "mini_hall"
	FacilityFullVenue    FacilityType = "full_venue"
)

func (f FacilityType) Valid() bool {
	switch f {
	case FacilityRoom, FacilityFunctionHall, FacilityDiningHall, FacilityMiniHall, FacilityFullVenue:
		return true
	}
	return false
}

var (
	ErrInvalidFacilityType = errors.New("invalid facility type")
	ErrCategoryRequired    = errors.New("category is required for room resources")
	ErrCategoryForbidden   = errors.New("category is only allowed for room resources")
)

// Resource is a bookable inventory unit type: a room tier, a hall, or the
// whole venue. TotalUnits is the number of identical units that can be
// booked concurrently; an exclusive resource admits at most one active
// booking regardless of unit count.
type Resource struct {
	ID                 int64        `json:"id" gorm:"primaryKey"`
	Name               string       `json:"name" validate:"required"`
	FacilityType       FacilityType `json:"facility_type" validate:"required"`
	Category           string       `json:"category,omitempty"`
	Description        string       `json:"description,omitempty" gorm:"type:text"`
	PricePerDay        int64        `json:"price_per_day" validate:"gte=0"`
	Capacity           int          `json:"capacity" validate:"gt=0"`
	TotalUnits         int          `json:"total_units" validate:"gte=1"`
	Exclusive          bool         `json:"exclusive"`
	MinBookingDays     int          `json:"min_booking_days"`
	MaxBookingDays     int          `json:"max_booking_days"`
	AdvanceBookingDays int          `json:"advance_booking_days"`
	IsActive           bool         `json:"is_active"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// NewResource validates invariants up front so a Resource is well-formed
// before it ever reaches storage.
func NewResource(name string, ft FacilityType, category string, pricePerDay int64, capacity, totalUnits int) (*Resource, error) {
	if !ft.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFacilityType, ft)
	}
	if ft == FacilityRoom && category == "" {
		return nil, ErrCategoryRequired
	}
	if ft != FacilityRoom && category != "" {
		return nil, ErrCategoryForbidden
	}
	if totalUnits < 1 {
		return nil, errors.New("total units must be at least 1")
	}
	if capacity < 1 {
		return nil, errors.New("capacity must be at least 1")
	}
	if pricePerDay < 0 {
		return nil, errors.New("price per day must not be negative")
	}
	return &Resource{
		Name:           name,
		FacilityType:   ft,
		Category:       category,
		PricePerDay:    pricePerDay,
		Capacity:       capacity,
		TotalUnits:     totalUnits,
		MinBookingDays: 1,
		IsActive:       true,
	}, nil
}
