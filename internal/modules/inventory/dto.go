package inventory

import "bhavan/internal/availability"

type CreateResourceRequest struct {
	Name               string `json:"name" binding:"required"`
	FacilityType       string `json:"facility_type" binding:"required"`
	Category           string `json:"category"`
	Description        string `json:"description"`
	PricePerDay        int64  `json:"price_per_day" binding:"gte=0"`
	Capacity           int    `json:"capacity" binding:"required,gt=0"`
	TotalUnits         int    `json:"total_units" binding:"required,gte=1"`
	Exclusive          bool   `json:"exclusive"`
	MinBookingDays     int    `json:"min_booking_days"`
	MaxBookingDays     int    `json:"max_booking_days"`
	AdvanceBookingDays int    `json:"advance_booking_days"`
}

type ResourceSelection struct {
	ResourceID int64 `json:"resource_id" binding:"required"`
	Quantity   int   `json:"quantity" binding:"required,gte=1"`
}

type CheckAvailabilityRequest struct {
	Resources    []ResourceSelection `json:"resources" binding:"required,min=1,dive"`
	CheckInDate  string              `json:"check_in_date" binding:"required"`
	CheckOutDate string              `json:"check_out_date" binding:"required"`
}

type AvailabilityResponse struct {
	CheckInDate  string                `json:"check_in_date"`
	CheckOutDate string                `json:"check_out_date"`
	Available    bool                  `json:"available"`
	Resources    []availability.Report `json:"resources"`
}
