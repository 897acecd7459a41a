package catalog

import "bhavan/internal/pricing"

type PackageResourceInput struct {
	ResourceID int64 `json:"resource_id" binding:"required"`
	Quantity   int   `json:"quantity"`
	Flexible   bool  `json:"flexible"`
}

type CreatePackageRequest struct {
	Name               string                 `json:"name" binding:"required"`
	Description        string                 `json:"description"`
	Category           string                 `json:"category" binding:"required"`
	BasePricePerDay    int64                  `json:"base_price_per_day"`
	GSTPercent         float64                `json:"gst_percent" binding:"gte=0"`
	MinBookingDays     int                    `json:"min_booking_days"`
	MaxBookingDays     int                    `json:"max_booking_days"`
	AdvanceBookingDays int                    `json:"advance_booking_days"`
	Resources          []PackageResourceInput `json:"resources" binding:"required,min=1,dive"`
}

type UpdatePackageRequest = CreatePackageRequest

type CalculatePriceRequest struct {
	CheckInDate  string `json:"check_in_date" binding:"required"`
	CheckOutDate string `json:"check_out_date" binding:"required"`
	RoomQuantity int    `json:"room_quantity"`
}

type PriceResponse struct {
	PackageID int64         `json:"package_id"`
	Quote     pricing.Quote `json:"pricing"`
}
