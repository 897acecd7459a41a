package booking

import "bhavan/internal/domain"

type CheckAvailabilityRequest struct {
	PackageID    int64  `json:"package_id" binding:"required"`
	CheckInDate  string `json:"check_in_date" binding:"required"`
	CheckOutDate string `json:"check_out_date" binding:"required"`
	RoomQuantity int    `json:"room_quantity"`
}

type GuestInput struct {
	Name       string `json:"name" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Email      string `json:"email" binding:"omitempty,email"`
	GuestCount int    `json:"guest_count"`
}

type CreateOrderRequest struct {
	PackageID    int64      `json:"package_id" binding:"required"`
	CheckInDate  string     `json:"check_in_date" binding:"required"`
	CheckOutDate string     `json:"check_out_date" binding:"required"`
	RoomQuantity int        `json:"room_quantity"`
	Guest        GuestInput `json:"guest" binding:"required"`
}

type CreateOrderResponse struct {
	Booking  *domain.Booking `json:"booking"`
	OrderID  string          `json:"order_id"`
	Amount   int64           `json:"amount"`
	Currency string          `json:"currency"`
}

type VerifyPaymentRequest struct {
	BookingID int64  `json:"booking_id" binding:"required"`
	OrderID   string `json:"order_id" binding:"required"`
	PaymentID string `json:"payment_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

type CancelRequest struct {
	Reason string `json:"reason" binding:"required"`
}
