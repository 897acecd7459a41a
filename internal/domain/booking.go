package domain

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"
)

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingCheckedIn  BookingStatus = "checked_in"
	BookingCheckedOut BookingStatus = "checked_out"
	BookingCancelled  BookingStatus = "cancelled"
	BookingNoShow     BookingStatus = "no_show"
	BookingFailed     BookingStatus = "failed"
)

// transitions is the lifecycle table: pending → confirmed → checked_in →
// checked_out on the happy path, cancellation only before check-in, failed
// only from pending.
var transitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled, BookingFailed},
	BookingConfirmed: {BookingCheckedIn, BookingCancelled, BookingNoShow},
	BookingCheckedIn: {BookingCheckedOut},
}

func (s BookingStatus) CanTransition(to BookingStatus) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Cancellable reports whether a booking in this status may still be
// cancelled. Checked-in and later states are past the point of no return.
func (s BookingStatus) Cancellable() bool {
	return s == BookingPending || s == BookingConfirmed
}

// ActiveBookingStatuses are the statuses that consume inventory. Pending
// bookings are included only during order-creation re-validation, where
// they close the race window between the availability read and the insert.
func ActiveBookingStatuses(includePending bool) []BookingStatus {
	st := []BookingStatus{BookingConfirmed, BookingCheckedIn}
	if includePending {
		st = append(st, BookingPending)
	}
	return st
}

type PaymentStatus string

const (
	PaymentCreated  PaymentStatus = "created"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// BookingItem is one booked-resource line: which resource, how many units,
// for how many days, and the resulting line subtotal.
type BookingItem struct {
	ID           int64        `json:"id"`
	BookingID    int64        `json:"-"`
	ResourceID   int64        `json:"resource_id"`
	FacilityType FacilityType `json:"facility_type"`
	Name         string       `json:"name"`
	Category     string       `json:"category,omitempty"`
	Quantity     int          `json:"quantity"`
	PricePerDay  int64        `json:"price_per_day"`
	Days         int          `json:"days"`
	Subtotal     int64        `json:"subtotal"`
}

type GuestDetails struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	GuestCount int    `json:"guest_count"`
}

type PaymentInfo struct {
	OrderID   string        `json:"order_id"`
	PaymentID string        `json:"payment_id,omitempty"`
	Signature string        `json:"-"`
	Status    PaymentStatus `json:"status"`
	PaidAt    *time.Time    `json:"paid_at,omitempty"`
}

type Cancellation struct {
	CancelledBy  string    `json:"cancelled_by"` // "user" or "admin"
	CancelledAt  time.Time `json:"cancelled_at"`
	Reason       string    `json:"reason"`
	RefundAmount int64     `json:"refund_amount"`
	RefundStatus string    `json:"refund_status"`
}

type Booking struct {
	ID            int64           `json:"id"`
	Reference     string          `json:"reference"`
	UserID        int64           `json:"user_id"`
	PackageID     int64           `json:"package_id"`
	Category      PackageCategory `json:"category"`
	Items         []BookingItem   `json:"items"`
	CheckInDate   time.Time       `json:"check_in_date"`
	CheckOutDate  time.Time       `json:"check_out_date"`
	Guest         GuestDetails    `json:"guest"`
	Subtotal      int64           `json:"subtotal"`
	GSTAmount     int64           `json:"gst_amount"`
	TotalAmount   int64           `json:"total_amount"`
	PaidAmount    int64           `json:"paid_amount"`
	BalanceAmount int64           `json:"balance_amount"`
	Status        BookingStatus   `json:"status"`
	Payment       PaymentInfo     `json:"payment"`
	Cancellation  *Cancellation   `json:"cancellation,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

var (
	ErrDateOrder       = errors.New("check-out date must be after check-in date")
	ErrGuestCount      = errors.New("room bookings require a guest count of at least 1")
	ErrNoItems         = errors.New("booking must carry at least one resource line")
	ErrNotCancellable  = errors.New("booking can no longer be cancelled")
	ErrBadTransition   = errors.New("invalid booking status transition")
	ErrAlreadyVerified = errors.New("payment already verified for this booking")
)

// NewPendingBooking is the validate-then-construct factory: all derived
// fields (reference code, balance) are computed here, never as a side
// effect of persistence.
func NewPendingBooking(userID int64, pkg *Package, items []BookingItem, checkIn, checkOut time.Time, guest GuestDetails, subtotal, gst int64, orderID string) (*Booking, error) {
	if !checkOut.After(checkIn) {
		return nil, ErrDateOrder
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if pkg.Category == PackageRoomsOnly && guest.GuestCount < 1 {
		return nil, ErrGuestCount
	}
	total := subtotal + gst
	return &Booking{
		Reference:     NewReference(checkIn),
		UserID:        userID,
		PackageID:     pkg.ID,
		Category:      pkg.Category,
		Items:         items,
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		Guest:         guest,
		Subtotal:      subtotal,
		GSTAmount:     gst,
		TotalAmount:   total,
		PaidAmount:    0,
		BalanceAmount: total,
		Status:        BookingPending,
		Payment: PaymentInfo{
			OrderID: orderID,
			Status:  PaymentCreated,
		},
	}, nil
}

// RecomputeBalance restores the balance invariant after any mutation of the
// paid or total amount.
func (b *Booking) RecomputeBalance() {
	b.BalanceAmount = b.TotalAmount - b.PaidAmount
}

const referenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewReference generates the human-readable booking code, e.g.
// BHV-20260115-7KQ2MD.
func NewReference(checkIn time.Time) string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand does not fail on supported platforms; timestamp
		// suffix keeps the request path alive if it ever does.
		return fmt.Sprintf("BHV-%s-%06d", checkIn.Format("20060102"), time.Now().UnixNano()%1000000)
	}
	for i, c := range buf {
		buf[i] = referenceAlphabet[int(c)%len(referenceAlphabet)]
	}
	return fmt.Sprintf("BHV-%s-%s", checkIn.Format("20060102"), string(buf))
}
