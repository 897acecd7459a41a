package domain

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from, to BookingStatus
		want     bool
	}{
		{BookingPending, BookingConfirmed, true},
		{BookingPending, BookingCancelled, true},
		{BookingPending, BookingFailed, true},
		{BookingPending, BookingCheckedIn, false},
		{BookingConfirmed, BookingCheckedIn, true},
		{BookingConfirmed, BookingCancelled, true},
		{BookingConfirmed, BookingNoShow, true},
		{BookingConfirmed, BookingFailed, false},
		{BookingCheckedIn, BookingCheckedOut, true},
		{BookingCheckedIn, BookingCancelled, false},
		{BookingCheckedOut, BookingCheckedIn, false},
		{BookingCancelled, BookingConfirmed, false},
		{BookingFailed, BookingConfirmed, false},
		{BookingNoShow, BookingCheckedIn, false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestBookingStatus_Cancellable(t *testing.T) {
	assert.True(t, BookingPending.Cancellable())
	assert.True(t, BookingConfirmed.Cancellable())
	assert.False(t, BookingCheckedIn.Cancellable())
	assert.False(t, BookingCheckedOut.Cancellable())
	assert.False(t, BookingCancelled.Cancellable())
	assert.False(t, BookingFailed.Cancellable())
}

func TestActiveBookingStatuses(t *testing.T) {
	assert.ElementsMatch(t,
		[]BookingStatus{BookingConfirmed, BookingCheckedIn},
		ActiveBookingStatuses(false))
	assert.ElementsMatch(t,
		[]BookingStatus{BookingConfirmed, BookingCheckedIn, BookingPending},
		ActiveBookingStatuses(true))
}

func testPackage(cat PackageCategory) *Package {
	return &Package{ID: 7, Category: cat}
}

func testItems() []BookingItem {
	return []BookingItem{{ResourceID: 1, Quantity: 2, PricePerDay: 100000, Days: 2, Subtotal: 400000}}
}

func TestNewPendingBooking(t *testing.T) {
	checkIn := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	checkOut := checkIn.AddDate(0, 0, 2)
	guest := GuestDetails{Name: "Asel", Phone: "7001", GuestCount: 4}

	b, err := NewPendingBooking(42, testPackage(PackageRoomsOnly), testItems(), checkIn, checkOut, guest, 400000, 72000, "order_abc")
	assert.NoError(t, err)
	assert.Equal(t, BookingPending, b.Status)
	assert.Equal(t, int64(472000), b.TotalAmount)
	assert.Equal(t, int64(0), b.PaidAmount)
	assert.Equal(t, b.TotalAmount, b.BalanceAmount)
	assert.Equal(t, PaymentCreated, b.Payment.Status)
	assert.Equal(t, "order_abc", b.Payment.OrderID)
	assert.Regexp(t, regexp.MustCompile(`^BHV-20260115-[A-Z2-9]{6}$`), b.Reference)
}

func TestNewPendingBooking_Rejects(t *testing.T) {
	checkIn := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	guest := GuestDetails{Name: "Asel", GuestCount: 2}

	_, err := NewPendingBooking(1, testPackage(PackageRoomsOnly), testItems(), checkIn, checkIn, guest, 1, 0, "o")
	assert.ErrorIs(t, err, ErrDateOrder)

	_, err = NewPendingBooking(1, testPackage(PackageRoomsOnly), nil, checkIn, checkIn.AddDate(0, 0, 1), guest, 1, 0, "o")
	assert.ErrorIs(t, err, ErrNoItems)

	_, err = NewPendingBooking(1, testPackage(PackageRoomsOnly), testItems(), checkIn, checkIn.AddDate(0, 0, 1), GuestDetails{Name: "X"}, 1, 0, "o")
	assert.ErrorIs(t, err, ErrGuestCount)

	// Fixed packages do not require a guest count.
	_, err = NewPendingBooking(1, testPackage(PackageFunctionHall), testItems(), checkIn, checkIn.AddDate(0, 0, 1), GuestDetails{Name: "X"}, 1, 0, "o")
	assert.NoError(t, err)
}

func TestRecomputeBalance(t *testing.T) {
	b := &Booking{TotalAmount: 500, PaidAmount: 200}
	b.RecomputeBalance()
	assert.Equal(t, int64(300), b.BalanceAmount)
}

func TestNewReference_Unique(t *testing.T) {
	checkIn := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		ref := NewReference(checkIn)
		assert.False(t, seen[ref], "duplicate reference %s", ref)
		seen[ref] = true
	}
}
