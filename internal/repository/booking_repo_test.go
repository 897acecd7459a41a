package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"bhavan/internal/database"
	"bhavan/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *BookingRepository {
	t.Helper()
	db, err := database.Connect(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	repo := NewBookingRepository(db)
	require.NoError(t, repo.Migrate())
	return repo
}

func day(d int) time.Time {
	return time.Date(2026, time.January, d, 0, 0, 0, 0, time.UTC)
}

func seedBooking(t *testing.T, repo *BookingRepository, status domain.BookingStatus, checkIn, checkOut time.Time, resourceID int64, qty int) *domain.Booking {
	t.Helper()
	b := &domain.Booking{
		Reference:    domain.NewReference(checkIn),
		UserID:       42,
		PackageID:    10,
		Category:     domain.PackageRoomsOnly,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Guest:        domain.GuestDetails{Name: "Asel", Phone: "7001", GuestCount: 2},
		Subtotal:     600000,
		GSTAmount:    108000,
		TotalAmount:  708000,
		Status:       status,
		Payment:      domain.PaymentInfo{OrderID: "order_" + checkIn.Format("20060102"), Status: domain.PaymentCreated},
		Items: []domain.BookingItem{{
			ResourceID:   resourceID,
			FacilityType: domain.FacilityRoom,
			Name:         "Deluxe Room",
			Category:     "deluxe",
			Quantity:     qty,
			PricePerDay:  100000,
			Days:         2,
			Subtotal:     600000,
		}},
	}
	require.NoError(t, repo.Create(context.Background(), b))
	return b
}

func TestCreateAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	b := seedBooking(t, repo, domain.BookingPending, day(10), day(12), 1, 3)
	assert.NotZero(t, b.ID)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.Reference, got.Reference)
	assert.Equal(t, domain.BookingPending, got.Status)
	assert.Equal(t, int64(708000), got.TotalAmount)
	assert.Equal(t, int64(708000), got.BalanceAmount)
	assert.Equal(t, domain.PaymentCreated, got.Payment.Status)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 3, got.Items[0].Quantity)
	assert.True(t, got.CheckInDate.Equal(day(10)))
}

func TestSumBookedUnits(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	active := domain.ActiveBookingStatuses(false)

	seedBooking(t, repo, domain.BookingConfirmed, day(10), day(12), 1, 3)

	t.Run("overlapping range counts", func(t *testing.T) {
		n, err := repo.SumBookedUnits(ctx, 1, day(11), day(13), active)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("check-in on existing check-out does not count", func(t *testing.T) {
		n, err := repo.SumBookedUnits(ctx, 1, day(12), day(14), active)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("check-out on existing check-in does not count", func(t *testing.T) {
		n, err := repo.SumBookedUnits(ctx, 1, day(8), day(10), active)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("other resource untouched", func(t *testing.T) {
		n, err := repo.SumBookedUnits(ctx, 2, day(10), day(12), active)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("pending counts only when included", func(t *testing.T) {
		seedBooking(t, repo, domain.BookingPending, day(10), day(12), 1, 2)

		n, err := repo.SumBookedUnits(ctx, 1, day(10), day(12), active)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		n, err = repo.SumBookedUnits(ctx, 1, day(10), day(12), domain.ActiveBookingStatuses(true))
		require.NoError(t, err)
		assert.Equal(t, 5, n)
	})

	t.Run("cancelled does not count", func(t *testing.T) {
		b := seedBooking(t, repo, domain.BookingConfirmed, day(20), day(22), 1, 4)
		_, err := repo.Cancel(ctx, b.ID, domain.Cancellation{CancelledBy: "user", CancelledAt: time.Now().UTC(), RefundStatus: "none"})
		require.NoError(t, err)

		n, err := repo.SumBookedUnits(ctx, 1, day(20), day(22), active)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})
}

func TestConfirmPayment(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	b := seedBooking(t, repo, domain.BookingPending, day(10), day(12), 1, 2)
	paidAt := time.Now().UTC()

	changed, err := repo.ConfirmPayment(ctx, b.ID, "pay_9", "sig", paidAt)
	require.NoError(t, err)
	assert.True(t, changed)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, got.Status)
	assert.Equal(t, domain.PaymentPaid, got.Payment.Status)
	assert.Equal(t, "pay_9", got.Payment.PaymentID)
	assert.Equal(t, got.TotalAmount, got.PaidAmount)
	assert.Equal(t, int64(0), got.BalanceAmount)

	// A second confirmation finds no pending row.
	changed, err = repo.ConfirmPayment(ctx, b.ID, "pay_10", "sig2", paidAt)
	require.NoError(t, err)
	assert.False(t, changed)

	got, err = repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "pay_9", got.Payment.PaymentID)
}

func TestMarkPaymentFailed(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	b := seedBooking(t, repo, domain.BookingPending, day(10), day(12), 1, 2)

	changed, err := repo.MarkPaymentFailed(ctx, b.ID, "pay_9", "forged")
	require.NoError(t, err)
	assert.True(t, changed)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingFailed, got.Status)
	assert.Equal(t, domain.PaymentFailed, got.Payment.Status)
	assert.Equal(t, int64(0), got.PaidAmount)
}

func TestCancel_StatusGuard(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	c := domain.Cancellation{CancelledBy: "user", CancelledAt: time.Now().UTC(), Reason: "change of plans", RefundAmount: 708000, RefundStatus: "initiated"}

	t.Run("confirmed cancels", func(t *testing.T) {
		b := seedBooking(t, repo, domain.BookingConfirmed, day(10), day(12), 1, 2)
		changed, err := repo.Cancel(ctx, b.ID, c)
		require.NoError(t, err)
		assert.True(t, changed)

		got, err := repo.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingCancelled, got.Status)
		require.NotNil(t, got.Cancellation)
		assert.Equal(t, "user", got.Cancellation.CancelledBy)
		assert.Equal(t, int64(708000), got.Cancellation.RefundAmount)
		assert.Equal(t, "initiated", got.Cancellation.RefundStatus)
	})

	t.Run("checked_in refuses", func(t *testing.T) {
		b := seedBooking(t, repo, domain.BookingCheckedIn, day(10), day(12), 1, 2)
		changed, err := repo.Cancel(ctx, b.ID, c)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("double cancel refuses", func(t *testing.T) {
		b := seedBooking(t, repo, domain.BookingPending, day(10), day(12), 1, 2)
		changed, err := repo.Cancel(ctx, b.ID, c)
		require.NoError(t, err)
		assert.True(t, changed)

		changed, err = repo.Cancel(ctx, b.ID, c)
		require.NoError(t, err)
		assert.False(t, changed)
	})
}

func TestTransition_Guard(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	b := seedBooking(t, repo, domain.BookingConfirmed, day(10), day(12), 1, 2)

	changed, err := repo.Transition(ctx, b.ID, domain.BookingConfirmed, domain.BookingCheckedIn)
	require.NoError(t, err)
	assert.True(t, changed)

	// Source status no longer matches.
	changed, err = repo.Transition(ctx, b.ID, domain.BookingConfirmed, domain.BookingCheckedIn)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = repo.Transition(ctx, b.ID, domain.BookingCheckedIn, domain.BookingCheckedOut)
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestHasActiveForPackage(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	inUse, err := repo.HasActiveForPackage(ctx, 10)
	require.NoError(t, err)
	assert.False(t, inUse)

	b := seedBooking(t, repo, domain.BookingConfirmed, day(10), day(12), 1, 2)

	inUse, err = repo.HasActiveForPackage(ctx, 10)
	require.NoError(t, err)
	assert.True(t, inUse)

	_, err = repo.Cancel(ctx, b.ID, domain.Cancellation{CancelledBy: "admin", CancelledAt: time.Now().UTC(), RefundStatus: "none"})
	require.NoError(t, err)

	inUse, err = repo.HasActiveForPackage(ctx, 10)
	require.NoError(t, err)
	assert.False(t, inUse)
}

func TestListByUserAndUpcoming(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seedBooking(t, repo, domain.BookingConfirmed, day(10), day(12), 1, 1)
	seedBooking(t, repo, domain.BookingPending, day(20), day(22), 1, 1)
	seedBooking(t, repo, domain.BookingConfirmed, day(25), day(27), 1, 1)

	mine, err := repo.ListByUser(ctx, 42, 0, 0)
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	none, err := repo.ListByUser(ctx, 99, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	upcoming, err := repo.ListUpcoming(ctx, day(15), 0)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.True(t, upcoming[0].CheckInDate.Equal(day(25)))
}

func TestList_Filter(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seedBooking(t, repo, domain.BookingConfirmed, day(10), day(12), 1, 1)
	seedBooking(t, repo, domain.BookingPending, day(20), day(22), 1, 1)

	from, to := day(15), day(30)
	rows, err := repo.List(ctx, ListFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.BookingPending, rows[0].Status)

	rows, err = repo.List(ctx, ListFilter{Status: string(domain.BookingConfirmed)})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.BookingConfirmed, rows[0].Status)
}

func TestStats(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	b1 := seedBooking(t, repo, domain.BookingPending, day(10), day(12), 1, 1)
	_, err := repo.ConfirmPayment(ctx, b1.ID, "pay_1", "sig", time.Now().UTC())
	require.NoError(t, err)
	seedBooking(t, repo, domain.BookingPending, day(20), day(22), 1, 1)

	st, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.Total)
	assert.Equal(t, int64(1), st.ByStatus[string(domain.BookingConfirmed)])
	assert.Equal(t, int64(1), st.ByStatus[string(domain.BookingPending)])
	assert.Equal(t, int64(708000), st.Revenue)
}
