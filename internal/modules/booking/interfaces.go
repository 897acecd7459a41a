package booking

import (
	"context"
	"time"

	"bhavan/internal/availability"
	"bhavan/internal/domain"
	"bhavan/internal/repository"
)

// BookingRepository is the persistence surface of the lifecycle machine.
// The conditional mutations (ConfirmPayment, Cancel, Transition) return
// false when the status guard rejected the change.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error)
	List(ctx context.Context, f repository.ListFilter) ([]domain.Booking, error)
	ListUpcoming(ctx context.Context, from time.Time, limit int) ([]domain.Booking, error)
	ConfirmPayment(ctx context.Context, id int64, paymentID, signature string, paidAt time.Time) (bool, error)
	MarkPaymentFailed(ctx context.Context, id int64, paymentID, signature string) (bool, error)
	Cancel(ctx context.Context, id int64, c domain.Cancellation) (bool, error)
	Transition(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error)
	Stats(ctx context.Context) (*repository.Stats, error)
}

type PackageReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Package, error)
}

type ResourceReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
}

// AvailabilityEvaluator runs the multi-resource availability conjunction;
// the inventory service provides it.
type AvailabilityEvaluator interface {
	Evaluate(ctx context.Context, wanted map[int64]int, checkIn, checkOut time.Time, includePending bool) ([]availability.Report, bool, error)
}
