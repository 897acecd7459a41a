package inventory

import (
	"context"
	"time"

	"bhavan/internal/domain"
	"bhavan/internal/repository"
)

type ResourceRepository interface {
	Create(ctx context.Context, res *domain.Resource) error
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
	List(ctx context.Context, f repository.ResourceFilter) ([]domain.Resource, error)
}

type BookedUnitsReader interface {
	SumBookedUnits(ctx context.Context, resourceID int64, start, end time.Time, statuses []domain.BookingStatus) (int, error)
}
