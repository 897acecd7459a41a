package catalog

import (
	"context"

	"bhavan/internal/domain"
)

type PackageRepository interface {
	Create(ctx context.Context, p *domain.Package) error
	GetByID(ctx context.Context, id int64) (*domain.Package, error)
	List(ctx context.Context, category string) ([]domain.Package, error)
	Update(ctx context.Context, p *domain.Package) error
	SoftDelete(ctx context.Context, id int64) error
}

type ResourceReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
}

type ActiveBookingChecker interface {
	HasActiveForPackage(ctx context.Context, packageID int64) (bool, error)
}
