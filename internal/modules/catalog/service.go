package catalog

import (
	"context"
	"errors"
	"fmt"

	"bhavan/internal/availability"
	"bhavan/internal/domain"
	"bhavan/internal/pkg/dates"
	"bhavan/internal/pricing"

	"gorm.io/gorm"
)

type Service struct {
	packages  PackageRepository
	resources ResourceReader
	bookings  ActiveBookingChecker
}

func NewService(packages PackageRepository, resources ResourceReader, bookings ActiveBookingChecker) *Service {
	return &Service{packages: packages, resources: resources, bookings: bookings}
}

func (s *Service) buildPackage(req CreatePackageRequest) (*domain.Package, error) {
	p := &domain.Package{
		Name:               req.Name,
		Slug:               domain.Slugify(req.Name),
		Description:        req.Description,
		Category:           domain.PackageCategory(req.Category),
		BasePricePerDay:    req.BasePricePerDay,
		GSTPercent:         req.GSTPercent,
		MinBookingDays:     req.MinBookingDays,
		MaxBookingDays:     req.MaxBookingDays,
		AdvanceBookingDays: req.AdvanceBookingDays,
		IsActive:           true,
	}
	if p.MinBookingDays == 0 {
		p.MinBookingDays = 1
	}
	for _, r := range req.Resources {
		qty := r.Quantity
		if r.Flexible && qty == 0 {
			qty = 1 // placeholder; actual quantity is user-supplied at booking time
		}
		p.Resources = append(p.Resources, domain.PackageResource{
			ResourceID: r.ResourceID,
			Quantity:   qty,
			Flexible:   r.Flexible,
		})
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return p, nil
}

func (s *Service) CreatePackage(ctx context.Context, req CreatePackageRequest) (*domain.Package, error) {
	p, err := s.buildPackage(req)
	if err != nil {
		return nil, err
	}
	for _, r := range p.Resources {
		if _, err := s.resources.GetByID(ctx, r.ResourceID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: resource %d does not exist", ErrValidation, r.ResourceID)
			}
			return nil, err
		}
	}
	if err := s.packages.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdatePackage replaces a package definition. When active bookings still
// reference the package, changes to the sensitive fields (pricing, tax,
// category, inclusion list) are refused; description-level edits pass.
func (s *Service) UpdatePackage(ctx context.Context, id int64, req UpdatePackageRequest) (*domain.Package, error) {
	existing, err := s.getPackage(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.buildPackage(req)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.IsActive = existing.IsActive

	if touchesSensitiveFields(existing, updated) {
		inUse, err := s.bookings.HasActiveForPackage(ctx, id)
		if err != nil {
			return nil, err
		}
		if inUse {
			return nil, ErrPackageInUse
		}
	}

	if err := s.packages.Update(ctx, updated); err != nil {
		return nil, err
	}
	return s.getPackage(ctx, id)
}

func touchesSensitiveFields(old, new *domain.Package) bool {
	if old.BasePricePerDay != new.BasePricePerDay ||
		old.GSTPercent != new.GSTPercent ||
		old.Category != new.Category {
		return true
	}
	if len(old.Resources) != len(new.Resources) {
		return true
	}
	oldQty := make(map[int64]int, len(old.Resources))
	for _, r := range old.Resources {
		oldQty[r.ResourceID] = r.Quantity
	}
	for _, r := range new.Resources {
		if q, ok := oldQty[r.ResourceID]; !ok || q != r.Quantity {
			return true
		}
	}
	return false
}

// DeletePackage soft-deletes: the package disappears from listings but
// historical bookings keep a valid reference.
func (s *Service) DeletePackage(ctx context.Context, id int64) error {
	if _, err := s.getPackage(ctx, id); err != nil {
		return err
	}
	inUse, err := s.bookings.HasActiveForPackage(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return ErrPackageInUse
	}
	return s.packages.SoftDelete(ctx, id)
}

func (s *Service) List(ctx context.Context, category string) ([]domain.Package, error) {
	return s.packages.List(ctx, category)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Package, error) {
	return s.getPackage(ctx, id)
}

func (s *Service) getPackage(ctx context.Context, id int64) (*domain.Package, error) {
	p, err := s.packages.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Plan resolves the tagged pricing variant for a package: a RoomPlan for
// the variable rooms_only category, a FixedPlan for everything else.
func (s *Service) Plan(ctx context.Context, p *domain.Package, roomQuantity int) (pricing.Plan, error) {
	if !p.Category.Variable() {
		return pricing.FixedPlan{BasePerDay: p.BasePricePerDay}, nil
	}

	if roomQuantity < 1 {
		return nil, ErrRoomQuantityRequired
	}
	flex := p.FlexibleResource()
	if flex == nil {
		return nil, fmt.Errorf("%w: package %d has no flexible room resource", ErrValidation, p.ID)
	}
	room := flex.Resource
	if room == nil {
		loaded, err := s.resources.GetByID(ctx, flex.ResourceID)
		if err != nil {
			return nil, err
		}
		room = loaded
	}
	return pricing.RoomPlan{UnitPerDay: room.PricePerDay, Quantity: roomQuantity}, nil
}

// CalculatePrice computes the deterministic breakdown for a package over a
// date range, enforcing the package booking-window rules first.
func (s *Service) CalculatePrice(ctx context.Context, id int64, req CalculatePriceRequest) (*PriceResponse, error) {
	p, err := s.getPackage(ctx, id)
	if err != nil {
		return nil, err
	}

	checkIn, err := dates.Parse(req.CheckInDate)
	if err != nil {
		return nil, fmt.Errorf("%w: check_in_date: %v", ErrValidation, err)
	}
	checkOut, err := dates.Parse(req.CheckOutDate)
	if err != nil {
		return nil, fmt.Errorf("%w: check_out_date: %v", ErrValidation, err)
	}

	days, err := pricing.Days(checkIn, checkOut)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := availability.ValidateWindow(days, checkIn, p.MinBookingDays, p.MaxBookingDays, p.AdvanceBookingDays, dates.Today()); err != nil {
		return nil, err
	}

	plan, err := s.Plan(ctx, p, req.RoomQuantity)
	if err != nil {
		return nil, err
	}

	quote, err := pricing.Compute(plan, checkIn, checkOut, p.GSTPercent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return &PriceResponse{PackageID: p.ID, Quote: quote}, nil
}
