package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bhavan/internal/availability"
	"bhavan/internal/domain"
	"bhavan/internal/pkg/dates"
	"bhavan/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	resources ResourceRepository
	bookings  BookedUnitsReader
}

func NewService(resources ResourceRepository, bookings BookedUnitsReader) *Service {
	return &Service{resources: resources, bookings: bookings}
}

func (s *Service) CreateResource(ctx context.Context, req CreateResourceRequest) (*domain.Resource, error) {
	res, err := domain.NewResource(
		req.Name,
		domain.FacilityType(req.FacilityType),
		req.Category,
		req.PricePerDay,
		req.Capacity,
		req.TotalUnits,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	res.Description = req.Description
	res.Exclusive = req.Exclusive
	if req.MinBookingDays > 0 {
		res.MinBookingDays = req.MinBookingDays
	}
	res.MaxBookingDays = req.MaxBookingDays
	res.AdvanceBookingDays = req.AdvanceBookingDays

	if err := s.resources.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) List(ctx context.Context, facilityType, category string) ([]domain.Resource, error) {
	return s.resources.List(ctx, repository.ResourceFilter{
		FacilityType: facilityType,
		Category:     category,
	})
}

func (s *Service) GetResource(ctx context.Context, id int64) (*domain.Resource, error) {
	res, err := s.resources.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// CheckAvailability reports per-resource availability over a date range.
// The public check counts confirmed and checked-in bookings only;
// order-creation re-validation additionally counts pending ones via
// includePending.
func (s *Service) CheckAvailability(ctx context.Context, req CheckAvailabilityRequest, includePending bool) (*AvailabilityResponse, error) {
	checkIn, err := dates.Parse(req.CheckInDate)
	if err != nil {
		return nil, fmt.Errorf("%w: check_in_date: %v", ErrValidation, err)
	}
	checkOut, err := dates.Parse(req.CheckOutDate)
	if err != nil {
		return nil, fmt.Errorf("%w: check_out_date: %v", ErrValidation, err)
	}
	if !checkOut.After(checkIn) {
		return nil, fmt.Errorf("%w: %v", ErrValidation, domain.ErrDateOrder)
	}

	reports, ok, err := s.Evaluate(ctx, selectionsOf(req.Resources), checkIn, checkOut, includePending)
	if err != nil {
		return nil, err
	}

	return &AvailabilityResponse{
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
		Available:    ok,
		Resources:    reports,
	}, nil
}

func selectionsOf(in []ResourceSelection) map[int64]int {
	out := make(map[int64]int, len(in))
	for _, sel := range in {
		out[sel.ResourceID] += sel.Quantity
	}
	return out
}

// Evaluate runs the availability conjunction for a set of resource
// quantities: every requested resource must have enough free units for the
// whole interval, and every insufficient one is reported, not just the
// first. Window rules (duration, advance) of each resource are enforced
// with the violated limit named.
func (s *Service) Evaluate(ctx context.Context, wanted map[int64]int, checkIn, checkOut time.Time, includePending bool) ([]availability.Report, bool, error) {
	days := int(checkOut.Sub(checkIn).Hours() / 24)
	statuses := domain.ActiveBookingStatuses(includePending)

	reports := make([]availability.Report, 0, len(wanted))
	ok := true
	for resourceID, qty := range wanted {
		res, err := s.resources.GetByID(ctx, resourceID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, fmt.Errorf("%w: resource %d", ErrNotFound, resourceID)
		}
		if err != nil {
			return nil, false, err
		}
		if !res.IsActive {
			return nil, false, fmt.Errorf("%w: %s", ErrInactive, res.Name)
		}

		if err := availability.ValidateWindow(days, checkIn, res.MinBookingDays, res.MaxBookingDays, res.AdvanceBookingDays, dates.Today()); err != nil {
			return nil, false, err
		}

		booked, err := s.bookings.SumBookedUnits(ctx, resourceID, checkIn, checkOut, statuses)
		if err != nil {
			return nil, false, err
		}

		report := availability.Evaluate(res.ID, res.Name, res.TotalUnits, booked, qty, res.Exclusive)
		if !report.OK {
			ok = false
		}
		reports = append(reports, report)
	}
	return reports, ok, nil
}
