package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"bhavan/internal/availability"
	"bhavan/internal/domain"
	"bhavan/internal/gateway"
	"bhavan/internal/pkg/dates"
	"bhavan/internal/pricing"
	"bhavan/internal/repository"

	"gorm.io/gorm"
)

const orderCurrency = "INR"

type Service struct {
	bookings     BookingRepository
	packages     PackageReader
	resources    ResourceReader
	availability AvailabilityEvaluator
	gateway      gateway.Client
	locks        *resourceLocks
}

func NewService(bookings BookingRepository, packages PackageReader, resources ResourceReader, av AvailabilityEvaluator, gw gateway.Client) *Service {
	return &Service{
		bookings:     bookings,
		packages:     packages,
		resources:    resources,
		availability: av,
		gateway:      gw,
		locks:        newResourceLocks(),
	}
}

// bookingPlan is everything resolved up front for a booking request:
// parsed dates, the per-resource unit demand, the pricing plan, and the
// denormalized line items.
type bookingPlan struct {
	pkg      *domain.Package
	checkIn  time.Time
	checkOut time.Time
	days     int
	wanted   map[int64]int
	plan     pricing.Plan
	items    []domain.BookingItem
}

func (s *Service) resolve(ctx context.Context, packageID int64, checkInStr, checkOutStr string, roomQuantity int) (*bookingPlan, error) {
	pkg, err := s.packages.GetByID(ctx, packageID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: package %d", ErrNotFound, packageID)
	}
	if err != nil {
		return nil, err
	}
	if !pkg.IsActive {
		return nil, fmt.Errorf("%w: package is not active", ErrValidation)
	}

	checkIn, err := dates.Parse(checkInStr)
	if err != nil {
		return nil, fmt.Errorf("%w: check_in_date: %v", ErrValidation, err)
	}
	checkOut, err := dates.Parse(checkOutStr)
	if err != nil {
		return nil, fmt.Errorf("%w: check_out_date: %v", ErrValidation, err)
	}
	days, err := pricing.Days(checkIn, checkOut)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := availability.ValidateWindow(days, checkIn, pkg.MinBookingDays, pkg.MaxBookingDays, pkg.AdvanceBookingDays, dates.Today()); err != nil {
		return nil, err
	}

	bp := &bookingPlan{
		pkg:      pkg,
		checkIn:  checkIn,
		checkOut: checkOut,
		days:     days,
		wanted:   make(map[int64]int, len(pkg.Resources)),
	}

	if pkg.Category.Variable() {
		if roomQuantity < 1 {
			return nil, fmt.Errorf("%w: room_quantity is required for rooms_only packages", ErrValidation)
		}
		flex := pkg.FlexibleResource()
		if flex == nil {
			return nil, fmt.Errorf("%w: package has no flexible room resource", ErrValidation)
		}
		room := flex.Resource
		if room == nil {
			room, err = s.resources.GetByID(ctx, flex.ResourceID)
			if err != nil {
				return nil, err
			}
		}
		bp.wanted[room.ID] = roomQuantity
		bp.plan = pricing.RoomPlan{UnitPerDay: room.PricePerDay, Quantity: roomQuantity}
		bp.items = []domain.BookingItem{{
			ResourceID:   room.ID,
			FacilityType: room.FacilityType,
			Name:         room.Name,
			Category:     room.Category,
			Quantity:     roomQuantity,
			PricePerDay:  room.PricePerDay,
			Days:         days,
			Subtotal:     room.PricePerDay * int64(roomQuantity) * int64(days),
		}}
		return bp, nil
	}

	bp.plan = pricing.FixedPlan{BasePerDay: pkg.BasePricePerDay}
	for _, pr := range pkg.Resources {
		res := pr.Resource
		if res == nil {
			res, err = s.resources.GetByID(ctx, pr.ResourceID)
			if err != nil {
				return nil, err
			}
		}
		bp.wanted[res.ID] += pr.Quantity
		bp.items = append(bp.items, domain.BookingItem{
			ResourceID:   res.ID,
			FacilityType: res.FacilityType,
			Name:         res.Name,
			Category:     res.Category,
			Quantity:     pr.Quantity,
			PricePerDay:  res.PricePerDay,
			Days:         days,
			Subtotal:     res.PricePerDay * int64(pr.Quantity) * int64(days),
		})
	}
	return bp, nil
}

// CheckAvailability is the read-only availability query: pending bookings
// do not count against inventory here.
func (s *Service) CheckAvailability(ctx context.Context, req CheckAvailabilityRequest) ([]availability.Report, bool, error) {
	bp, err := s.resolve(ctx, req.PackageID, req.CheckInDate, req.CheckOutDate, req.RoomQuantity)
	if err != nil {
		return nil, false, err
	}
	return s.availability.Evaluate(ctx, bp.wanted, bp.checkIn, bp.checkOut, false)
}

// CreateOrder is the two-phase reservation: (1) re-validate availability
// counting pending bookings, under the per-resource locks, (2) create the
// external payment order, (3) persist the pending booking referencing it.
// A failed re-check creates neither an order nor a booking row.
func (s *Service) CreateOrder(ctx context.Context, userID int64, req CreateOrderRequest) (*CreateOrderResponse, error) {
	bp, err := s.resolve(ctx, req.PackageID, req.CheckInDate, req.CheckOutDate, req.RoomQuantity)
	if err != nil {
		return nil, err
	}

	guest := domain.GuestDetails{
		Name:       req.Guest.Name,
		Phone:      req.Guest.Phone,
		Email:      req.Guest.Email,
		GuestCount: req.Guest.GuestCount,
	}
	// Guest invariants must fail here, before an external order exists.
	if bp.pkg.Category == domain.PackageRoomsOnly && guest.GuestCount < 1 {
		return nil, fmt.Errorf("%w: %v", ErrValidation, domain.ErrGuestCount)
	}

	quote, err := pricing.Compute(bp.plan, bp.checkIn, bp.checkOut, bp.pkg.GSTPercent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	ids := make([]int64, 0, len(bp.wanted))
	for id := range bp.wanted {
		ids = append(ids, id)
	}
	release := s.locks.Acquire(ids)
	defer release()

	reports, ok, err := s.availability.Evaluate(ctx, bp.wanted, bp.checkIn, bp.checkOut, true)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &AvailabilityError{Reports: reports}
	}

	order, err := s.gateway.CreateOrder(ctx, quote.Total, orderCurrency, map[string]string{
		"package_id": strconv.FormatInt(bp.pkg.ID, 10),
		"user_id":    strconv.FormatInt(userID, 10),
		"check_in":   dates.Format(bp.checkIn),
		"check_out":  dates.Format(bp.checkOut),
	})
	if err != nil {
		return nil, err
	}

	b, err := domain.NewPendingBooking(userID, bp.pkg, bp.items, bp.checkIn, bp.checkOut, guest, quote.Subtotal, quote.GST, order.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	slog.Info("payment order created",
		"booking_id", b.ID,
		"reference", b.Reference,
		"order_id", order.ID,
		"amount", quote.Total,
	)

	return &CreateOrderResponse{
		Booking:  b,
		OrderID:  order.ID,
		Amount:   quote.Total,
		Currency: orderCurrency,
	}, nil
}

// VerifyPayment is the verification gate: recompute the HMAC over
// orderID|paymentID and transition the booking accordingly. Only the
// booking's owner may verify, and a booking that is already confirmed is
// never confirmed again.
func (s *Service) VerifyPayment(ctx context.Context, userID int64, req VerifyPaymentRequest) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrForbidden
	}
	if b.Status == domain.BookingConfirmed {
		return nil, domain.ErrAlreadyVerified
	}
	if b.Status != domain.BookingPending {
		return nil, domain.ErrBadTransition
	}
	if b.Payment.OrderID != req.OrderID {
		return nil, ErrOrderMismatch
	}

	if !s.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		// Potential fraud signal: someone presented a signature the
		// processor never produced.
		slog.Warn("payment signature mismatch",
			"booking_id", b.ID,
			"order_id", req.OrderID,
			"payment_id", req.PaymentID,
		)
		if _, err := s.bookings.MarkPaymentFailed(ctx, b.ID, req.PaymentID, req.Signature); err != nil {
			return nil, err
		}
		return nil, ErrInvalidSignature
	}

	changed, err := s.bookings.ConfirmPayment(ctx, b.ID, req.PaymentID, req.Signature, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !changed {
		// A concurrent verification won the conditional update.
		return nil, domain.ErrAlreadyVerified
	}

	slog.Info("booking confirmed", "booking_id", b.ID, "reference", b.Reference)
	return s.getBooking(ctx, b.ID)
}

func (s *Service) MyBookings(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID, limit, offset)
}

// GetBooking enforces ownership: a user sees their own bookings, an admin
// sees all.
func (s *Service) GetBooking(ctx context.Context, bookingID, userID int64, role domain.Role) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID && role != domain.RoleAdmin {
		// Do not leak existence to non-owners.
		return nil, ErrNotFound
	}
	return b, nil
}

// Cancel cancels the caller's own booking. Refund policy: full refund of
// the paid amount 7+ days before check-in, half within 7 days, none on the
// check-in day itself.
func (s *Service) Cancel(ctx context.Context, bookingID, userID int64, reason string) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrNotFound
	}
	return s.cancel(ctx, b, "user", reason)
}

// AdminCancel cancels any booking on behalf of venue staff.
func (s *Service) AdminCancel(ctx context.Context, bookingID int64, reason string) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return s.cancel(ctx, b, "admin", reason)
}

func (s *Service) cancel(ctx context.Context, b *domain.Booking, actor, reason string) (*domain.Booking, error) {
	if !b.Status.Cancellable() {
		return nil, domain.ErrNotCancellable
	}

	refund := refundAmount(b, dates.Today())
	c := domain.Cancellation{
		CancelledBy:  actor,
		CancelledAt:  time.Now().UTC(),
		Reason:       reason,
		RefundAmount: refund,
		RefundStatus: "none",
	}
	if refund > 0 {
		c.RefundStatus = "initiated"
	}

	changed, err := s.bookings.Cancel(ctx, b.ID, c)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, domain.ErrNotCancellable
	}

	slog.Info("booking cancelled", "booking_id", b.ID, "by", actor, "refund", refund)
	return s.getBooking(ctx, b.ID)
}

func refundAmount(b *domain.Booking, today time.Time) int64 {
	if b.PaidAmount == 0 {
		return 0
	}
	daysUntil := int(b.CheckInDate.Sub(today).Hours() / 24)
	switch {
	case daysUntil >= 7:
		return b.PaidAmount
	case daysUntil >= 1:
		return b.PaidAmount / 2
	default:
		return 0
	}
}

// CheckIn moves a confirmed booking to checked_in.
func (s *Service) CheckIn(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	return s.transition(ctx, bookingID, domain.BookingConfirmed, domain.BookingCheckedIn)
}

// CheckOut moves a checked-in booking to checked_out.
func (s *Service) CheckOut(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	return s.transition(ctx, bookingID, domain.BookingCheckedIn, domain.BookingCheckedOut)
}

// NoShow marks a confirmed booking whose guests never arrived. The paid
// amount stays with the venue; the units free up for the remaining days.
func (s *Service) NoShow(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	return s.transition(ctx, bookingID, domain.BookingConfirmed, domain.BookingNoShow)
}

func (s *Service) transition(ctx context.Context, bookingID int64, from, to domain.BookingStatus) (*domain.Booking, error) {
	if !from.CanTransition(to) {
		return nil, domain.ErrBadTransition
	}
	if _, err := s.getBooking(ctx, bookingID); err != nil {
		return nil, err
	}
	changed, err := s.bookings.Transition(ctx, bookingID, from, to)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, domain.ErrBadTransition
	}
	return s.getBooking(ctx, bookingID)
}

func (s *Service) ListAll(ctx context.Context, f repository.ListFilter) ([]domain.Booking, error) {
	return s.bookings.List(ctx, f)
}

func (s *Service) Upcoming(ctx context.Context, limit int) ([]domain.Booking, error) {
	return s.bookings.ListUpcoming(ctx, dates.Today(), limit)
}

func (s *Service) Stats(ctx context.Context) (*repository.Stats, error) {
	return s.bookings.Stats(ctx)
}

func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}
