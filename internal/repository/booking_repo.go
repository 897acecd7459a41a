package repository

import (
	"context"
	"errors"
	"time"

	"bhavan/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrConflict surfaces a database uniqueness violation, e.g. a booking
// reference collision.
var ErrConflict = errors.New("booking conflicts with existing row")

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Reference    string    `gorm:"column:reference;uniqueIndex"`
	UserID       int64     `gorm:"column:user_id;index"`
	PackageID    int64     `gorm:"column:package_id;index"`
	Category     string    `gorm:"column:category"`
	CheckInDate  time.Time `gorm:"column:check_in_date;index"`
	CheckOutDate time.Time `gorm:"column:check_out_date;index"`

	GuestName  string `gorm:"column:guest_name"`
	GuestPhone string `gorm:"column:guest_phone"`
	GuestEmail string `gorm:"column:guest_email"`
	GuestCount int    `gorm:"column:guest_count"`

	Subtotal      int64 `gorm:"column:subtotal"`
	GSTAmount     int64 `gorm:"column:gst_amount"`
	TotalAmount   int64 `gorm:"column:total_amount"`
	PaidAmount    int64 `gorm:"column:paid_amount"`
	BalanceAmount int64 `gorm:"column:balance_amount"`

	Status string `gorm:"column:status;index"`

	PaymentOrderID   string     `gorm:"column:payment_order_id;index"`
	PaymentPaymentID string     `gorm:"column:payment_payment_id"`
	PaymentSignature string     `gorm:"column:payment_signature"`
	PaymentStatus    string     `gorm:"column:payment_status"`
	PaidAt           *time.Time `gorm:"column:paid_at"`

	CancelledBy  *string    `gorm:"column:cancelled_by"`
	CancelledAt  *time.Time `gorm:"column:cancelled_at"`
	CancelReason *string    `gorm:"column:cancel_reason"`
	RefundAmount int64      `gorm:"column:refund_amount"`
	RefundStatus *string    `gorm:"column:refund_status"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

type bookingItemModel struct {
	ID           int64  `gorm:"column:id;primaryKey"`
	BookingID    int64  `gorm:"column:booking_id;index"`
	ResourceID   int64  `gorm:"column:resource_id;index"`
	FacilityType string `gorm:"column:facility_type"`
	Name         string `gorm:"column:name"`
	Category     string `gorm:"column:category"`
	Quantity     int    `gorm:"column:quantity"`
	PricePerDay  int64  `gorm:"column:price_per_day"`
	Days         int    `gorm:"column:days"`
	Subtotal     int64  `gorm:"column:subtotal"`
}

func (bookingItemModel) TableName() string { return "booking_items" }

func toDomainBooking(m bookingModel, items []bookingItemModel) *domain.Booking {
	b := &domain.Booking{
		ID:           m.ID,
		Reference:    m.Reference,
		UserID:       m.UserID,
		PackageID:    m.PackageID,
		Category:     domain.PackageCategory(m.Category),
		CheckInDate:  m.CheckInDate,
		CheckOutDate: m.CheckOutDate,
		Guest: domain.GuestDetails{
			Name:       m.GuestName,
			Phone:      m.GuestPhone,
			Email:      m.GuestEmail,
			GuestCount: m.GuestCount,
		},
		Subtotal:      m.Subtotal,
		GSTAmount:     m.GSTAmount,
		TotalAmount:   m.TotalAmount,
		PaidAmount:    m.PaidAmount,
		BalanceAmount: m.BalanceAmount,
		Status:        domain.BookingStatus(m.Status),
		Payment: domain.PaymentInfo{
			OrderID:   m.PaymentOrderID,
			PaymentID: m.PaymentPaymentID,
			Signature: m.PaymentSignature,
			Status:    domain.PaymentStatus(m.PaymentStatus),
			PaidAt:    m.PaidAt,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.CancelledAt != nil {
		c := &domain.Cancellation{
			CancelledAt:  *m.CancelledAt,
			RefundAmount: m.RefundAmount,
		}
		if m.CancelledBy != nil {
			c.CancelledBy = *m.CancelledBy
		}
		if m.CancelReason != nil {
			c.Reason = *m.CancelReason
		}
		if m.RefundStatus != nil {
			c.RefundStatus = *m.RefundStatus
		}
		b.Cancellation = c
	}
	for _, it := range items {
		b.Items = append(b.Items, domain.BookingItem{
			ID:           it.ID,
			BookingID:    it.BookingID,
			ResourceID:   it.ResourceID,
			FacilityType: domain.FacilityType(it.FacilityType),
			Name:         it.Name,
			Category:     it.Category,
			Quantity:     it.Quantity,
			PricePerDay:  it.PricePerDay,
			Days:         it.Days,
			Subtotal:     it.Subtotal,
		})
	}
	return b
}

func toBookingModel(b *domain.Booking) bookingModel {
	m := bookingModel{
		ID:               b.ID,
		Reference:        b.Reference,
		UserID:           b.UserID,
		PackageID:        b.PackageID,
		Category:         string(b.Category),
		CheckInDate:      b.CheckInDate,
		CheckOutDate:     b.CheckOutDate,
		GuestName:        b.Guest.Name,
		GuestPhone:       b.Guest.Phone,
		GuestEmail:       b.Guest.Email,
		GuestCount:       b.Guest.GuestCount,
		Subtotal:         b.Subtotal,
		GSTAmount:        b.GSTAmount,
		TotalAmount:      b.TotalAmount,
		PaidAmount:       b.PaidAmount,
		BalanceAmount:    b.TotalAmount - b.PaidAmount,
		Status:           string(b.Status),
		PaymentOrderID:   b.Payment.OrderID,
		PaymentPaymentID: b.Payment.PaymentID,
		PaymentSignature: b.Payment.Signature,
		PaymentStatus:    string(b.Payment.Status),
		PaidAt:           b.Payment.PaidAt,
		RefundAmount:     0,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
	if c := b.Cancellation; c != nil {
		m.CancelledBy = &c.CancelledBy
		at := c.CancelledAt
		m.CancelledAt = &at
		m.CancelReason = &c.Reason
		m.RefundAmount = c.RefundAmount
		m.RefundStatus = &c.RefundStatus
	}
	return m
}

// Migrate creates the booking tables. Used by cmd/seed and test setup.
func (r *BookingRepository) Migrate() error {
	return r.db.AutoMigrate(&bookingModel{}, &bookingItemModel{})
}

// Create persists a booking and its line items in one transaction.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		for i := range b.Items {
			it := bookingItemModel{
				BookingID:    m.ID,
				ResourceID:   b.Items[i].ResourceID,
				FacilityType: string(b.Items[i].FacilityType),
				Name:         b.Items[i].Name,
				Category:     b.Items[i].Category,
				Quantity:     b.Items[i].Quantity,
				PricePerDay:  b.Items[i].PricePerDay,
				Days:         b.Items[i].Days,
				Subtotal:     b.Items[i].Subtotal,
			}
			if err := tx.Create(&it).Error; err != nil {
				return err
			}
			b.Items[i].ID = it.ID
			b.Items[i].BookingID = m.ID
		}
		return nil
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return err
	}
	b.ID = m.ID
	b.CreatedAt = m.CreatedAt
	b.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	var items []bookingItemModel
	if err := r.db.WithContext(ctx).Where("booking_id = ?", id).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return toDomainBooking(m, items), nil
}

// SumBookedUnits totals the units of a resource claimed by bookings in the
// given statuses that overlap [start, end). Half-open semantics: a booking
// checking out on the requested check-in day does not count.
func (r *BookingRepository) SumBookedUnits(ctx context.Context, resourceID int64, start, end time.Time, statuses []domain.BookingStatus) (int, error) {
	st := make([]string, 0, len(statuses))
	for _, s := range statuses {
		st = append(st, string(s))
	}
	var total int
	err := r.db.WithContext(ctx).
		Model(&bookingItemModel{}).
		Select("COALESCE(SUM(booking_items.quantity), 0)").
		Joins("JOIN bookings ON bookings.id = booking_items.booking_id").
		Where("booking_items.resource_id = ?", resourceID).
		Where("bookings.status IN ?", st).
		Where("bookings.check_in_date < ? AND bookings.check_out_date > ?", end, start).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	var rows []bookingModel
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.attachItems(ctx, rows)
}

// ListFilter narrows admin listing by status and check-in window.
type ListFilter struct {
	Status string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

func (r *BookingRepository) List(ctx context.Context, f ListFilter) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).Model(&bookingModel{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.From != nil {
		q = q.Where("check_in_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("check_in_date < ?", *f.To)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	var rows []bookingModel
	if err := q.Order("check_in_date").Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.attachItems(ctx, rows)
}

// ListUpcoming returns confirmed or checked-in bookings with a check-in
// date at or after the given day.
func (r *BookingRepository) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]domain.Booking, error) {
	var rows []bookingModel
	q := r.db.WithContext(ctx).
		Where("check_in_date >= ?", from).
		Where("status IN ?", []string{string(domain.BookingConfirmed), string(domain.BookingCheckedIn)}).
		Order("check_in_date")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.attachItems(ctx, rows)
}

func (r *BookingRepository) attachItems(ctx context.Context, rows []bookingModel) ([]domain.Booking, error) {
	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		var items []bookingItemModel
		if err := r.db.WithContext(ctx).Where("booking_id = ?", m.ID).Order("id").Find(&items).Error; err != nil {
			return nil, err
		}
		out = append(out, *toDomainBooking(m, items))
	}
	return out, nil
}

// ConfirmPayment transitions a pending booking to confirmed and settles the
// amounts in one conditional update. The status guard in the WHERE clause
// makes duplicate and racing verification calls lose cleanly: rows
// affected 0 means someone else got there first or the booking was never
// pending.
func (r *BookingRepository) ConfirmPayment(ctx context.Context, id int64, paymentID, signature string, paidAt time.Time) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, string(domain.BookingPending)).
		Updates(map[string]interface{}{
			"status":             string(domain.BookingConfirmed),
			"payment_payment_id": paymentID,
			"payment_signature":  signature,
			"payment_status":     string(domain.PaymentPaid),
			"paid_at":            paidAt,
			"paid_amount":        gorm.Expr("total_amount"),
			"balance_amount":     0,
			"updated_at":         time.Now().UTC(),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

// MarkPaymentFailed moves a pending booking to failed after a signature
// mismatch. Paid amount stays untouched.
func (r *BookingRepository) MarkPaymentFailed(ctx context.Context, id int64, paymentID, signature string) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, string(domain.BookingPending)).
		Updates(map[string]interface{}{
			"status":             string(domain.BookingFailed),
			"payment_payment_id": paymentID,
			"payment_signature":  signature,
			"payment_status":     string(domain.PaymentFailed),
			"updated_at":         time.Now().UTC(),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

// Cancel records the cancellation if the booking is still cancellable.
func (r *BookingRepository) Cancel(ctx context.Context, id int64, c domain.Cancellation) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status IN ?", id, []string{string(domain.BookingPending), string(domain.BookingConfirmed)}).
		Updates(map[string]interface{}{
			"status":        string(domain.BookingCancelled),
			"cancelled_by":  c.CancelledBy,
			"cancelled_at":  c.CancelledAt,
			"cancel_reason": c.Reason,
			"refund_amount": c.RefundAmount,
			"refund_status": c.RefundStatus,
			"updated_at":    time.Now().UTC(),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

// Transition applies a guarded status move (check-in, check-out, no-show):
// the row only changes when it is still in the expected source status.
func (r *BookingRepository) Transition(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{
			"status":     string(to),
			"updated_at": time.Now().UTC(),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

// HasActiveForPackage reports whether any inventory-consuming booking
// still references the package.
func (r *BookingRepository) HasActiveForPackage(ctx context.Context, packageID int64) (bool, error) {
	statuses := []string{
		string(domain.BookingPending),
		string(domain.BookingConfirmed),
		string(domain.BookingCheckedIn),
	}
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("package_id = ? AND status IN ?", packageID, statuses).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// Stats are the aggregate counters for the admin dashboard.
type Stats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
	Revenue  int64            `json:"revenue"`
}

func (r *BookingRepository) Stats(ctx context.Context) (*Stats, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Select("status, COUNT(1) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	st := &Stats{ByStatus: make(map[string]int64)}
	for _, r := range rows {
		st.ByStatus[r.Status] = r.Count
		st.Total += r.Count
	}
	err = r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Select("COALESCE(SUM(paid_amount), 0)").
		Where("status IN ?", []string{
			string(domain.BookingConfirmed),
			string(domain.BookingCheckedIn),
			string(domain.BookingCheckedOut),
		}).
		Scan(&st.Revenue).Error
	if err != nil {
		return nil, err
	}
	return st, nil
}
