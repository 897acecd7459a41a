package domain

import (
	"errors"
	"strings"
	"time"
)

type PackageCategory string

const (
	PackageRoomsOnly    PackageCategory = "rooms_only"
	PackageFunctionHall PackageCategory = "function_hall"
	PackageDiningHall   PackageCategory = "dining_hall"
	PackageMiniHall     PackageCategory = "mini_hall"
	PackageFullVenue    PackageCategory = "full_venue"
)

func (c PackageCategory) Valid() bool {
	switch c {
	case PackageRoomsOnly, PackageFunctionHall, PackageDiningHall, PackageMiniHall, PackageFullVenue:
		return true
	}
	return false
}

// Variable reports whether the booking quantity is supplied by the user at
// booking time instead of being fixed by the package definition.
func (c PackageCategory) Variable() bool { return c == PackageRoomsOnly }

// PackageResource is one line of a package's inclusion list. Flexible marks
// the user-selectable room entry of a rooms_only package; fixed packages
// never carry flexible lines.
type PackageResource struct {
	ID         int64 `json:"id" gorm:"primaryKey"`
	PackageID  int64 `json:"-" gorm:"index"`
	ResourceID int64 `json:"resource_id"`
	Quantity   int   `json:"quantity"`
	Flexible   bool  `json:"flexible"`

	Resource *Resource `json:"resource,omitempty" gorm:"foreignKey:ResourceID"`
}

type Package struct {
	ID                 int64             `json:"id" gorm:"primaryKey"`
	Name               string            `json:"name" validate:"required"`
	Slug               string            `json:"slug" gorm:"uniqueIndex"`
	Description        string            `json:"description,omitempty" gorm:"type:text"`
	Category           PackageCategory   `json:"category" validate:"required"`
	BasePricePerDay    int64             `json:"base_price_per_day"`
	GSTPercent         float64           `json:"gst_percent" validate:"gte=0"`
	MinBookingDays     int               `json:"min_booking_days"`
	MaxBookingDays     int               `json:"max_booking_days"`
	AdvanceBookingDays int               `json:"advance_booking_days"`
	IsActive           bool              `json:"is_active"`
	Resources          []PackageResource `json:"resources" gorm:"foreignKey:PackageID"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

var (
	ErrInvalidCategory     = errors.New("invalid package category")
	ErrNoResources         = errors.New("package must reference at least one resource")
	ErrFixedPriceOnRooms   = errors.New("rooms_only package must not carry a base price")
	ErrMissingFlexibleRoom = errors.New("rooms_only package must expose exactly one flexible room resource")
	ErrFlexibleOnFixed     = errors.New("fixed package must not carry flexible resources")
	ErrMissingBasePrice    = errors.New("fixed package requires a base price per day")
)

// Validate enforces the category variant rules: a variable (rooms_only)
// package derives its price entirely from the selected room resource, a
// fixed package from its own base price and fixed inclusion list.
func (p *Package) Validate() error {
	if !p.Category.Valid() {
		return ErrInvalidCategory
	}
	if len(p.Resources) == 0 {
		return ErrNoResources
	}
	if p.Category.Variable() {
		if p.BasePricePerDay != 0 {
			return ErrFixedPriceOnRooms
		}
		flexible := 0
		for _, r := range p.Resources {
			if r.Flexible {
				flexible++
			}
		}
		if flexible != 1 {
			return ErrMissingFlexibleRoom
		}
		return nil
	}
	if p.BasePricePerDay <= 0 {
		return ErrMissingBasePrice
	}
	for _, r := range p.Resources {
		if r.Flexible {
			return ErrFlexibleOnFixed
		}
		if r.Quantity < 1 {
			return errors.New("package resource quantity must be at least 1")
		}
	}
	return nil
}

// FlexibleResource returns the user-selectable room line of a variable
// package, or nil for fixed packages.
func (p *Package) FlexibleResource() *PackageResource {
	for i := range p.Resources {
		if p.Resources[i].Flexible {
			return &p.Resources[i]
		}
	}
	return nil
}

// Slugify derives the URL slug from the package name.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	prevDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash && b.Len() > 0 {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
