// Package pricing computes deterministic price breakdowns. All amounts are
// integers in the smallest currency unit; the GST computation is the single
// rounding point.
package pricing

import (
	"errors"
	"math"
	"time"
)

var (
	ErrDateOrder   = errors.New("check-out date must be after check-in date")
	ErrZeroRoomQty = errors.New("room quantity must be at least 1")
)

// Plan is the tagged pricing variant selected by package category. Exactly
// one of the two concrete plans applies to any package: a fixed bundle
// prices by its own base rate, a rooms_only bundle by room unit rate times
// the user-supplied quantity.
type Plan interface {
	subtotal(days int) (int64, error)
}

// FixedPlan prices a fixed-category package: base price per day times days.
type FixedPlan struct {
	BasePerDay int64
}

func (p FixedPlan) subtotal(days int) (int64, error) {
	return p.BasePerDay * int64(days), nil
}

// RoomPlan prices a rooms_only package: room unit rate times quantity times
// days. The package's own base price plays no part.
type RoomPlan struct {
	UnitPerDay int64
	Quantity   int
}

func (p RoomPlan) subtotal(days int) (int64, error) {
	if p.Quantity < 1 {
		return 0, ErrZeroRoomQty
	}
	return p.UnitPerDay * int64(p.Quantity) * int64(days), nil
}

// Quote is the price breakdown returned to callers.
type Quote struct {
	Days     int   `json:"number_of_days"`
	Subtotal int64 `json:"subtotal"`
	GST      int64 `json:"gst_amount"`
	Total    int64 `json:"total_amount"`
}

// Days counts whole days between two UTC-midnight dates: a 2-night stay
// spans 2 days (check-in night inclusive, check-out night exclusive).
func Days(checkIn, checkOut time.Time) (int, error) {
	if !checkOut.After(checkIn) {
		return 0, ErrDateOrder
	}
	return int(checkOut.Sub(checkIn).Hours() / 24), nil
}

// Compute produces the breakdown for a plan over a date interval.
// gst = round-half-up(subtotal × gstPercent / 100).
func Compute(plan Plan, checkIn, checkOut time.Time, gstPercent float64) (Quote, error) {
	days, err := Days(checkIn, checkOut)
	if err != nil {
		return Quote{}, err
	}
	sub, err := plan.subtotal(days)
	if err != nil {
		return Quote{}, err
	}
	gst := RoundGST(sub, gstPercent)
	return Quote{
		Days:     days,
		Subtotal: sub,
		GST:      gst,
		Total:    sub + gst,
	}, nil
}

// RoundGST applies the tax percentage with half-up rounding to the smallest
// currency unit.
func RoundGST(subtotal int64, gstPercent float64) int64 {
	return int64(math.Floor(float64(subtotal)*gstPercent/100 + 0.5))
}
