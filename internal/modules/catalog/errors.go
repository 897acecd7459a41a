package catalog

import "errors"

var (
	ErrNotFound             = errors.New("package not found")
	ErrValidation           = errors.New("validation error")
	ErrPackageInUse         = errors.New("package has active bookings")
	ErrRoomQuantityRequired = errors.New("room quantity is required for rooms_only packages")
)
