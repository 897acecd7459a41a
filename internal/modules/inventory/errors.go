package inventory

import "errors"

var (
	ErrNotFound   = errors.New("resource not found")
	ErrInactive   = errors.New("resource is not active")
	ErrValidation = errors.New("validation error")
)
