package plans

import "errors"

var (
	ErrNotFound     = errors.New("plan manager not found")
	ErrValidation   = errors.New("validation failed")
	ErrHasCustomers = errors.New("plan manager still has customers")
	ErrNoRenewal    = errors.New("plan manager has no renewal date")
)
