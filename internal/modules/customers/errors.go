package customers

import "errors"

var (
	ErrNotFound         = errors.New("customer not found")
	ErrManagerNotFound  = errors.New("plan manager not found")
	ErrValidation       = errors.New("validation failed")
	ErrNoCapacity       = errors.New("plan manager has no free slots")
	ErrPlatformMismatch = errors.New("target plan manager is on a different platform")
	ErrLedgerConflict   = errors.New("ledger row already exists for that month")
)
