package subscriptions

import "errors"

var (
	ErrNotFound         = errors.New("subscription not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrValidation       = errors.New("validation failed")
)
