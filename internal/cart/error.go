package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidProduct = errors.New("invalid product")

	// -- Persistence --
	// ErrNotPersisted is a warning: the in-memory cart changed but the copy in
	// durable storage did not.
	ErrNotPersisted = errors.New("cart change not saved")
)
