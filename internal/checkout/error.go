package checkout

import "errors"

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrAlreadySubmitting = errors.New("order is already being submitted")
	ErrAlreadyPlaced     = errors.New("order already placed")
)
