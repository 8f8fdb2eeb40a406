package food

import "errors"

var (
	ErrMixedRestaurant    = errors.New("food cart already holds items from another restaurant")
	ErrUnpinnedCart       = errors.New("food cart holds items but its restaurant is unknown; clear it and start again")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrRestaurantClosed   = errors.New("restaurant is not taking orders")
	ErrItemUnavailable    = errors.New("menu item is not available")
	ErrEmptyCart          = errors.New("food cart is empty")
)
