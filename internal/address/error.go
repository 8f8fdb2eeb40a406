package address

import "errors"

var (
	ErrAddressNotFound = errors.New("address not found")
	ErrNoDefault       = errors.New("no default address")
)
