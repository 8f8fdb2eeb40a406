package catalog

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrUnknownSortKey  = errors.New("unknown sort key")
)
