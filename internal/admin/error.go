package admin

import "errors"

var (
	ErrNotConfirmed    = errors.New("action not confirmed")
	ErrMessageNotFound = errors.New("message not found")
)
