package geo

import "errors"

var (
	ErrNoResult      = errors.New("no place found for that search")
	ErrNotReady      = errors.New("map is not ready")
	ErrInitTimeout   = errors.New("map service did not become ready in time")
	ErrNotConfigured = errors.New("map service is not configured")
)

var ErrNothingPicked = errors.New("no location picked yet")
