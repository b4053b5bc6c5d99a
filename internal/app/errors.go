package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnknownEvent = errors.New("unknown event key")
	ErrUnknownAward = errors.New("unknown award slot")
)
