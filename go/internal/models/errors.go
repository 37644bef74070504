package models

import "errors"

var (
	// ErrValidation is returned when malformed input reaches a write path.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrLocked is returned when a pick write arrives after picks have locked.
	ErrLocked = errors.New("picks are locked")

	// ErrUpstreamUnavailable is returned when the live-score feed cannot be read.
	ErrUpstreamUnavailable = errors.New("score feed unavailable")
)
