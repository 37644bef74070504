package scoresync

import (
	"errors"

	"github.com/mcdev12/bowlpool/go/internal/models"
)

var (
	// ErrUpstreamUnavailable is returned by Run when the feed cannot be fetched or decoded.
	ErrUpstreamUnavailable = models.ErrUpstreamUnavailable

	// ErrNoMatch marks a contest with no feed event naming both of its teams.
	ErrNoMatch = errors.New("no matching feed event")

	// ErrNoConfidentMatch marks a contest with several candidate events and no way to pick one.
	ErrNoConfidentMatch = errors.New("no confident feed match")
)
