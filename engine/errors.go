package engine

import (
	"errors"

	"kampung-service-server/store"
)

var (
	// ErrNotFound is returned when an operation references an unknown booking id
	ErrNotFound = store.ErrBookingNotFound

	// ErrInvalidTransition is returned when a status transition is not legal
	// from the booking's current state. The record is left unchanged.
	ErrInvalidTransition = errors.New("invalid booking status transition")

	// ErrInvalidService is returned when a booking is created against a
	// service that is not active
	ErrInvalidService = errors.New("service is not active")
)
