package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by services, repositories and the HTTP layer.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrVehicleUnavailable is returned when a contract is created for a vehicle that
	// is no longer available. It matches ErrInvalidInput.
	ErrVehicleUnavailable = fmt.Errorf("%w: vehicle is not available", ErrInvalidInput)
)
