package availability

import "errors"

var (
	// ErrAvailabilityNotFound is returned when the provider has no
	// declared schedule
	ErrAvailabilityNotFound = errors.New("availability.service: provider availability not found")

	// ErrForbidden is returned when the actor is neither the owning
	// provider nor an admin
	ErrForbidden = errors.New("availability.service: only the owning provider or an admin may change the schedule")

	// ErrInvalidWindow is returned for malformed windows (open >= close
	// or bad time values)
	ErrInvalidWindow = errors.New("availability.service: invalid availability window")

	// ErrInvalidInput is returned for malformed request data
	ErrInvalidInput = errors.New("availability.service: invalid input data")

	// ErrInternal is returned on unexpected internal failures
	ErrInternal = errors.New("availability.service: internal error")
)
