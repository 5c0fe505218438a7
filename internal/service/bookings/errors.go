package bookings

import "errors"

var (
	// ErrBookingNotFound is returned when no booking matches the id
	ErrBookingNotFound = errors.New("bookings.service: booking not found")

	// ErrForbidden is returned when the actor does not own the booking
	// side required for the operation
	ErrForbidden = errors.New("bookings.service: actor is not allowed to perform this operation")

	// ErrInvalidTransition is returned when the requested action is not
	// legal from the booking's current status
	ErrInvalidTransition = errors.New("bookings.service: invalid transition")

	// ErrReasonRequired is returned when a provider or admin cancels or
	// marks a no-show without a reason
	ErrReasonRequired = errors.New("bookings.service: cancellation reason is required")

	// ErrStaleState is returned when a concurrent transition was
	// applied first; the caller should re-read and retry if still valid
	ErrStaleState = errors.New("bookings.service: booking changed concurrently, reload and retry")

	// ErrInvalidInput is returned for malformed request data
	ErrInvalidInput = errors.New("bookings.service: invalid input data")

	// ErrInternal is returned on unexpected internal failures
	ErrInternal = errors.New("bookings.service: internal error")
)
