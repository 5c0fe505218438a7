package request_booking

import "errors"

var (
	// ErrProviderNotFound is returned when the provider has no declared
	// availability, which for the scheduler means the provider does not
	// take bookings
	ErrProviderNotFound = errors.New("request_booking: provider not found")

	// ErrServiceNotFound is returned when the catalog has no such service
	ErrServiceNotFound = errors.New("request_booking: service not found")

	// ErrServiceInactive is returned when the service is not bookable
	ErrServiceInactive = errors.New("request_booking: service is not active")

	// ErrServiceProviderMismatch is returned when the service belongs
	// to a different provider than the one requested
	ErrServiceProviderMismatch = errors.New("request_booking: service does not belong to this provider")

	// ErrOutsideAvailability is returned when the requested interval is
	// not contained in any open window for the date
	ErrOutsideAvailability = errors.New("request_booking: requested time is outside provider availability")

	// ErrSlotConflict is returned when the interval overlaps an
	// existing pending or confirmed booking
	ErrSlotConflict = errors.New("request_booking: slot conflicts with an existing booking")

	// ErrSlotMisaligned is returned when the start time does not align
	// to the slot granularity within the open window
	ErrSlotMisaligned = errors.New("request_booking: start time is not aligned to the slot granularity")

	// ErrInvalidDate is returned for past or malformed booking dates
	ErrInvalidDate = errors.New("request_booking: invalid booking date")

	// ErrTooLateToBook is returned when the request violates the
	// minimum booking notice for same-day bookings
	ErrTooLateToBook = errors.New("request_booking: too late to book this slot")

	// ErrInvalidInput is returned for malformed request data
	ErrInvalidInput = errors.New("request_booking: invalid input data")

	// ErrInternal is returned on unexpected internal failures
	ErrInternal = errors.New("request_booking: internal error")
)
