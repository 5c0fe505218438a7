package get_open_slots

import "errors"

var (
	// ErrProviderNotFound is returned when the provider has no declared
	// availability
	ErrProviderNotFound = errors.New("get_open_slots: provider not found")

	// ErrServiceNotFound is returned when the catalog has no such service
	ErrServiceNotFound = errors.New("get_open_slots: service not found")

	// ErrServiceInactive is returned when the service is not bookable
	ErrServiceInactive = errors.New("get_open_slots: service is not active")

	// ErrServiceProviderMismatch is returned when the service belongs
	// to a different provider
	ErrServiceProviderMismatch = errors.New("get_open_slots: service does not belong to this provider")

	// ErrInvalidInput is returned for malformed request data
	ErrInvalidInput = errors.New("get_open_slots: invalid input data")

	// ErrInternal is returned on unexpected internal failures
	ErrInternal = errors.New("get_open_slots: internal error")
)
