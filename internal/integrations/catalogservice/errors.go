package catalogservice

import "errors"

var (
	// ErrServiceNotFound is returned when the catalog has no such service
	ErrServiceNotFound = errors.New("catalogservice client: service not found")

	// ErrServiceInactive is returned when the service is no longer bookable
	ErrServiceInactive = errors.New("catalogservice client: service is not active")

	// ErrInternal is returned on client-side failures
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse is returned when the catalog replies with an
	// unexpected status or payload
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")
)
