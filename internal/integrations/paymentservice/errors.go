package paymentservice

import "errors"

var (
	// ErrPaymentNotFound is returned when no payment matches the ref
	ErrPaymentNotFound = errors.New("paymentservice client: payment not found")

	// ErrInternal is returned on client-side failures
	ErrInternal = errors.New("paymentservice client: internal error")

	// ErrInvalidResponse is returned when the payment service replies
	// with an unexpected status or payload
	ErrInvalidResponse = errors.New("paymentservice client: invalid response")
)
