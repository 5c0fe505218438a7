package models

import (
	"fmt"
	"time"

	"github.com/pawcare/PetCare-BookingService/internal/domain"
	"github.com/pawcare/PetCare-BookingService/pkg/types"
)

// BookingResponse is a read snapshot of a booking
type BookingResponse struct {
	ID         int64
	ProviderID int64
	CustomerID int64
	ServiceID  int64
	PetID      int64

	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string

	ServiceName string
	TotalAmount float64
	Currency    string
	PaymentRef  string
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt        time.Time
	LastTransitionAt time.Time
}

// BookingListResponse is a finite list projection
type BookingListResponse struct {
	Bookings []*BookingResponse
	Total    int
}

// GetCustomerBookingsRequest filters a customer's booking history
type GetCustomerBookingsRequest struct {
	CustomerID int64
	Status     *string
}

// GetProviderBookingsRequest filters a provider's bookings
type GetProviderBookingsRequest struct {
	ProviderID      int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *string
	IncludeInactive bool
}

// ToDomainFilter converts the request into the storage filter
func (r *GetProviderBookingsRequest) ToDomainFilter() (domain.ProviderBookingsFilter, error) {
	filter := domain.ProviderBookingsFilter{
		ProviderID:      r.ProviderID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return domain.ProviderBookingsFilter{}, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// ToDomainBookingStatus parses a status string into the closed enum
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	if !domain.ValidStatus(status) {
		return "", fmt.Errorf("unknown booking status %q", s)
	}
	return status, nil
}

// FromDomainBooking converts a domain booking into the read snapshot
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:                 b.ID,
		ProviderID:         b.ProviderID,
		CustomerID:         b.CustomerID,
		ServiceID:          b.ServiceID,
		PetID:              b.PetID,
		BookingDate:        b.BookingDate,
		StartTime:          b.StartTime,
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		ServiceName:        b.ServiceName,
		TotalAmount:        b.TotalAmount,
		Currency:           b.Currency,
		PaymentRef:         b.PaymentRef,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CancelledAt:        b.CancelledAt,
		CreatedAt:          b.CreatedAt,
		LastTransitionAt:   b.LastTransitionAt,
	}
}

// FromDomainBookingList converts a list of domain bookings
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]*BookingResponse, len(bookings))
	for i, b := range bookings {
		result[i] = FromDomainBooking(b)
	}
	return &BookingListResponse{
		Bookings: result,
		Total:    len(result),
	}
}
