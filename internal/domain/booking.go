package domain

import (
	"time"

	"github.com/pawcare/PetCare-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// Booking represents a scheduled appointment for a pet-care service
type Booking struct {
	ID         int64
	ProviderID int64
	CustomerID int64
	ServiceID  int64
	PetID      int64

	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Denormalized from the service catalog at booking time; catalog
	// changes never retroactively alter existing bookings
	ServiceName string
	TotalAmount float64
	Currency    string

	PaymentRef string
	Notes      *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt        time.Time
	LastTransitionAt time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if no further transition is legal
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted ||
		b.Status == StatusCancelled ||
		b.Status == StatusNoShow
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// ValidStatus reports whether s is one of the five known statuses
func ValidStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

// ProviderBookingsFilter narrows provider booking queries
type ProviderBookingsFilter struct {
	ProviderID      int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *BookingStatus
	IncludeInactive bool // include cancelled, completed and no-show bookings
}
