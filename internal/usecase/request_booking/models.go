package request_booking

import (
	"time"

	"github.com/pawcare/PetCare-BookingService/pkg/types"
)

// Request is the booking request as seen by the scheduler
type Request struct {
	CustomerID int64
	ProviderID int64
	ServiceID  int64
	PetID      int64
	Date       time.Time        // booking date, time part ignored
	StartTime  types.TimeString // slot start, e.g. "10:00"
	Notes      *string
}

// Response is the created booking
type Response struct {
	ID         int64
	CustomerID int64
	ProviderID int64
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

	CreatedAt        time.Time
	LastTransitionAt time.Time
}
