package get_booking

import (
	"time"

	"github.com/pawcare/PetCare-BookingService/internal/domain"
	"github.com/pawcare/PetCare-BookingService/internal/service/bookings/models"
)

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                 int64   `json:"id"`
	ProviderID         int64   `json:"providerId"`
	CustomerID         int64   `json:"customerId"`
	ServiceID          int64   `json:"serviceId"`
	PetID              int64   `json:"petId"`
	BookingDate        string  `json:"bookingDate"`
	StartTime          string  `json:"startTime"`
	DurationMinutes    int     `json:"durationMinutes"`
	Status             string  `json:"status"`
	ServiceName        string  `json:"serviceName"`
	TotalAmount        float64 `json:"totalAmount"`
	Currency           string  `json:"currency"`
	PaymentRef         string  `json:"paymentRef,omitempty"`
	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	LastTransitionAt   string  `json:"lastTransitionAt"`
	CreatedAt          string  `json:"createdAt"`
}

// FromServiceResponse converts the service snapshot into the HTTP model
func FromServiceResponse(resp *models.BookingResponse) *BookingResponse {
	out := &BookingResponse{
		ID:                 resp.ID,
		ProviderID:         resp.ProviderID,
		CustomerID:         resp.CustomerID,
		ServiceID:          resp.ServiceID,
		PetID:              resp.PetID,
		BookingDate:        resp.BookingDate.Format(domain.DateFormat),
		StartTime:          resp.StartTime.String(),
		DurationMinutes:    resp.DurationMinutes,
		Status:             resp.Status,
		ServiceName:        resp.ServiceName,
		TotalAmount:        resp.TotalAmount,
		Currency:           resp.Currency,
		PaymentRef:         resp.PaymentRef,
		Notes:              resp.Notes,
		CancellationReason: resp.CancellationReason,
		LastTransitionAt:   resp.LastTransitionAt.Format(time.RFC3339),
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
	}

	if resp.CancelledAt != nil {
		cancelled := resp.CancelledAt.Format(time.RFC3339)
		out.CancelledAt = &cancelled
	}

	return out
}
