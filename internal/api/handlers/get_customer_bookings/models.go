package get_customer_bookings

import (
	"time"

	"github.com/pawcare/PetCare-BookingService/internal/domain"
	"github.com/pawcare/PetCare-BookingService/internal/service/bookings/models"
)

// BookingItem is one booking in the history listing
type BookingItem struct {
	ID                 int64   `json:"id"`
	ProviderID         int64   `json:"providerId"`
	ServiceID          int64   `json:"serviceId"`
	PetID              int64   `json:"petId"`
	BookingDate        string  `json:"bookingDate"`
	StartTime          string  `json:"startTime"`
	DurationMinutes    int     `json:"durationMinutes"`
	Status             string  `json:"status"`
	ServiceName        string  `json:"serviceName"`
	TotalAmount        float64 `json:"totalAmount"`
	Currency           string  `json:"currency"`
	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CreatedAt          string  `json:"createdAt"`
}

// BookingListResponse HTTP response model
type BookingListResponse struct {
	Bookings []*BookingItem `json:"bookings"`
	Total    int            `json:"total"`
}

// FromServiceResponse converts the service listing into the HTTP model
func FromServiceResponse(resp *models.BookingListResponse) *BookingListResponse {
	items := make([]*BookingItem, len(resp.Bookings))
	for i, b := range resp.Bookings {
		items[i] = &BookingItem{
			ID:                 b.ID,
			ProviderID:         b.ProviderID,
			ServiceID:          b.ServiceID,
			PetID:              b.PetID,
			BookingDate:        b.BookingDate.Format(domain.DateFormat),
			StartTime:          b.StartTime.String(),
			DurationMinutes:    b.DurationMinutes,
			Status:             b.Status,
			ServiceName:        b.ServiceName,
			TotalAmount:        b.TotalAmount,
			Currency:           b.Currency,
			Notes:              b.Notes,
			CancellationReason: b.CancellationReason,
			CreatedAt:          b.CreatedAt.Format(time.RFC3339),
		}
	}
	return &BookingListResponse{
		Bookings: items,
		Total:    resp.Total,
	}
}
