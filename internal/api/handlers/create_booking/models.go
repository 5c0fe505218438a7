package create_booking

import (
	"time"

	"github.com/pawcare/PetCare-BookingService/internal/domain"
	requestBooking "github.com/pawcare/PetCare-BookingService/internal/usecase/request_booking"
	"github.com/pawcare/PetCare-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ProviderID  int64   `json:"providerId"`
	ServiceID   int64   `json:"serviceId"`
	PetID       int64   `json:"petId"`
	BookingDate string  `json:"bookingDate"` // "2025-10-15"
	StartTime   string  `json:"startTime"`   // "10:00"
	Notes       *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	ProviderID      int64   `json:"providerId"`
	CustomerID      int64   `json:"customerId"`
	ServiceID       int64   `json:"serviceId"`
	PetID           int64   `json:"petId"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	TotalAmount     float64 `json:"totalAmount"`
	Currency        string  `json:"currency"`
	PaymentRef      string  `json:"paymentRef,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

// ToUseCaseRequest converts the HTTP request into the use case model.
// The customer id comes from the authenticated actor, never the body.
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*requestBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &requestBooking.Request{
		CustomerID: customerID,
		ProviderID: r.ProviderID,
		ServiceID:  r.ServiceID,
		PetID:      r.PetID,
		Date:       bookingDate,
		StartTime:  startTime,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse converts the use case response into the HTTP model
func FromUseCaseResponse(resp *requestBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		ProviderID:      resp.ProviderID,
		CustomerID:      resp.CustomerID,
		ServiceID:       resp.ServiceID,
		PetID:           resp.PetID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		TotalAmount:     resp.TotalAmount,
		Currency:        resp.Currency,
		PaymentRef:      resp.PaymentRef,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
