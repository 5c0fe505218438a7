package get_provider_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/pawcare/PetCare-BookingService/internal/domain"
	"github.com/pawcare/PetCare-BookingService/internal/service/bookings/models"
)

// BookingItem is one booking on the provider calendar
type BookingItem struct {
	ID              int64   `json:"id"`
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
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

// BookingListResponse HTTP response model
type BookingListResponse struct {
	Bookings []*BookingItem `json:"bookings"`
	Total    int            `json:"total"`
}

// ParseRequest builds the service request from the query string
func ParseRequest(providerID int64, query url.Values) (*models.GetProviderBookingsRequest, error) {
	req := &models.GetProviderBookingsRequest{ProviderID: providerID}

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate %q: %w", raw, err)
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate %q: %w", raw, err)
		}
		req.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if raw := query.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive %q: %w", raw, err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}

// FromServiceResponse converts the service listing into the HTTP model
func FromServiceResponse(resp *models.BookingListResponse) *BookingListResponse {
	items := make([]*BookingItem, len(resp.Bookings))
	for i, b := range resp.Bookings {
		items[i] = &BookingItem{
			ID:              b.ID,
			CustomerID:      b.CustomerID,
			ServiceID:       b.ServiceID,
			PetID:           b.PetID,
			BookingDate:     b.BookingDate.Format(domain.DateFormat),
			StartTime:       b.StartTime.String(),
			DurationMinutes: b.DurationMinutes,
			Status:          b.Status,
			ServiceName:     b.ServiceName,
			TotalAmount:     b.TotalAmount,
			Currency:        b.Currency,
			Notes:           b.Notes,
			CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		}
	}
	return &BookingListResponse{
		Bookings: items,
		Total:    resp.Total,
	}
}
