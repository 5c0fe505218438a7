package get_availability

import (
	"sort"
	"strings"
	"time"

	"github.com/pawcare/PetCare-BookingService/internal/domain"
)

// WindowModel is one open interval within a day
type WindowModel struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// ExceptionModel is a dated override; a nil window means closed
type ExceptionModel struct {
	Date   string       `json:"date"`
	Window *WindowModel `json:"window,omitempty"`
	Closed bool         `json:"closed"`
}

// AvailabilityResponse HTTP response model. Weekly is keyed by
// lowercase weekday name; missing days are closed.
type AvailabilityResponse struct {
	ProviderID int64                   `json:"providerId"`
	Weekly     map[string]*WindowModel `json:"weekly"`
	Exceptions []*ExceptionModel       `json:"exceptions"`
	UpdatedAt  string                  `json:"updatedAt,omitempty"`
}

// FromDomain converts the availability snapshot into the HTTP model
func FromDomain(availability *domain.ProviderAvailability) *AvailabilityResponse {
	weekly := make(map[string]*WindowModel, len(availability.Weekly))
	for weekday, window := range availability.Weekly {
		if window == nil {
			continue
		}
		weekly[strings.ToLower(weekday.String())] = &WindowModel{
			Open:  window.Open.String(),
			Close: window.Close.String(),
		}
	}

	exceptions := make([]*ExceptionModel, len(availability.Exceptions))
	for i, exc := range availability.Exceptions {
		model := &ExceptionModel{
			Date:   exc.Date.Format(domain.DateFormat),
			Closed: exc.Window == nil,
		}
		if exc.Window != nil {
			model.Window = &WindowModel{
				Open:  exc.Window.Open.String(),
				Close: exc.Window.Close.String(),
			}
		}
		exceptions[i] = model
	}
	sort.Slice(exceptions, func(i, j int) bool { return exceptions[i].Date < exceptions[j].Date })

	resp := &AvailabilityResponse{
		ProviderID: availability.ProviderID,
		Weekly:     weekly,
		Exceptions: exceptions,
	}
	if !availability.UpdatedAt.IsZero() {
		resp.UpdatedAt = availability.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}
