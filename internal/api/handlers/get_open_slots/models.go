package get_open_slots

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/pawcare/PetCare-BookingService/internal/domain"
	getOpenSlots "github.com/pawcare/PetCare-BookingService/internal/usecase/get_open_slots"
)

// SlotItem is one bookable start time
type SlotItem struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
}

// OpenSlotsResponse HTTP response model
type OpenSlotsResponse struct {
	ProviderID int64       `json:"providerId"`
	ServiceID  int64       `json:"serviceId"`
	Date       string      `json:"date"`
	Slots      []*SlotItem `json:"slots"`
}

// ParseRequest builds the use case request from the query string
func ParseRequest(providerID int64, query url.Values) (*getOpenSlots.Request, error) {
	serviceID, err := strconv.ParseInt(query.Get("serviceId"), 10, 64)
	if err != nil || serviceID <= 0 {
		return nil, fmt.Errorf("invalid serviceId %q", query.Get("serviceId"))
	}

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", query.Get("date"), err)
	}

	req := &getOpenSlots.Request{
		ProviderID: providerID,
		ServiceID:  serviceID,
		Date:       date,
	}

	if raw := query.Get("granularity"); raw != "" {
		granularity, err := strconv.Atoi(raw)
		if err != nil || granularity <= 0 {
			return nil, fmt.Errorf("invalid granularity %q", raw)
		}
		req.Granularity = granularity
	}

	return req, nil
}

// FromUseCaseResponse converts the use case response into the HTTP model
func FromUseCaseResponse(resp *getOpenSlots.Response) *OpenSlotsResponse {
	slots := make([]*SlotItem, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = &SlotItem{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
		}
	}
	return &OpenSlotsResponse{
		ProviderID: resp.ProviderID,
		ServiceID:  resp.ServiceID,
		Date:       resp.Date.Format(domain.DateFormat),
		Slots:      slots,
	}
}
