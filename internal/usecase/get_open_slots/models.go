package get_open_slots

import (
	"time"

	"github.com/pawcare/PetCare-BookingService/internal/domain"
)

// Request asks for the bookable start times for one provider, service
// and date. Zero Granularity falls back to the configured default.
type Request struct {
	ProviderID  int64
	ServiceID   int64
	Date        time.Time
	Granularity int
}

// Response carries the open slots, recomputed fresh on every call so
// concurrent bookings elsewhere are always reflected
type Response struct {
	ProviderID int64
	ServiceID  int64
	Date       time.Time
	Slots      []domain.OpenSlot
}
