package domain

import "github.com/pawcare/PetCare-BookingService/pkg/types"

// OpenSlot represents a bookable start time for a provider on a date
type OpenSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
}
