package domain

// Default scheduling values
const (
	DefaultSlotGranularityMinutes  = 30
	DefaultMinBookingNoticeMinutes = 60 // 1 hour
	DefaultCancellationReason      = "cancelled by customer"
)

// Business validation constants
const (
	MinDurationMinutes          = 5
	MaxDurationMinutes          = 480 // 8 hours
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses lists statuses that no longer occupy a slot.
// Used when counting conflicts and listing open slots.
var InactiveStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// ActiveStatuses lists statuses that hold a slot against new bookings
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
