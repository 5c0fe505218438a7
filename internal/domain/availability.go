package domain

import (
	"time"

	"github.com/pawcare/PetCare-BookingService/pkg/interval"
	"github.com/pawcare/PetCare-BookingService/pkg/types"
)

// DayWindow is a contiguous open period within a single day
type DayWindow struct {
	Open  types.TimeString
	Close types.TimeString
}

// Valid reports whether the window is well-formed (open < close)
func (w DayWindow) Valid() bool {
	return w.Open.Validate() == nil && w.Close.Validate() == nil && w.Open.IsBefore(w.Close)
}

// DateException overrides the weekly schedule for one calendar date.
// A nil Window means the provider is closed that date regardless of
// the weekly rule.
type DateException struct {
	Date   time.Time
	Window *DayWindow
}

// ProviderAvailability is a provider's declared working hours: one
// optional window per weekday plus dated exceptions. It is a read
// snapshot; mutations go through the availability service and only
// affect bookings created afterward.
type ProviderAvailability struct {
	ProviderID int64
	Weekly     map[time.Weekday]*DayWindow
	Exceptions []DateException
	UpdatedAt  time.Time
}

// ResolveWindows returns the open windows for a calendar date. An
// exact-date exception wins over the weekly rule. At most one window
// is returned in v1; the slice form leaves room for split shifts.
func (a *ProviderAvailability) ResolveWindows(date time.Time) []DayWindow {
	for _, exc := range a.Exceptions {
		if sameDate(exc.Date, date) {
			if exc.Window == nil {
				return []DayWindow{}
			}
			return []DayWindow{*exc.Window}
		}
	}

	if w := a.Weekly[date.Weekday()]; w != nil {
		return []DayWindow{*w}
	}

	return []DayWindow{}
}

// IsOpenAt reports whether the interval [start, start+duration) is
// fully contained in an open window on the given date.
func (a *ProviderAvailability) IsOpenAt(date time.Time, start types.TimeString, durationMinutes int) bool {
	for _, w := range a.ResolveWindows(date) {
		ok, err := interval.WithinWindow(start, durationMinutes, w.Open, w.Close)
		if err == nil && ok {
			return true
		}
	}
	return false
}

func sameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
