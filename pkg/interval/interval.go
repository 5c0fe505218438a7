// Package interval contains pure helpers for half-open time-of-day
// intervals [start, start+duration). Touching endpoints never count as
// overlap, so back-to-back appointments are legal.
package interval

import (
	"github.com/pawcare/PetCare-BookingService/pkg/types"
)

// Overlaps reports whether [aStart, aStart+aDuration) and
// [bStart, bStart+bDuration) share at least one instant.
func Overlaps(aStart types.TimeString, aDuration int, bStart types.TimeString, bDuration int) (bool, error) {
	aEnd, err := aStart.AddMinutes(aDuration)
	if err != nil {
		return false, err
	}
	bEnd, err := bStart.AddMinutes(bDuration)
	if err != nil {
		return false, err
	}

	// Strict inequalities: aEnd == bStart (or the reverse) is not overlap.
	return aStart.IsBefore(bEnd) && bStart.IsBefore(aEnd), nil
}

// WithinWindow reports whether [start, start+duration) fits entirely
// inside [open, close].
func WithinWindow(start types.TimeString, duration int, open, close types.TimeString) (bool, error) {
	if start.IsBefore(open) {
		return false, nil
	}

	end, err := start.AddMinutes(duration)
	if err != nil {
		// start+duration crosses midnight, so it cannot fit any window
		return false, nil
	}

	return !end.IsAfter(close), nil
}

// EnumerateSlots returns every candidate start time inside [open, close]
// stepped by granularity minutes, such that a slot of the given duration
// still ends no later than close. The sequence is finite and ordered.
func EnumerateSlots(open, close types.TimeString, duration, granularity int) ([]types.TimeString, error) {
	if duration <= 0 || granularity <= 0 {
		return []types.TimeString{}, nil
	}

	slots := make([]types.TimeString, 0)
	current := open

	for current.IsBefore(close) {
		end, err := current.AddMinutes(duration)
		if err != nil {
			break
		}
		if end.IsAfter(close) {
			break
		}

		slots = append(slots, current)

		next, err := current.AddMinutes(granularity)
		if err != nil {
			break
		}
		current = next
	}

	return slots, nil
}
