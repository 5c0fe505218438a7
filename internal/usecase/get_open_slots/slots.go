package get_open_slots

import (
	"time"

	"github.com/pawcare/PetCare-BookingService/internal/domain"
	"github.com/pawcare/PetCare-BookingService/pkg/interval"
	"github.com/pawcare/PetCare-BookingService/pkg/types"
)

// buildOpenSlots enumerates slot candidates for every open window and
// drops any candidate overlapping an active booking. For same-day
// requests, candidates violating the minimum notice are also dropped.
func buildOpenSlots(
	windows []domain.DayWindow,
	durationMinutes int,
	granularityMinutes int,
	bookings []*domain.Booking,
	requestDate time.Time,
	now time.Time,
	minNoticeMinutes int,
) ([]domain.OpenSlot, error) {
	if isDateInPast(requestDate, now) {
		return []domain.OpenSlot{}, nil
	}

	var minAllowedTime types.TimeString
	sameDay := isSameDay(requestDate, now)
	if sameDay {
		var err error
		minAllowedTime, err = types.NewTimeString(now).AddMinutes(minNoticeMinutes)
		if err != nil {
			// notice window reaches past midnight: nothing today qualifies
			return []domain.OpenSlot{}, nil
		}
	}

	slots := make([]domain.OpenSlot, 0)

	for _, window := range windows {
		candidates, err := interval.EnumerateSlots(window.Open, window.Close, durationMinutes, granularityMinutes)
		if err != nil {
			return nil, err
		}

		for _, start := range candidates {
			if sameDay && start.IsBefore(minAllowedTime) {
				continue
			}

			taken, err := overlapsActiveBooking(start, durationMinutes, bookings)
			if err != nil {
				return nil, err
			}
			if taken {
				continue
			}

			slots = append(slots, domain.OpenSlot{
				StartTime:       start,
				DurationMinutes: durationMinutes,
			})
		}
	}

	return slots, nil
}

func overlapsActiveBooking(start types.TimeString, durationMinutes int, bookings []*domain.Booking) (bool, error) {
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}

		overlaps, err := interval.Overlaps(start, durationMinutes, b.StartTime, b.DurationMinutes)
		if err != nil {
			return false, err
		}
		if overlaps {
			return true, nil
		}
	}

	return false, nil
}

func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
