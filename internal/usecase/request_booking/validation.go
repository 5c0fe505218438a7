package request_booking

import (
	"fmt"
	"time"

	"github.com/pawcare/PetCare-BookingService/internal/domain"
	"github.com/pawcare/PetCare-BookingService/pkg/interval"
	"github.com/pawcare/PetCare-BookingService/pkg/types"
)

func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.PetID <= 0 {
		return fmt.Errorf("%w: petID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate rejects bookings for dates in the past
func validateDate(bookingDate time.Time, now time.Time) error {
	if isDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}
	return nil
}

// validateBookingNotice enforces the minimum notice for same-day
// bookings; other dates need no check
func validateBookingNotice(
	bookingDate time.Time,
	startTime types.TimeString,
	now time.Time,
	minNoticeMinutes int,
) error {
	if !isSameDay(bookingDate, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minNoticeMinutes)
	if err != nil {
		// notice window crosses midnight: no same-day slot can satisfy it
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}

	if startTime.IsBefore(minAllowedTime) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}

	return nil
}

// findContainingWindow returns the open window fully containing
// [start, start+duration), if any
func findContainingWindow(windows []domain.DayWindow, start types.TimeString, durationMinutes int) *domain.DayWindow {
	for i := range windows {
		ok, err := interval.WithinWindow(start, durationMinutes, windows[i].Open, windows[i].Close)
		if err == nil && ok {
			return &windows[i]
		}
	}
	return nil
}

// validateAlignment checks that start sits on the slot grid anchored
// at the window's open time
func validateAlignment(window *domain.DayWindow, start types.TimeString, granularityMinutes int) error {
	openMin, err := window.Open.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	startMin, err := start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if (startMin-openMin)%granularityMinutes != 0 {
		return fmt.Errorf("%w: start=%s grid=%d minutes from %s", ErrSlotMisaligned, start, granularityMinutes, window.Open)
	}

	return nil
}

// hasConflict reports whether the requested interval overlaps any
// active booking in the list
func hasConflict(start types.TimeString, durationMinutes int, bookings []*domain.Booking) (bool, error) {
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
