package update_availability

import (
	"fmt"
	"strings"
	"time"

	"github.com/pawcare/PetCare-BookingService/internal/domain"
	"github.com/pawcare/PetCare-BookingService/pkg/types"
)

// WindowModel is one open interval within a day
type WindowModel struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// SetWeeklyWindowRequest declares the recurring hours for one weekday.
// Omitting the window (or setting closed) marks the day closed.
type SetWeeklyWindowRequest struct {
	Weekday string       `json:"weekday"`
	Window  *WindowModel `json:"window,omitempty"`
	Closed  bool         `json:"closed,omitempty"`
}

// AddExceptionRequest declares a dated override: special hours or a
// full-day blackout for one calendar date.
type AddExceptionRequest struct {
	Date   string       `json:"date"`
	Window *WindowModel `json:"window,omitempty"`
	Closed bool         `json:"closed,omitempty"`
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func (m *WindowModel) toDomain() (*domain.DayWindow, error) {
	open, err := types.NewTimeStringFromString(m.Open)
	if err != nil {
		return nil, fmt.Errorf("invalid open time: %w", err)
	}

	closeAt, err := types.NewTimeStringFromString(m.Close)
	if err != nil {
		return nil, fmt.Errorf("invalid close time: %w", err)
	}

	return &domain.DayWindow{Open: open, Close: closeAt}, nil
}

// ToWeekday parses the weekday name (case-insensitive)
func (r *SetWeeklyWindowRequest) ToWeekday() (time.Weekday, error) {
	weekday, ok := weekdays[strings.ToLower(r.Weekday)]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", r.Weekday)
	}
	return weekday, nil
}

// ToWindow resolves the declared window; nil means closed
func (r *SetWeeklyWindowRequest) ToWindow() (*domain.DayWindow, error) {
	if r.Closed || r.Window == nil {
		return nil, nil
	}
	return r.Window.toDomain()
}

// ToDomain converts the request into the domain exception
func (r *AddExceptionRequest) ToDomain() (domain.DateException, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return domain.DateException{}, fmt.Errorf("invalid date %q: %w", r.Date, err)
	}

	exc := domain.DateException{Date: date}
	if !r.Closed && r.Window != nil {
		window, err := r.Window.toDomain()
		if err != nil {
			return domain.DateException{}, err
		}
		exc.Window = window
	}
	return exc, nil
}
