package update_availability

import (
	"context"
	"time"

	"github.com/pawcare/PetCare-BookingService/internal/domain"
)

type AvailabilityService interface {
	SetWeeklyWindow(ctx context.Context, providerID int64, weekday time.Weekday, window *domain.DayWindow, actor domain.Actor) error
	AddException(ctx context.Context, providerID int64, exc domain.DateException, actor domain.Actor) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
