package availability

import (
	"context"
	"time"

	"github.com/pawcare/PetCare-BookingService/internal/domain"
)

// AvailabilityRepository is the storage surface the service needs
type AvailabilityRepository interface {
	GetByProviderID(ctx context.Context, providerID int64) (*domain.ProviderAvailability, error)
	SetWeeklyWindow(ctx context.Context, providerID int64, weekday time.Weekday, window *domain.DayWindow) error
	AddException(ctx context.Context, providerID int64, exc domain.DateException) error
}

// Logger is the logging surface the service needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
