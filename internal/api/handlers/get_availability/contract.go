package get_availability

import (
	"context"

	"github.com/pawcare/PetCare-BookingService/internal/domain"
)

type AvailabilityService interface {
	GetAvailability(ctx context.Context, providerID int64) (*domain.ProviderAvailability, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
