package get_provider_bookings

import (
	"context"

	"github.com/pawcare/PetCare-BookingService/internal/domain"
	"github.com/pawcare/PetCare-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	GetProviderBookings(ctx context.Context, req *models.GetProviderBookingsRequest, actor domain.Actor) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
