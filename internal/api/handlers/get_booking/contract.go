package get_booking

import (
	"context"

	"github.com/pawcare/PetCare-BookingService/internal/domain"
	"github.com/pawcare/PetCare-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	GetByID(ctx context.Context, bookingID int64, actor domain.Actor) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
