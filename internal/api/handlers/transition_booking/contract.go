package transition_booking

import (
	"context"

	"github.com/pawcare/PetCare-BookingService/internal/domain"
	"github.com/pawcare/PetCare-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	Confirm(ctx context.Context, bookingID int64, actor domain.Actor) (*models.BookingResponse, error)
	Cancel(ctx context.Context, bookingID int64, actor domain.Actor, reason *string) (*models.BookingResponse, error)
	Complete(ctx context.Context, bookingID int64, actor domain.Actor) (*models.BookingResponse, error)
	MarkNoShow(ctx context.Context, bookingID int64, actor domain.Actor, reason string) (*models.BookingResponse, error)
	AdminOverride(ctx context.Context, bookingID int64, action domain.Action, adminID int64, reason string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
