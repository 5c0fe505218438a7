package request_booking

import (
	"context"
	"time"

	"github.com/pawcare/PetCare-BookingService/internal/domain"
	"github.com/pawcare/PetCare-BookingService/internal/integrations/catalogservice"
)

// BookingRepository is the bookings storage surface the use case needs
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error)
	UpdatePaymentRef(ctx context.Context, bookingID int64, paymentRef string) error
}

// AvailabilityRepository reads provider working hours
type AvailabilityRepository interface {
	GetByProviderID(ctx context.Context, providerID int64) (*domain.ProviderAvailability, error)
}

// CatalogClient fetches service definitions; duration and price are
// copied onto the booking and never re-read afterwards
type CatalogClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
}

// PaymentClient registers the payment record for a new booking
type PaymentClient interface {
	CreatePayment(ctx context.Context, bookingID int64, amount float64, currency string) (string, error)
}

// TransactionManager runs the conflict check and insert atomically
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider supplies the current time (swappable in tests)
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging surface the use case needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production time source
type RealTimeProvider struct{}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
