package request_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/pawcare/PetCare-BookingService/internal/domain"
	availabilityRepo "github.com/pawcare/PetCare-BookingService/internal/infra/storage/availability"
	catalogClient "github.com/pawcare/PetCare-BookingService/internal/integrations/catalogservice"
)

// UseCase turns a customer's slot request into a pending booking.
// The availability containment check, the conflict check against
// existing active bookings and the insert run inside one serializable
// transaction with the provider's same-date bookings locked, so two
// racing requests for overlapping slots can never both be accepted.
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	catalog          CatalogClient
	payments         PaymentClient
	txManager        TransactionManager
	timeProvider     TimeProvider
	granularity      int
	minNoticeMinutes int
	logger           Logger
}

// NewUseCase creates the booking request use case. Zero granularity or
// notice fall back to the domain defaults.
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	catalog CatalogClient,
	payments PaymentClient,
	txManager TransactionManager,
	granularityMinutes int,
	minNoticeMinutes int,
	logger Logger,
) *UseCase {
	if granularityMinutes <= 0 {
		granularityMinutes = domain.DefaultSlotGranularityMinutes
	}
	if minNoticeMinutes < 0 {
		minNoticeMinutes = domain.DefaultMinBookingNoticeMinutes
	}

	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		catalog:          catalog,
		payments:         payments,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		granularity:      granularityMinutes,
		minNoticeMinutes: minNoticeMinutes,
		logger:           logger,
	}
}

// Execute runs the booking request flow
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RequestBooking: customer=%d, provider=%d, service=%d, pet=%d, date=%s, time=%s",
		req.CustomerID, req.ProviderID, req.ServiceID, req.PetID, req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RequestBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("RequestBooking: date validation failed: %v", err)
		return nil, err
	}

	// Service duration and price are captured here, once. Later catalog
	// changes never touch this booking.
	service, err := uc.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		switch {
		case errors.Is(err, catalogClient.ErrServiceNotFound):
			uc.logger.Warn("RequestBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		case errors.Is(err, catalogClient.ErrServiceInactive):
			uc.logger.Warn("RequestBooking: service id=%d is inactive", req.ServiceID)
			return nil, ErrServiceInactive
		default:
			uc.logger.Error("RequestBooking: failed to get service id=%d: %v", req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
	}

	if service.ProviderID != req.ProviderID {
		uc.logger.Warn("RequestBooking: service id=%d belongs to provider=%d, not provider=%d",
			req.ServiceID, service.ProviderID, req.ProviderID)
		return nil, ErrServiceProviderMismatch
	}

	if err := validateBookingNotice(req.Date, req.StartTime, now, uc.minNoticeMinutes); err != nil {
		uc.logger.Warn("RequestBooking: notice validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		availability, err := uc.availabilityRepo.GetByProviderID(txCtx, req.ProviderID)
		if err != nil {
			if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
				uc.logger.Warn("RequestBooking: provider id=%d has no availability", req.ProviderID)
				return ErrProviderNotFound
			}
			uc.logger.Error("RequestBooking: failed to get availability for provider=%d: %v", req.ProviderID, err)
			return fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
		}

		windows := availability.ResolveWindows(req.Date)
		window := findContainingWindow(windows, req.StartTime, service.DurationMinutes)
		if window == nil {
			uc.logger.Warn("RequestBooking: provider=%d not open at %s %s for %d minutes",
				req.ProviderID, req.Date.Format(domain.DateFormat), req.StartTime, service.DurationMinutes)
			return ErrOutsideAvailability
		}

		if err := validateAlignment(window, req.StartTime, uc.granularity); err != nil {
			uc.logger.Warn("RequestBooking: alignment check failed: %v", err)
			return err
		}

		// Locks the provider's active bookings for the date (FOR UPDATE),
		// making the overlap check and the insert below one atomic unit
		filter := domain.ProviderBookingsFilter{
			ProviderID: req.ProviderID,
			StartDate:  &req.Date,
			EndDate:    &req.Date,
		}

		bookings, err := uc.bookingRepo.GetByProviderWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("RequestBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		conflict, err := hasConflict(req.StartTime, service.DurationMinutes, bookings)
		if err != nil {
			uc.logger.Error("RequestBooking: conflict check failed: %v", err)
			return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}
		if conflict {
			uc.logger.Warn("RequestBooking: slot %s (%d min) conflicts for provider=%d on %s",
				req.StartTime, service.DurationMinutes, req.ProviderID, req.Date.Format(domain.DateFormat))
			return ErrSlotConflict
		}

		booking := &domain.Booking{
			ProviderID:      req.ProviderID,
			CustomerID:      req.CustomerID,
			ServiceID:       req.ServiceID,
			PetID:           req.PetID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusPending,
			ServiceName:     service.Name,
			TotalAmount:     service.Price,
			Currency:        service.Currency,
			Notes:           req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("RequestBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RequestBooking: successfully created booking id=%d", result.ID)

	// The payment record is best-effort at creation time: the booking
	// stands even when the payment service is down, and the missing ref
	// shows up in reconciliation.
	paymentRef, err := uc.payments.CreatePayment(ctx, result.ID, result.TotalAmount, result.Currency)
	if err != nil {
		uc.logger.Error("RequestBooking: failed to create payment record for booking id=%d: %v", result.ID, err)
	} else {
		if err := uc.bookingRepo.UpdatePaymentRef(ctx, result.ID, paymentRef); err != nil {
			uc.logger.Error("RequestBooking: failed to store payment ref for booking id=%d: %v", result.ID, err)
		} else {
			result.PaymentRef = paymentRef
		}
	}

	return &Response{
		ID:               result.ID,
		CustomerID:       result.CustomerID,
		ProviderID:       result.ProviderID,
		ServiceID:        result.ServiceID,
		PetID:            result.PetID,
		BookingDate:      result.BookingDate,
		StartTime:        result.StartTime,
		DurationMinutes:  result.DurationMinutes,
		Status:           string(result.Status),
		ServiceName:      result.ServiceName,
		TotalAmount:      result.TotalAmount,
		Currency:         result.Currency,
		PaymentRef:       result.PaymentRef,
		Notes:            result.Notes,
		CreatedAt:        result.CreatedAt,
		LastTransitionAt: result.LastTransitionAt,
	}, nil
}
