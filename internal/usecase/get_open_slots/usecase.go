package get_open_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/pawcare/PetCare-BookingService/internal/domain"
	availabilityRepo "github.com/pawcare/PetCare-BookingService/internal/infra/storage/availability"
	catalogClient "github.com/pawcare/PetCare-BookingService/internal/integrations/catalogservice"
)

// UseCase lists the bookable start times for a provider, service and
// date. Results are never cached: a repeat call with no intervening
// writes returns the same sequence, and a slot taken by a concurrent
// booking disappears on the next call.
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	catalog          CatalogClient
	timeProvider     TimeProvider
	granularity      int
	minNoticeMinutes int
	logger           Logger
}

// NewUseCase creates the open-slots use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	catalog CatalogClient,
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
		timeProvider:     &RealTimeProvider{},
		granularity:      granularityMinutes,
		minNoticeMinutes: minNoticeMinutes,
		logger:           logger,
	}
}

// Execute runs the open-slots flow
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetOpenSlots: provider=%d, service=%d, date=%s",
		req.ProviderID, req.ServiceID, req.Date.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetOpenSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	service, err := uc.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		switch {
		case errors.Is(err, catalogClient.ErrServiceNotFound):
			uc.logger.Warn("GetOpenSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		case errors.Is(err, catalogClient.ErrServiceInactive):
			uc.logger.Warn("GetOpenSlots: service id=%d is inactive", req.ServiceID)
			return nil, ErrServiceInactive
		default:
			uc.logger.Error("GetOpenSlots: failed to get service id=%d: %v", req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
	}

	if service.ProviderID != req.ProviderID {
		uc.logger.Warn("GetOpenSlots: service id=%d belongs to provider=%d, not provider=%d",
			req.ServiceID, service.ProviderID, req.ProviderID)
		return nil, ErrServiceProviderMismatch
	}

	availability, err := uc.availabilityRepo.GetByProviderID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			uc.logger.Warn("GetOpenSlots: provider id=%d has no availability", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("GetOpenSlots: failed to get availability for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	windows := availability.ResolveWindows(req.Date)
	if len(windows) == 0 {
		uc.logger.Info("GetOpenSlots: provider=%d closed on %s", req.ProviderID, req.Date.Format(domain.DateFormat))
		return &Response{
			ProviderID: req.ProviderID,
			ServiceID:  req.ServiceID,
			Date:       req.Date,
			Slots:      []domain.OpenSlot{},
		}, nil
	}

	filter := domain.ProviderBookingsFilter{
		ProviderID: req.ProviderID,
		StartDate:  &req.Date,
		EndDate:    &req.Date,
	}

	bookings, err := uc.bookingRepo.GetByProviderWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetOpenSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	granularity := req.Granularity
	if granularity <= 0 {
		granularity = uc.granularity
	}

	slots, err := buildOpenSlots(
		windows,
		service.DurationMinutes,
		granularity,
		bookings,
		req.Date,
		now,
		uc.minNoticeMinutes,
	)
	if err != nil {
		uc.logger.Error("GetOpenSlots: failed to build slots: %v", err)
		return nil, fmt.Errorf("%w: failed to build slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetOpenSlots: %d open slots for provider=%d, service=%d, date=%s",
		len(slots), req.ProviderID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		ProviderID: req.ProviderID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Slots:      slots,
	}, nil
}

func validateRequest(req *Request) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
