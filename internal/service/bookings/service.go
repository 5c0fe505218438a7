package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/pawcare/PetCare-BookingService/internal/domain"
	bookingRepo "github.com/pawcare/PetCare-BookingService/internal/infra/storage/booking"
	"github.com/pawcare/PetCare-BookingService/internal/service/bookings/models"
)

// Service is the booking lifecycle orchestrator. It enforces actor
// ownership, delegates the legality of each transition to the pure
// domain state machine, persists the result with an optimistic status
// check, and queues the payment-status mirror write.
type Service struct {
	bookingRepo  BookingRepository
	outbox       OutboxRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService creates the booking lifecycle service
func NewService(bookingRepo BookingRepository, outbox OutboxRepository, logger Logger) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		outbox:       outbox,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Confirm moves a pending booking to confirmed (provider or admin)
func (s *Service) Confirm(ctx context.Context, bookingID int64, actor domain.Actor) (*models.BookingResponse, error) {
	return s.transition(ctx, bookingID, domain.ActionConfirm, actor, "")
}

// Cancel cancels a pending or confirmed booking. Customers may only
// cancel their own booking and get a default reason when none is
// given; providers and admins must supply one.
func (s *Service) Cancel(ctx context.Context, bookingID int64, actor domain.Actor, reason *string) (*models.BookingResponse, error) {
	r := ""
	if reason != nil {
		r = *reason
	}
	return s.transition(ctx, bookingID, domain.ActionCancel, actor, r)
}

// Complete marks a confirmed booking as completed (provider or admin)
func (s *Service) Complete(ctx context.Context, bookingID int64, actor domain.Actor) (*models.BookingResponse, error) {
	return s.transition(ctx, bookingID, domain.ActionComplete, actor, "")
}

// MarkNoShow marks a confirmed booking as a no-show (provider or
// admin, reason mandatory)
func (s *Service) MarkNoShow(ctx context.Context, bookingID int64, actor domain.Actor, reason string) (*models.BookingResponse, error) {
	return s.transition(ctx, bookingID, domain.ActionNoShow, actor, reason)
}

// AdminOverride applies any legal transition on behalf of an admin,
// bypassing ownership checks. Every override is logged for audit.
func (s *Service) AdminOverride(ctx context.Context, bookingID int64, action domain.Action, adminID int64, reason string) (*models.BookingResponse, error) {
	if !domain.ValidAction(action) {
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidInput, action)
	}

	actor := domain.Actor{ID: adminID, Role: domain.RoleAdmin}

	result, err := s.transition(ctx, bookingID, action, actor, reason)
	if err != nil {
		return nil, err
	}

	s.logger.Warn("AUDIT: admin=%d override booking=%d action=%s reason=%q", adminID, bookingID, action, reason)
	return result, nil
}

// transition is the single path every lifecycle change goes through
func (s *Service) transition(ctx context.Context, bookingID int64, action domain.Action, actor domain.Actor, reason string) (*models.BookingResponse, error) {
	s.logger.Info("Transition: booking=%d action=%s actor=%d role=%s", bookingID, action, actor.ID, actor.Role)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Transition: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Transition: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: transition - repository error: %v", ErrInternal, err)
	}

	if err := checkOwnership(booking, actor); err != nil {
		s.logger.Warn("Transition: access denied for actor=%d role=%s on booking id=%d", actor.ID, actor.Role, bookingID)
		return nil, err
	}

	updated, err := domain.Transition(*booking, action, actor, reason, s.timeProvider.Now())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrReasonRequired):
			s.logger.Warn("Transition: reason required for booking id=%d action=%s", bookingID, action)
			return nil, fmt.Errorf("%w: %v", ErrReasonRequired, err)
		case errors.Is(err, domain.ErrActorNotAllowed):
			s.logger.Warn("Transition: role %s not allowed for action=%s on booking id=%d", actor.Role, action, bookingID)
			return nil, fmt.Errorf("%w: %v", ErrForbidden, err)
		default:
			s.logger.Warn("Transition: illegal %s from status=%s for booking id=%d", action, booking.Status, bookingID)
			return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		}
	}

	if err := s.bookingRepo.UpdateStatus(ctx, &updated, booking.Status); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return nil, ErrBookingNotFound
		case errors.Is(err, bookingRepo.ErrStaleStatus):
			s.logger.Warn("Transition: stale status for booking id=%d, expected=%s", bookingID, booking.Status)
			return nil, ErrStaleState
		default:
			s.logger.Error("Transition: failed to persist %s for booking id=%d: %v", action, bookingID, err)
			return nil, fmt.Errorf("%w: transition - persist error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Transition: booking=%d %s -> %s by actor=%d", bookingID, booking.Status, updated.Status, actor.ID)

	s.enqueuePaymentSync(ctx, &updated)

	return models.FromDomainBooking(&updated), nil
}

// enqueuePaymentSync queues the payment mirror write when the new
// status needs one. The transition above is already committed and
// authoritative; an enqueue failure is surfaced for reconciliation,
// never propagated to the caller.
func (s *Service) enqueuePaymentSync(ctx context.Context, b *domain.Booking) {
	target, needed := domain.PaymentStatusFor(b.Status)
	if !needed {
		return
	}

	if b.PaymentRef == "" {
		s.logger.Error("PaymentSync: booking id=%d has no payment ref, status=%s left for reconciliation", b.ID, b.Status)
		return
	}

	event, err := s.outbox.Enqueue(ctx, b.ID, b.PaymentRef, target)
	if err != nil {
		s.logger.Error("PaymentSync: failed to enqueue for booking id=%d: %v", b.ID, err)
		return
	}

	s.logger.Info("PaymentSync: queued event=%s booking=%d target=%s", event.EventID, b.ID, target)
}

func checkOwnership(b *domain.Booking, actor domain.Actor) error {
	switch actor.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleCustomer:
		if b.CustomerID != actor.ID {
			return ErrForbidden
		}
		return nil
	case domain.RoleProvider:
		if b.ProviderID != actor.ID {
			return ErrForbidden
		}
		return nil
	default:
		return ErrForbidden
	}
}

// GetByID fetches a booking visible to the actor: the customer or
// provider involved, or an admin
func (s *Service) GetByID(ctx context.Context, bookingID int64, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for actor=%d role=%s", bookingID, actor.ID, actor.Role)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := checkOwnership(booking, actor); err != nil {
		s.logger.Warn("GetByID: access denied for actor=%d to booking id=%d", actor.ID, bookingID)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings returns a customer's booking history, optionally
// filtered by status. Customers see only their own history.
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest, actor domain.Actor) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: customer=%d actor=%d role=%s", req.CustomerID, actor.ID, actor.Role)

	switch actor.Role {
	case domain.RoleAdmin:
		// unrestricted
	case domain.RoleCustomer:
		if actor.ID != req.CustomerID {
			return nil, ErrForbidden
		}
	default:
		return nil, ErrForbidden
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerBookings: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByCustomerID(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: fetched %d bookings for customer=%d", len(bookings), req.CustomerID)
	return models.FromDomainBookingList(bookings), nil
}

// GetProviderBookings returns a provider's bookings in a date range.
// Providers see only their own calendar; admins see any.
func (s *Service) GetProviderBookings(ctx context.Context, req *models.GetProviderBookingsRequest, actor domain.Actor) (*models.BookingListResponse, error) {
	s.logger.Info("GetProviderBookings: provider=%d actor=%d role=%s", req.ProviderID, actor.ID, actor.Role)

	switch actor.Role {
	case domain.RoleAdmin:
		// unrestricted
	case domain.RoleProvider:
		if actor.ID != req.ProviderID {
			return nil, ErrForbidden
		}
	default:
		return nil, ErrForbidden
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetProviderBookings: invalid filter for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByProviderWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetProviderBookings: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetProviderBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProviderBookings: fetched %d bookings for provider=%d", len(bookings), req.ProviderID)
	return models.FromDomainBookingList(bookings), nil
}
