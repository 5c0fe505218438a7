package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pawcare/PetCare-BookingService/internal/domain"
	availabilityRepo "github.com/pawcare/PetCare-BookingService/internal/infra/storage/availability"
)

// Service manages provider working hours. Mutations are restricted to
// the owning provider or an admin acting on their behalf, and only
// affect bookings created afterward: existing bookings were validated
// against the schedule in force at their creation time and are never
// re-checked.
type Service struct {
	repo   AvailabilityRepository
	logger Logger
}

// NewService creates the availability service
func NewService(repo AvailabilityRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// GetAvailability returns the provider's full schedule snapshot
func (s *Service) GetAvailability(ctx context.Context, providerID int64) (*domain.ProviderAvailability, error) {
	s.logger.Info("GetAvailability: provider=%d", providerID)

	availability, err := s.repo.GetByProviderID(ctx, providerID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			s.logger.Warn("GetAvailability: provider id=%d not found", providerID)
			return nil, ErrAvailabilityNotFound
		}
		s.logger.Error("GetAvailability: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: GetAvailability - repository error: %v", ErrInternal, err)
	}

	return availability, nil
}

// SetWeeklyWindow declares the recurring window for one weekday. A nil
// window marks the day closed.
func (s *Service) SetWeeklyWindow(ctx context.Context, providerID int64, weekday time.Weekday, window *domain.DayWindow, actor domain.Actor) error {
	s.logger.Info("SetWeeklyWindow: provider=%d weekday=%s actor=%d role=%s", providerID, weekday, actor.ID, actor.Role)

	if err := checkScheduleAccess(providerID, actor); err != nil {
		s.logger.Warn("SetWeeklyWindow: access denied for actor=%d role=%s on provider=%d", actor.ID, actor.Role, providerID)
		return err
	}

	if weekday < time.Sunday || weekday > time.Saturday {
		return fmt.Errorf("%w: weekday out of range", ErrInvalidInput)
	}

	if window != nil && !window.Valid() {
		return fmt.Errorf("%w: open=%s close=%s", ErrInvalidWindow, window.Open, window.Close)
	}

	if err := s.repo.SetWeeklyWindow(ctx, providerID, weekday, window); err != nil {
		s.logger.Error("SetWeeklyWindow: repository error for provider=%d: %v", providerID, err)
		return fmt.Errorf("%w: SetWeeklyWindow - repository error: %v", ErrInternal, err)
	}

	if actor.Role == domain.RoleAdmin {
		s.logger.Warn("AUDIT: admin=%d set weekly window provider=%d weekday=%s", actor.ID, providerID, weekday)
	}

	return nil
}

// AddException records a dated override: extra hours or a blackout
// (nil window) for one calendar date.
func (s *Service) AddException(ctx context.Context, providerID int64, exc domain.DateException, actor domain.Actor) error {
	s.logger.Info("AddException: provider=%d date=%s actor=%d role=%s",
		providerID, exc.Date.Format(domain.DateFormat), actor.ID, actor.Role)

	if err := checkScheduleAccess(providerID, actor); err != nil {
		s.logger.Warn("AddException: access denied for actor=%d role=%s on provider=%d", actor.ID, actor.Role, providerID)
		return err
	}

	if exc.Date.IsZero() {
		return fmt.Errorf("%w: exception date is required", ErrInvalidInput)
	}

	if exc.Window != nil && !exc.Window.Valid() {
		return fmt.Errorf("%w: open=%s close=%s", ErrInvalidWindow, exc.Window.Open, exc.Window.Close)
	}

	if err := s.repo.AddException(ctx, providerID, exc); err != nil {
		s.logger.Error("AddException: repository error for provider=%d: %v", providerID, err)
		return fmt.Errorf("%w: AddException - repository error: %v", ErrInternal, err)
	}

	if actor.Role == domain.RoleAdmin {
		s.logger.Warn("AUDIT: admin=%d added exception provider=%d date=%s", actor.ID, providerID, exc.Date.Format(domain.DateFormat))
	}

	return nil
}

func checkScheduleAccess(providerID int64, actor domain.Actor) error {
	switch actor.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleProvider:
		if actor.ID != providerID {
			return ErrForbidden
		}
		return nil
	default:
		return ErrForbidden
	}
}
