package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawcare/PetCare-BookingService/internal/domain"
	availabilityRepo "github.com/pawcare/PetCare-BookingService/internal/infra/storage/availability"
)

type fakeRepo struct {
	weekly     map[time.Weekday]*domain.DayWindow
	exceptions []domain.DateException
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{weekly: make(map[time.Weekday]*domain.DayWindow)}
}

func (r *fakeRepo) GetByProviderID(_ context.Context, providerID int64) (*domain.ProviderAvailability, error) {
	if len(r.weekly) == 0 && len(r.exceptions) == 0 {
		return nil, availabilityRepo.ErrAvailabilityNotFound
	}
	return &domain.ProviderAvailability{
		ProviderID: providerID,
		Weekly:     r.weekly,
		Exceptions: r.exceptions,
	}, nil
}

func (r *fakeRepo) SetWeeklyWindow(_ context.Context, _ int64, weekday time.Weekday, window *domain.DayWindow) error {
	if window == nil {
		delete(r.weekly, weekday)
		return nil
	}
	r.weekly[weekday] = window
	return nil
}

func (r *fakeRepo) AddException(_ context.Context, _ int64, exc domain.DateException) error {
	r.exceptions = append(r.exceptions, exc)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	owner    = domain.Actor{ID: 10, Role: domain.RoleProvider}
	stranger = domain.Actor{ID: 33, Role: domain.RoleProvider}
	customer = domain.Actor{ID: 20, Role: domain.RoleCustomer}
	admin    = domain.Actor{ID: 99, Role: domain.RoleAdmin}
)

func TestSetWeeklyWindow(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopLogger{})

	window := &domain.DayWindow{Open: "09:00", Close: "18:00"}
	require.NoError(t, svc.SetWeeklyWindow(context.Background(), 10, time.Monday, window, owner))
	assert.Equal(t, window, repo.weekly[time.Monday])

	// nil window closes the day
	require.NoError(t, svc.SetWeeklyWindow(context.Background(), 10, time.Monday, nil, owner))
	assert.NotContains(t, repo.weekly, time.Monday)
}

func TestSetWeeklyWindow_Access(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopLogger{})
	window := &domain.DayWindow{Open: "09:00", Close: "18:00"}

	err := svc.SetWeeklyWindow(context.Background(), 10, time.Monday, window, stranger)
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.SetWeeklyWindow(context.Background(), 10, time.Monday, window, customer)
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.SetWeeklyWindow(context.Background(), 10, time.Monday, window, admin)
	assert.NoError(t, err)
}

func TestSetWeeklyWindow_InvalidWindow(t *testing.T) {
	svc := NewService(newFakeRepo(), nopLogger{})

	err := svc.SetWeeklyWindow(context.Background(), 10, time.Monday, &domain.DayWindow{Open: "18:00", Close: "09:00"}, owner)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	err = svc.SetWeeklyWindow(context.Background(), 10, time.Weekday(9), &domain.DayWindow{Open: "09:00", Close: "18:00"}, owner)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddException(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopLogger{})
	date := time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC)

	// blackout
	require.NoError(t, svc.AddException(context.Background(), 10, domain.DateException{Date: date}, owner))
	require.Len(t, repo.exceptions, 1)
	assert.Nil(t, repo.exceptions[0].Window)

	// special opening
	exc := domain.DateException{Date: date, Window: &domain.DayWindow{Open: "10:00", Close: "14:00"}}
	require.NoError(t, svc.AddException(context.Background(), 10, exc, admin))
	require.Len(t, repo.exceptions, 2)

	err := svc.AddException(context.Background(), 10, domain.DateException{}, owner)
	assert.ErrorIs(t, err, ErrInvalidInput)

	badWindow := domain.DateException{Date: date, Window: &domain.DayWindow{Open: "14:00", Close: "10:00"}}
	err = svc.AddException(context.Background(), 10, badWindow, owner)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	err = svc.AddException(context.Background(), 10, exc, stranger)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGetAvailability(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetAvailability(context.Background(), 10)
	assert.ErrorIs(t, err, ErrAvailabilityNotFound)

	repo.weekly[time.Monday] = &domain.DayWindow{Open: "09:00", Close: "18:00"}
	result, err := svc.GetAvailability(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), result.ProviderID)
	assert.Len(t, result.Weekly, 1)
}
