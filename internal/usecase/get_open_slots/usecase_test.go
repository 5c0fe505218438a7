package get_open_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawcare/PetCare-BookingService/internal/domain"
	availabilityRepo "github.com/pawcare/PetCare-BookingService/internal/infra/storage/availability"
	"github.com/pawcare/PetCare-BookingService/internal/integrations/catalogservice"
	"github.com/pawcare/PetCare-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (r *fakeBookingRepo) GetByProviderWithFilter(_ context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.bookings {
		if b.ProviderID != filter.ProviderID {
			continue
		}
		if !filter.IncludeInactive && !b.IsActive() {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

type fakeAvailabilityRepo struct {
	availability *domain.ProviderAvailability
}

func (r *fakeAvailabilityRepo) GetByProviderID(_ context.Context, providerID int64) (*domain.ProviderAvailability, error) {
	if r.availability == nil || r.availability.ProviderID != providerID {
		return nil, availabilityRepo.ErrAvailabilityNotFound
	}
	return r.availability, nil
}

type fakeCatalog struct {
	services map[int64]*catalogservice.Service
}

func (c *fakeCatalog) GetService(_ context.Context, serviceID int64) (*catalogservice.Service, error) {
	svc, ok := c.services[serviceID]
	if !ok {
		return nil, catalogservice.ErrServiceNotFound
	}
	if !svc.Active {
		return nil, catalogservice.ErrServiceInactive
	}
	return svc, nil
}

type fakeTime struct {
	now time.Time
}

func (f *fakeTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	testNow  = time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC) // Friday noon
	testDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)  // Wednesday
)

type fixture struct {
	uc       *UseCase
	bookings *fakeBookingRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	bookings := &fakeBookingRepo{}
	availability := &fakeAvailabilityRepo{
		availability: &domain.ProviderAvailability{
			ProviderID: 10,
			Weekly: map[time.Weekday]*domain.DayWindow{
				time.Wednesday: {Open: "09:00", Close: "12:00"},
				time.Friday:    {Open: "09:00", Close: "18:00"},
			},
		},
	}
	catalog := &fakeCatalog{
		services: map[int64]*catalogservice.Service{
			100: {ID: 100, ProviderID: 10, Name: "Full grooming", DurationMinutes: 60, Price: 45.00, Currency: "EUR", Active: true},
		},
	}

	uc := NewUseCase(bookings, availability, catalog, 30, 60, nopLogger{})
	uc.timeProvider = &fakeTime{now: testNow}

	return &fixture{uc: uc, bookings: bookings}
}

func starts(slots []domain.OpenSlot) []types.TimeString {
	out := make([]types.TimeString, len(slots))
	for i, s := range slots {
		out[i] = s.StartTime
	}
	return out
}

func TestExecute_EnumeratesWindow(t *testing.T) {
	f := newFixture(t)

	// 09:00-12:00 window, 60 minute service, 30 minute grid
	resp, err := f.uc.Execute(context.Background(), &Request{ProviderID: 10, ServiceID: 100, Date: testDate})
	require.NoError(t, err)
	assert.Equal(t,
		[]types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00"},
		starts(resp.Slots))
}

func TestExecute_ActiveBookingBlocksOverlaps(t *testing.T) {
	f := newFixture(t)
	f.bookings.bookings = []*domain.Booking{
		{ProviderID: 10, BookingDate: testDate, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
	}

	resp, err := f.uc.Execute(context.Background(), &Request{ProviderID: 10, ServiceID: 100, Date: testDate})
	require.NoError(t, err)
	// every candidate overlapping 10:00-11:00 is gone, 11:00 survives
	assert.Equal(t, []types.TimeString{"09:00", "11:00"}, starts(resp.Slots))
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	f.bookings.bookings = []*domain.Booking{
		{ProviderID: 10, BookingDate: testDate, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusCancelled},
	}

	resp, err := f.uc.Execute(context.Background(), &Request{ProviderID: 10, ServiceID: 100, Date: testDate})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 5)
}

func TestExecute_RepeatCallIsStable(t *testing.T) {
	f := newFixture(t)
	req := &Request{ProviderID: 10, ServiceID: 100, Date: testDate}

	first, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first.Slots, second.Slots)

	// a booking landing between calls removes its slot on the next read
	f.bookings.bookings = []*domain.Booking{
		{ProviderID: 10, BookingDate: testDate, StartTime: "09:00", DurationMinutes: 60, Status: domain.StatusPending},
	}
	third, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.NotContains(t, starts(third.Slots), types.TimeString("09:00"))
}

func TestExecute_ClosedDateReturnsEmpty(t *testing.T) {
	f := newFixture(t)

	saturday := time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC)
	resp, err := f.uc.Execute(context.Background(), &Request{ProviderID: 10, ServiceID: 100, Date: saturday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ExceptionOverridesWeekly(t *testing.T) {
	f := newFixture(t)
	f.uc.availabilityRepo.(*fakeAvailabilityRepo).availability.Exceptions = []domain.DateException{
		{Date: testDate, Window: &domain.DayWindow{Open: "14:00", Close: "16:00"}},
	}

	resp, err := f.uc.Execute(context.Background(), &Request{ProviderID: 10, ServiceID: 100, Date: testDate})
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"14:00", "14:30", "15:00"}, starts(resp.Slots))
}

func TestExecute_SameDayNoticeFiltersSlots(t *testing.T) {
	f := newFixture(t)

	// Friday 09:00-18:00, now 12:00, notice 60 minutes: nothing before 13:00
	resp, err := f.uc.Execute(context.Background(), &Request{ProviderID: 10, ServiceID: 100, Date: testNow})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, types.TimeString("13:00"), resp.Slots[0].StartTime)
}

func TestExecute_PastDateReturnsEmpty(t *testing.T) {
	f := newFixture(t)

	past := testNow.AddDate(0, 0, -7)
	resp, err := f.uc.Execute(context.Background(), &Request{ProviderID: 10, ServiceID: 100, Date: past})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_CustomGranularity(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &Request{ProviderID: 10, ServiceID: 100, Date: testDate, Granularity: 60})
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "10:00", "11:00"}, starts(resp.Slots))
}

func TestExecute_LookupFailures(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{ProviderID: 10, ServiceID: 999, Date: testDate})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = f.uc.Execute(context.Background(), &Request{ProviderID: 55, ServiceID: 100, Date: testDate})
	assert.ErrorIs(t, err, ErrServiceProviderMismatch)

	_, err = f.uc.Execute(context.Background(), &Request{ProviderID: 0, ServiceID: 100, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
