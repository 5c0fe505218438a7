package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawcare/PetCare-BookingService/internal/domain"
	bookingRepo "github.com/pawcare/PetCare-BookingService/internal/infra/storage/booking"
	"github.com/pawcare/PetCare-BookingService/internal/infra/storage/paymentoutbox"
	"github.com/pawcare/PetCare-BookingService/internal/service/bookings/models"
	"github.com/pawcare/PetCare-BookingService/pkg/ptr"
)

// --- fakes ---

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking

	failUpdateWith error
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	r := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) GetByCustomerID(_ context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.bookings {
		if b.CustomerID != customerID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		copied := *b
		out = append(out, &copied)
	}
	return out, nil
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
		copied := *b
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, b *domain.Booking, expectedStatus domain.BookingStatus) error {
	if r.failUpdateWith != nil {
		return r.failUpdateWith
	}

	stored, ok := r.bookings[b.ID]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if stored.Status != expectedStatus {
		return bookingRepo.ErrStaleStatus
	}

	copied := *b
	r.bookings[b.ID] = &copied
	return nil
}

type fakeOutbox struct {
	events []*paymentoutbox.Event
	fail   bool
}

func (o *fakeOutbox) Enqueue(_ context.Context, bookingID int64, paymentRef string, target domain.PaymentStatus) (*paymentoutbox.Event, error) {
	if o.fail {
		return nil, errors.New("outbox unavailable")
	}
	event := &paymentoutbox.Event{
		EventID:      uuid.New(),
		BookingID:    bookingID,
		PaymentRef:   paymentRef,
		TargetStatus: target,
		Status:       paymentoutbox.EventPending,
	}
	o.events = append(o.events, event)
	return event, nil
}

type fakeTime struct {
	now time.Time
}

func (f *fakeTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- fixture ---

var testNow = time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

var (
	customer = domain.Actor{ID: 20, Role: domain.RoleCustomer}
	provider = domain.Actor{ID: 10, Role: domain.RoleProvider}
	admin    = domain.Actor{ID: 99, Role: domain.RoleAdmin}
)

func testBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:              1,
		ProviderID:      10,
		CustomerID:      20,
		ServiceID:       100,
		PetID:           5,
		BookingDate:     time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          status,
		PaymentRef:      "pay-1",
	}
}

func newService(repo *fakeBookingRepo, outbox *fakeOutbox) *Service {
	svc := NewService(repo, outbox, nopLogger{})
	svc.timeProvider = &fakeTime{now: testNow}
	return svc
}

// --- tests ---

func TestConfirm(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(domain.StatusPending))
	outbox := &fakeOutbox{}
	svc := newService(repo, outbox)

	resp, err := svc.Confirm(context.Background(), 1, provider)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, domain.StatusConfirmed, repo.bookings[1].Status)
	assert.Empty(t, outbox.events, "confirmation does not touch the payment record")
}

func TestConfirm_WrongProvider(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(domain.StatusPending))
	svc := newService(repo, &fakeOutbox{})

	otherProvider := domain.Actor{ID: 33, Role: domain.RoleProvider}
	_, err := svc.Confirm(context.Background(), 1, otherProvider)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, domain.StatusPending, repo.bookings[1].Status)
}

func TestConfirm_CustomerNotAllowed(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(domain.StatusPending))
	svc := newService(repo, &fakeOutbox{})

	_, err := svc.Confirm(context.Background(), 1, customer)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCancel_CustomerDefaultReason(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(domain.StatusPending))
	outbox := &fakeOutbox{}
	svc := newService(repo, outbox)

	resp, err := svc.Cancel(context.Background(), 1, customer, nil)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, domain.DefaultCancellationReason, *resp.CancellationReason)

	require.Len(t, outbox.events, 1)
	assert.Equal(t, domain.PaymentCancelled, outbox.events[0].TargetStatus)
	assert.Equal(t, "pay-1", outbox.events[0].PaymentRef)
}

func TestCancel_CustomerOnlyOwnBooking(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(domain.StatusPending))
	svc := newService(repo, &fakeOutbox{})

	otherCustomer := domain.Actor{ID: 500, Role: domain.RoleCustomer}
	_, err := svc.Cancel(context.Background(), 1, otherCustomer, nil)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCancel_ProviderNeedsReason(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(domain.StatusConfirmed))
	svc := newService(repo, &fakeOutbox{})

	_, err := svc.Cancel(context.Background(), 1, provider, nil)
	assert.ErrorIs(t, err, ErrReasonRequired)

	resp, err := svc.Cancel(context.Background(), 1, provider, ptr.Ptr("groomer is ill"))
	require.NoError(t, err)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "groomer is ill", *resp.CancellationReason)
}

func TestComplete_EnqueuesPaymentSync(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(domain.StatusConfirmed))
	outbox := &fakeOutbox{}
	svc := newService(repo, outbox)

	resp, err := svc.Complete(context.Background(), 1, provider)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)

	require.Len(t, outbox.events, 1)
	assert.Equal(t, domain.PaymentCompleted, outbox.events[0].TargetStatus)
}

func TestMarkNoShow(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(domain.StatusConfirmed))
	outbox := &fakeOutbox{}
	svc := newService(repo, outbox)

	_, err := svc.MarkNoShow(context.Background(), 1, provider, "")
	assert.ErrorIs(t, err, ErrReasonRequired)

	resp, err := svc.MarkNoShow(context.Background(), 1, provider, "customer never arrived")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusNoShow), resp.Status)
	assert.Empty(t, outbox.events, "no-show leaves the payment record pending")
}

func TestTransition_InvalidFromTerminal(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(domain.StatusCompleted))
	svc := newService(repo, &fakeOutbox{})

	_, err := svc.Complete(context.Background(), 1, provider)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransition_NotFound(t *testing.T) {
	svc := newService(newFakeBookingRepo(), &fakeOutbox{})

	_, err := svc.Confirm(context.Background(), 42, provider)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestTransition_StaleState(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(domain.StatusPending))
	repo.failUpdateWith = bookingRepo.ErrStaleStatus
	svc := newService(repo, &fakeOutbox{})

	_, err := svc.Confirm(context.Background(), 1, provider)
	assert.ErrorIs(t, err, ErrStaleState)
}

func TestTransition_OutboxFailureDoesNotFail(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(domain.StatusConfirmed))
	outbox := &fakeOutbox{fail: true}
	svc := newService(repo, outbox)

	resp, err := svc.Complete(context.Background(), 1, provider)
	require.NoError(t, err, "the transition is authoritative, sync is best-effort")
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
}

func TestTransition_MissingPaymentRefSkipsEnqueue(t *testing.T) {
	b := testBooking(domain.StatusConfirmed)
	b.PaymentRef = ""
	repo := newFakeBookingRepo(b)
	outbox := &fakeOutbox{}
	svc := newService(repo, outbox)

	_, err := svc.Complete(context.Background(), 1, provider)
	require.NoError(t, err)
	assert.Empty(t, outbox.events)
}

func TestAdminOverride(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(domain.StatusConfirmed))
	outbox := &fakeOutbox{}
	svc := newService(repo, outbox)

	resp, err := svc.AdminOverride(context.Background(), 1, domain.ActionCancel, admin.ID, "dispute resolved")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.Len(t, outbox.events, 1)

	_, err = svc.AdminOverride(context.Background(), 1, domain.Action("explode"), admin.ID, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByID_Visibility(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(domain.StatusPending))
	svc := newService(repo, &fakeOutbox{})

	for _, actor := range []domain.Actor{customer, provider, admin} {
		resp, err := svc.GetByID(context.Background(), 1, actor)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
	}

	stranger := domain.Actor{ID: 777, Role: domain.RoleCustomer}
	_, err := svc.GetByID(context.Background(), 1, stranger)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGetCustomerBookings(t *testing.T) {
	b2 := testBooking(domain.StatusCancelled)
	b2.ID = 2
	repo := newFakeBookingRepo(testBooking(domain.StatusPending), b2)
	svc := newService(repo, &fakeOutbox{})

	resp, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{CustomerID: 20}, customer)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)

	resp, err = svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{CustomerID: 20, Status: ptr.Ptr(string(domain.StatusCancelled))}, customer)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	_, err = svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{CustomerID: 20, Status: ptr.Ptr("unknown")}, customer)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// customers never see someone else's history
	_, err = svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{CustomerID: 999}, customer)
	assert.ErrorIs(t, err, ErrForbidden)

	// providers have no access to customer histories at all
	_, err = svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{CustomerID: 20}, provider)
	assert.ErrorIs(t, err, ErrForbidden)

	// admins see any
	_, err = svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{CustomerID: 20}, admin)
	assert.NoError(t, err)
}

func TestGetProviderBookings(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(domain.StatusPending))
	svc := newService(repo, &fakeOutbox{})

	resp, err := svc.GetProviderBookings(context.Background(), &models.GetProviderBookingsRequest{ProviderID: 10}, provider)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	otherProvider := domain.Actor{ID: 33, Role: domain.RoleProvider}
	_, err = svc.GetProviderBookings(context.Background(), &models.GetProviderBookingsRequest{ProviderID: 10}, otherProvider)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetProviderBookings(context.Background(), &models.GetProviderBookingsRequest{ProviderID: 10}, customer)
	assert.ErrorIs(t, err, ErrForbidden)
}
