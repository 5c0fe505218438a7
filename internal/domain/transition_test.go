package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var transitionNow = time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

func pendingBooking() Booking {
	return Booking{
		ID:         1,
		ProviderID: 10,
		CustomerID: 20,
		Status:     StatusPending,
	}
}

func confirmedBooking() Booking {
	b := pendingBooking()
	b.Status = StatusConfirmed
	return b
}

func TestTransition_Legality(t *testing.T) {
	admin := Actor{ID: 99, Role: RoleAdmin}

	tests := []struct {
		name    string
		from    BookingStatus
		action  Action
		want    BookingStatus
		wantErr bool
	}{
		{name: "pending confirm", from: StatusPending, action: ActionConfirm, want: StatusConfirmed},
		{name: "pending cancel", from: StatusPending, action: ActionCancel, want: StatusCancelled},
		{name: "pending complete illegal", from: StatusPending, action: ActionComplete, wantErr: true},
		{name: "pending no-show illegal", from: StatusPending, action: ActionNoShow, wantErr: true},
		{name: "confirmed cancel", from: StatusConfirmed, action: ActionCancel, want: StatusCancelled},
		{name: "confirmed complete", from: StatusConfirmed, action: ActionComplete, want: StatusCompleted},
		{name: "confirmed no-show", from: StatusConfirmed, action: ActionNoShow, want: StatusNoShow},
		{name: "confirmed confirm illegal", from: StatusConfirmed, action: ActionConfirm, wantErr: true},
		{name: "completed is terminal", from: StatusCompleted, action: ActionCancel, wantErr: true},
		{name: "cancelled is terminal", from: StatusCancelled, action: ActionConfirm, wantErr: true},
		{name: "no-show is terminal", from: StatusNoShow, action: ActionComplete, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := pendingBooking()
			b.Status = tt.from

			updated, err := Transition(b, tt.action, admin, "some reason", transitionNow)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTransition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, updated.Status)
			assert.Equal(t, transitionNow, updated.LastTransitionAt)
		})
	}
}

func TestTransition_RoleRules(t *testing.T) {
	customer := Actor{ID: 20, Role: RoleCustomer}
	provider := Actor{ID: 10, Role: RoleProvider}

	_, err := Transition(pendingBooking(), ActionConfirm, customer, "", transitionNow)
	assert.ErrorIs(t, err, ErrActorNotAllowed)

	_, err = Transition(confirmedBooking(), ActionComplete, customer, "", transitionNow)
	assert.ErrorIs(t, err, ErrActorNotAllowed)

	_, err = Transition(confirmedBooking(), ActionNoShow, customer, "did not come", transitionNow)
	assert.ErrorIs(t, err, ErrActorNotAllowed)

	_, err = Transition(pendingBooking(), ActionConfirm, provider, "", transitionNow)
	assert.NoError(t, err)
}

func TestTransition_ReasonRules(t *testing.T) {
	customer := Actor{ID: 20, Role: RoleCustomer}
	provider := Actor{ID: 10, Role: RoleProvider}

	t.Run("provider cancel requires reason", func(t *testing.T) {
		_, err := Transition(confirmedBooking(), ActionCancel, provider, "", transitionNow)
		assert.ErrorIs(t, err, ErrReasonRequired)

		_, err = Transition(confirmedBooking(), ActionCancel, provider, "   ", transitionNow)
		assert.ErrorIs(t, err, ErrReasonRequired)
	})

	t.Run("no-show requires reason", func(t *testing.T) {
		_, err := Transition(confirmedBooking(), ActionNoShow, provider, "", transitionNow)
		assert.ErrorIs(t, err, ErrReasonRequired)
	})

	t.Run("customer cancel gets default reason", func(t *testing.T) {
		updated, err := Transition(pendingBooking(), ActionCancel, customer, "", transitionNow)
		require.NoError(t, err)
		require.NotNil(t, updated.CancellationReason)
		assert.Equal(t, DefaultCancellationReason, *updated.CancellationReason)
	})

	t.Run("explicit reason is kept", func(t *testing.T) {
		updated, err := Transition(confirmedBooking(), ActionCancel, provider, "pet is sick", transitionNow)
		require.NoError(t, err)
		require.NotNil(t, updated.CancellationReason)
		assert.Equal(t, "pet is sick", *updated.CancellationReason)
		require.NotNil(t, updated.CancelledAt)
		assert.Equal(t, transitionNow, *updated.CancelledAt)
	})
}

func TestTransition_DoesNotMutateInput(t *testing.T) {
	b := pendingBooking()
	admin := Actor{ID: 99, Role: RoleAdmin}

	updated, err := Transition(b, ActionConfirm, admin, "", transitionNow)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, StatusConfirmed, updated.Status)
}

func TestTransition_UnknownAction(t *testing.T) {
	admin := Actor{ID: 99, Role: RoleAdmin}
	_, err := Transition(pendingBooking(), Action("reschedule"), admin, "", transitionNow)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestPaymentStatusFor(t *testing.T) {
	status, needed := PaymentStatusFor(StatusCancelled)
	assert.True(t, needed)
	assert.Equal(t, PaymentCancelled, status)

	status, needed = PaymentStatusFor(StatusCompleted)
	assert.True(t, needed)
	assert.Equal(t, PaymentCompleted, status)

	// no-show leaves the payment record untouched
	_, needed = PaymentStatusFor(StatusNoShow)
	assert.False(t, needed)

	_, needed = PaymentStatusFor(StatusPending)
	assert.False(t, needed)

	_, needed = PaymentStatusFor(StatusConfirmed)
	assert.False(t, needed)
}
