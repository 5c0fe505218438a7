package paymentsync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawcare/PetCare-BookingService/internal/domain"
	"github.com/pawcare/PetCare-BookingService/internal/infra/storage/paymentoutbox"
)

type fakeOutbox struct {
	events map[uuid.UUID]*paymentoutbox.Event
}

func newFakeOutbox(events ...*paymentoutbox.Event) *fakeOutbox {
	o := &fakeOutbox{events: make(map[uuid.UUID]*paymentoutbox.Event)}
	for _, e := range events {
		o.events[e.EventID] = e
	}
	return o
}

func (o *fakeOutbox) ListPending(_ context.Context, limit int) ([]*paymentoutbox.Event, error) {
	var out []*paymentoutbox.Event
	for _, e := range o.events {
		if e.Status != paymentoutbox.EventPending {
			continue
		}
		copied := *e
		out = append(out, &copied)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (o *fakeOutbox) MarkDelivered(_ context.Context, eventID uuid.UUID) error {
	e, ok := o.events[eventID]
	if !ok {
		return errors.New("event not found")
	}
	e.Status = paymentoutbox.EventDelivered
	return nil
}

func (o *fakeOutbox) MarkFailedAttempt(_ context.Context, eventID uuid.UUID, attemptErr string, maxAttempts int) error {
	e, ok := o.events[eventID]
	if !ok {
		return errors.New("event not found")
	}
	e.Attempts++
	e.LastError = &attemptErr
	if e.Attempts >= maxAttempts {
		e.Status = paymentoutbox.EventFailed
	}
	return nil
}

func (o *fakeOutbox) CountFailed(_ context.Context) (int, error) {
	count := 0
	for _, e := range o.events {
		if e.Status == paymentoutbox.EventFailed {
			count++
		}
	}
	return count, nil
}

type fakePaymentClient struct {
	fail  bool
	calls []string
}

func (c *fakePaymentClient) SetStatus(_ context.Context, paymentRef string, _ domain.PaymentStatus) error {
	c.calls = append(c.calls, paymentRef)
	if c.fail {
		return errors.New("payment service unavailable")
	}
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func pendingEvent() *paymentoutbox.Event {
	return &paymentoutbox.Event{
		EventID:      uuid.New(),
		BookingID:    1,
		PaymentRef:   "pay-1",
		TargetStatus: domain.PaymentCancelled,
		Status:       paymentoutbox.EventPending,
	}
}

func TestProcessBatch_Delivers(t *testing.T) {
	event := pendingEvent()
	outbox := newFakeOutbox(event)
	client := &fakePaymentClient{}
	w := NewWorker(outbox, client, nil, Config{}, nopLogger{})

	w.processBatch(context.Background())

	assert.Equal(t, []string{"pay-1"}, client.calls)
	assert.Equal(t, paymentoutbox.EventDelivered, outbox.events[event.EventID].Status)
}

func TestProcessBatch_RetriesUntilExhausted(t *testing.T) {
	event := pendingEvent()
	outbox := newFakeOutbox(event)
	client := &fakePaymentClient{fail: true}
	w := NewWorker(outbox, client, nil, Config{MaxAttempts: 3}, nopLogger{})

	for i := 1; i <= 2; i++ {
		w.processBatch(context.Background())
		assert.Equal(t, paymentoutbox.EventPending, outbox.events[event.EventID].Status)
		assert.Equal(t, i, outbox.events[event.EventID].Attempts)
	}

	// third attempt exhausts the budget
	w.processBatch(context.Background())
	assert.Equal(t, paymentoutbox.EventFailed, outbox.events[event.EventID].Status)
	require.NotNil(t, outbox.events[event.EventID].LastError)

	// exhausted events are not retried again
	w.processBatch(context.Background())
	assert.Len(t, client.calls, 3)
}

func TestProcessBatch_RecoversAfterOutage(t *testing.T) {
	event := pendingEvent()
	outbox := newFakeOutbox(event)
	client := &fakePaymentClient{fail: true}
	w := NewWorker(outbox, client, nil, Config{MaxAttempts: 5}, nopLogger{})

	w.processBatch(context.Background())
	assert.Equal(t, paymentoutbox.EventPending, outbox.events[event.EventID].Status)

	client.fail = false
	w.processBatch(context.Background())
	assert.Equal(t, paymentoutbox.EventDelivered, outbox.events[event.EventID].Status)
}

func TestRun_StopsOnSignal(t *testing.T) {
	w := NewWorker(newFakeOutbox(), &fakePaymentClient{}, nil, Config{Interval: time.Hour}, nopLogger{})

	stopCh := make(chan struct{})
	done := make(chan struct{})
	go func() {
		w.Run(stopCh)
		close(done)
	}()

	close(stopCh)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}
