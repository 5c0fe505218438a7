// Package paymentsync drains the payment outbox in the background.
// Booking transitions are authoritative the moment they commit; this
// worker makes the payment collaborator eventually agree, retrying
// failed deliveries up to a budget and surfacing the rest as
// reconciliation errors.
package paymentsync

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pawcare/PetCare-BookingService/internal/domain"
	"github.com/pawcare/PetCare-BookingService/internal/infra/storage/paymentoutbox"
	"github.com/pawcare/PetCare-BookingService/pkg/metrics"
)

// OutboxRepository is the outbox storage surface the worker needs
type OutboxRepository interface {
	ListPending(ctx context.Context, limit int) ([]*paymentoutbox.Event, error)
	MarkDelivered(ctx context.Context, eventID uuid.UUID) error
	MarkFailedAttempt(ctx context.Context, eventID uuid.UUID, attemptErr string, maxAttempts int) error
	CountFailed(ctx context.Context) (int, error)
}

// PaymentClient delivers the status to the payment collaborator
type PaymentClient interface {
	SetStatus(ctx context.Context, paymentRef string, status domain.PaymentStatus) error
}

// Logger is the logging surface the worker needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config tunes the delivery loop
type Config struct {
	Interval    time.Duration
	BatchSize   int
	MaxAttempts int
}

// Worker is the outbox delivery loop
type Worker struct {
	outbox  OutboxRepository
	client  PaymentClient
	metrics *metrics.Metrics
	cfg     Config
	logger  Logger
}

// NewWorker creates a payment sync worker. A nil metrics collector
// disables instrumentation.
func NewWorker(outbox OutboxRepository, client PaymentClient, m *metrics.Metrics, cfg Config, logger Logger) *Worker {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}

	return &Worker{
		outbox:  outbox,
		client:  client,
		metrics: m,
		cfg:     cfg,
		logger:  logger,
	}
}

// Run processes batches until stopCh closes. Intended to be launched
// as a goroutine from main.
func (w *Worker) Run(stopCh <-chan struct{}) {
	w.logger.Info("PaymentSync worker started: interval=%s batch=%d maxAttempts=%d",
		w.cfg.Interval, w.cfg.BatchSize, w.cfg.MaxAttempts)

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			w.logger.Info("PaymentSync worker stopped")
			return
		case <-ticker.C:
			w.processBatch(context.Background())
		}
	}
}

// processBatch delivers one batch of pending events
func (w *Worker) processBatch(ctx context.Context) {
	events, err := w.outbox.ListPending(ctx, w.cfg.BatchSize)
	if err != nil {
		w.logger.Error("PaymentSync: failed to list pending events: %v", err)
		return
	}

	if len(events) == 0 {
		return
	}

	w.logger.Info("PaymentSync: delivering %d pending events", len(events))

	for _, event := range events {
		w.deliver(ctx, event)
	}

	w.publishFailedCount(ctx)
}

func (w *Worker) deliver(ctx context.Context, event *paymentoutbox.Event) {
	err := w.client.SetStatus(ctx, event.PaymentRef, event.TargetStatus)
	if err == nil {
		if err := w.outbox.MarkDelivered(ctx, event.EventID); err != nil {
			w.logger.Error("PaymentSync: delivered event=%s but failed to mark it: %v", event.EventID, err)
			return
		}
		w.count("delivered")
		w.logger.Info("PaymentSync: delivered event=%s booking=%d status=%s", event.EventID, event.BookingID, event.TargetStatus)
		return
	}

	w.logger.Warn("PaymentSync: delivery failed event=%s booking=%d attempt=%d: %v",
		event.EventID, event.BookingID, event.Attempts+1, err)

	if markErr := w.outbox.MarkFailedAttempt(ctx, event.EventID, err.Error(), w.cfg.MaxAttempts); markErr != nil {
		w.logger.Error("PaymentSync: failed to record attempt for event=%s: %v", event.EventID, markErr)
		return
	}

	if event.Attempts+1 >= w.cfg.MaxAttempts {
		w.count("failed")
		w.logger.Error("PaymentSync: event=%s booking=%d exhausted %d attempts, left for reconciliation",
			event.EventID, event.BookingID, w.cfg.MaxAttempts)
	} else {
		w.count("retried")
	}
}

func (w *Worker) publishFailedCount(ctx context.Context) {
	if w.metrics == nil {
		return
	}

	count, err := w.outbox.CountFailed(ctx)
	if err != nil {
		w.logger.Error("PaymentSync: failed to count unreconciled events: %v", err)
		return
	}

	w.metrics.PaymentSyncUnreconciled.WithLabelValues("bookings").Set(float64(count))
}

func (w *Worker) count(result string) {
	if w.metrics == nil {
		return
	}
	w.metrics.PaymentSyncTotal.WithLabelValues(result).Inc()
}
