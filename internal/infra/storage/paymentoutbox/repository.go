// Package paymentoutbox persists pending payment-status notifications.
// A booking transition is authoritative the moment it commits; the
// mirror write to the payment service goes through this outbox so a
// sync failure is retried instead of rolling back the transition.
package paymentoutbox

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/pawcare/PetCare-BookingService/internal/domain"
	"github.com/pawcare/PetCare-BookingService/pkg/dbmetrics"
	"github.com/pawcare/PetCare-BookingService/pkg/psqlbuilder"
)

// EventStatus is the delivery state of an outbox row
type EventStatus string

const (
	EventPending   EventStatus = "pending"
	EventDelivered EventStatus = "delivered"
	EventFailed    EventStatus = "failed" // retry budget exhausted, needs reconciliation
)

// Event is one payment-status notification waiting for delivery
type Event struct {
	EventID      uuid.UUID
	BookingID    int64
	PaymentRef   string
	TargetStatus domain.PaymentStatus
	Status       EventStatus
	Attempts     int
	LastError    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DBExecutor is the query surface the repository needs
type DBExecutor = dbmetrics.DBExecutor

// Repository is the outbox storage layer
type Repository struct {
	db DBExecutor
}

// NewRepository creates an outbox repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Enqueue inserts a pending notification with a fresh event id
func (r *Repository) Enqueue(ctx context.Context, bookingID int64, paymentRef string, target domain.PaymentStatus) (*Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	event := &Event{
		EventID:      uuid.New(),
		BookingID:    bookingID,
		PaymentRef:   paymentRef,
		TargetStatus: target,
		Status:       EventPending,
	}

	query, args, err := psqlbuilder.Insert("payment_sync_outbox").
		Columns("event_id", "booking_id", "payment_ref", "target_status", "status", "attempts").
		Values(event.EventID, event.BookingID, event.PaymentRef, event.TargetStatus, event.Status, 0).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Enqueue - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Enqueue - execute insert: %v", ErrExecQuery, err)
	}

	event.CreatedAt = createdAt.Time
	event.UpdatedAt = updatedAt.Time

	return event, nil
}

// ListPending returns up to limit undelivered rows, oldest first
func (r *Repository) ListPending(ctx context.Context, limit int) ([]*Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"event_id",
		"booking_id",
		"payment_ref",
		"target_status",
		"status",
		"attempts",
		"last_error",
		"created_at",
		"updated_at",
	).
		From("payment_sync_outbox").
		Where(squirrel.Eq{"status": EventPending}).
		OrderBy("created_at ASC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListPending - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPending - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	events := make([]*Event, 0)

	for rows.Next() {
		var e Event
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&e.EventID,
			&e.BookingID,
			&e.PaymentRef,
			&e.TargetStatus,
			&e.Status,
			&e.Attempts,
			&e.LastError,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListPending - scan row: %v", ErrScanRow, err)
		}

		e.CreatedAt = createdAt.Time
		e.UpdatedAt = updatedAt.Time

		events = append(events, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPending - rows error: %v", ErrScanRow, err)
	}

	return events, nil
}

// MarkDelivered marks a row as successfully synced
func (r *Repository) MarkDelivered(ctx context.Context, eventID uuid.UUID) error {
	return r.setStatus(ctx, eventID, EventDelivered, nil)
}

// MarkFailedAttempt records a delivery failure. Once attempts reaches
// maxAttempts the row moves to failed and is left for reconciliation.
func (r *Repository) MarkFailedAttempt(ctx context.Context, eventID uuid.UUID, attemptErr string, maxAttempts int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payment_sync_outbox").
		Set("attempts", squirrel.Expr("attempts + 1")).
		Set("last_error", attemptErr).
		Set("status", squirrel.Expr("CASE WHEN attempts + 1 >= ? THEN ? ELSE ? END", maxAttempts, EventFailed, EventPending)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"event_id": eventID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkFailedAttempt - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkFailedAttempt - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkFailedAttempt - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// CountFailed returns the number of rows awaiting manual reconciliation
func (r *Repository) CountFailed(ctx context.Context) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("payment_sync_outbox").
		Where(squirrel.Eq{"status": EventFailed}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountFailed - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountFailed - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

func (r *Repository) setStatus(ctx context.Context, eventID uuid.UUID, status EventStatus, lastError *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payment_sync_outbox").
		Set("status", status).
		Set("last_error", lastError).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"event_id": eventID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: setStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: setStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: setStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}
