package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/pawcare/PetCare-BookingService/internal/domain"
	"github.com/pawcare/PetCare-BookingService/pkg/dbmetrics"
	"github.com/pawcare/PetCare-BookingService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"provider_id",
	"customer_id",
	"service_id",
	"pet_id",
	"booking_date",
	"start_time",
	"duration_minutes",
	"status",
	"service_name",
	"total_amount",
	"currency",
	"payment_ref",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"last_transition_at",
}

// Repository is the bookings storage layer
type Repository struct {
	db DBExecutor
}

// NewRepository creates a bookings repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new booking and fills in the generated id and
// timestamps. When the context carries a transaction it is used, which
// is how the scheduler makes the conflict-check-and-insert atomic.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"provider_id",
			"customer_id",
			"service_id",
			"pet_id",
			"booking_date",
			"start_time",
			"duration_minutes",
			"status",
			"service_name",
			"total_amount",
			"currency",
			"payment_ref",
			"notes",
		).
		Values(
			b.ProviderID,
			b.CustomerID,
			b.ServiceID,
			b.PetID,
			b.BookingDate,
			b.StartTime,
			b.DurationMinutes,
			b.Status,
			b.ServiceName,
			b.TotalAmount,
			b.Currency,
			b.PaymentRef,
			b.Notes,
		).
		Suffix("RETURNING id, created_at, last_transition_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, lastTransitionAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&lastTransitionAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.LastTransitionAt = lastTransitionAt.Time

	return b, nil
}

// GetByID fetches a booking by id
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// GetByCustomerID fetches a customer's booking history, optionally
// filtered by status, newest first
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("booking_date DESC, start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByProviderWithFilter fetches a provider's bookings with optional
// date-range and status filtering. Unless IncludeInactive is set or a
// specific status is requested, only slot-holding (pending/confirmed)
// bookings are returned.
//
// When called inside a transaction for a single date, the rows are
// locked with FOR UPDATE: that is the conflict-check half of the
// atomic check-and-insert in the booking scheduler.
func (r *Repository) GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"provider_id": filter.ProviderID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		activeStatusStrings := make([]string, len(domain.ActiveStatuses))
		for i, s := range domain.ActiveStatuses {
			activeStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": activeStatusStrings})
	}

	singleDate := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)

	if singleDate {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && singleDate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus persists a transition snapshot with an optimistic check
// on the previous status. Zero affected rows means either the booking
// does not exist (ErrBookingNotFound) or a concurrent transition won
// the race (ErrStaleStatus); the two are disambiguated by a re-read.
func (r *Repository) UpdateStatus(ctx context.Context, b *domain.Booking, expectedStatus domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", b.Status).
		Set("last_transition_at", b.LastTransitionAt).
		Where(squirrel.Eq{"id": b.ID, "status": expectedStatus})

	if b.Status == domain.StatusCancelled {
		updateBuilder = updateBuilder.
			Set("cancellation_reason", b.CancellationReason).
			Set("cancelled_at", b.CancelledAt)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		if _, err := r.GetByID(ctx, b.ID); err != nil {
			return ErrBookingNotFound
		}
		return ErrStaleStatus
	}

	return nil
}

// UpdatePaymentRef backfills the payment reference once the payment
// collaborator has registered the record
func (r *Repository) UpdatePaymentRef(ctx context.Context, bookingID int64, paymentRef string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_ref", paymentRef).
		Where(squirrel.Eq{"id": bookingID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentRef - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentRef - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentRef - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func scanBooking(row *sql.Row) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, lastTransitionAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.ProviderID,
		&b.CustomerID,
		&b.ServiceID,
		&b.PetID,
		&b.BookingDate,
		&b.StartTime,
		&b.DurationMinutes,
		&b.Status,
		&b.ServiceName,
		&b.TotalAmount,
		&b.Currency,
		&b.PaymentRef,
		&b.Notes,
		&b.CancellationReason,
		&b.CancelledAt,
		&createdAt,
		&lastTransitionAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.LastTransitionAt = lastTransitionAt.Time

	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var b domain.Booking
		var createdAt, lastTransitionAt sql.NullTime

		err := rows.Scan(
			&b.ID,
			&b.ProviderID,
			&b.CustomerID,
			&b.ServiceID,
			&b.PetID,
			&b.BookingDate,
			&b.StartTime,
			&b.DurationMinutes,
			&b.Status,
			&b.ServiceName,
			&b.TotalAmount,
			&b.Currency,
			&b.PaymentRef,
			&b.Notes,
			&b.CancellationReason,
			&b.CancelledAt,
			&createdAt,
			&lastTransitionAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		b.CreatedAt = createdAt.Time
		b.LastTransitionAt = lastTransitionAt.Time

		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
