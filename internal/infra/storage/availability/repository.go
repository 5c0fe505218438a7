package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/pawcare/PetCare-BookingService/internal/domain"
	"github.com/pawcare/PetCare-BookingService/pkg/dbmetrics"
	"github.com/pawcare/PetCare-BookingService/pkg/psqlbuilder"
	"github.com/pawcare/PetCare-BookingService/pkg/types"
)

// DBExecutor is the query surface the repository needs
type DBExecutor = dbmetrics.DBExecutor

// Repository stores provider working hours: one optional window per
// weekday plus dated exception overrides. Rows are upserted, never
// physically deleted except when a weekday is marked closed.
type Repository struct {
	db DBExecutor
}

// NewRepository creates an availability repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByProviderID assembles the provider's full availability snapshot.
// Returns ErrAvailabilityNotFound when the provider has declared
// neither weekly windows nor exceptions.
func (r *Repository) GetByProviderID(ctx context.Context, providerID int64) (*domain.ProviderAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	weekly, updatedAt, err := r.loadWeekly(ctx, executor, providerID)
	if err != nil {
		return nil, err
	}

	exceptions, err := r.loadExceptions(ctx, executor, providerID)
	if err != nil {
		return nil, err
	}

	if len(weekly) == 0 && len(exceptions) == 0 {
		return nil, ErrAvailabilityNotFound
	}

	return &domain.ProviderAvailability{
		ProviderID: providerID,
		Weekly:     weekly,
		Exceptions: exceptions,
		UpdatedAt:  updatedAt,
	}, nil
}

// SetWeeklyWindow upserts the window for one weekday. A nil window
// marks the day closed by removing the row.
func (r *Repository) SetWeeklyWindow(ctx context.Context, providerID int64, weekday time.Weekday, window *domain.DayWindow) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if window == nil {
		query, args, err := psqlbuilder.Delete("provider_weekly_windows").
			Where(squirrel.Eq{"provider_id": providerID, "weekday": int(weekday)}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: SetWeeklyWindow - build delete query: %v", ErrBuildQuery, err)
		}

		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: SetWeeklyWindow - execute delete: %v", ErrExecQuery, err)
		}
		return nil
	}

	query, args, err := psqlbuilder.Insert("provider_weekly_windows").
		Columns("provider_id", "weekday", "open_time", "close_time").
		Values(providerID, int(weekday), window.Open, window.Close).
		Suffix("ON CONFLICT (provider_id, weekday) DO UPDATE SET open_time = EXCLUDED.open_time, close_time = EXCLUDED.close_time, updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetWeeklyWindow - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetWeeklyWindow - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// AddException upserts a dated override. A nil window records a
// blackout (closed) date.
func (r *Repository) AddException(ctx context.Context, providerID int64, exc domain.DateException) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var open, close interface{}
	isClosed := exc.Window == nil
	if !isClosed {
		open = exc.Window.Open
		close = exc.Window.Close
	}

	query, args, err := psqlbuilder.Insert("provider_availability_exceptions").
		Columns("provider_id", "exception_date", "is_closed", "open_time", "close_time").
		Values(providerID, exc.Date, isClosed, open, close).
		Suffix("ON CONFLICT (provider_id, exception_date) DO UPDATE SET is_closed = EXCLUDED.is_closed, open_time = EXCLUDED.open_time, close_time = EXCLUDED.close_time, updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AddException - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AddException - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) loadWeekly(ctx context.Context, executor DBExecutor, providerID int64) (map[time.Weekday]*domain.DayWindow, time.Time, error) {
	query, args, err := psqlbuilder.Select("weekday", "open_time", "close_time", "updated_at").
		From("provider_weekly_windows").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: loadWeekly - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: loadWeekly - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	weekly := make(map[time.Weekday]*domain.DayWindow)
	var latest time.Time

	for rows.Next() {
		var weekday int
		var open, close types.TimeString
		var updatedAt time.Time

		if err := rows.Scan(&weekday, &open, &close, &updatedAt); err != nil {
			return nil, time.Time{}, fmt.Errorf("%w: loadWeekly - scan row: %v", ErrScanRow, err)
		}

		weekly[time.Weekday(weekday)] = &domain.DayWindow{Open: open, Close: close}
		if updatedAt.After(latest) {
			latest = updatedAt
		}
	}

	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: loadWeekly - rows error: %v", ErrScanRow, err)
	}

	return weekly, latest, nil
}

func (r *Repository) loadExceptions(ctx context.Context, executor DBExecutor, providerID int64) ([]domain.DateException, error) {
	query, args, err := psqlbuilder.Select("exception_date", "is_closed", "open_time", "close_time").
		From("provider_availability_exceptions").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("exception_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: loadExceptions - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadExceptions - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	exceptions := make([]domain.DateException, 0)

	for rows.Next() {
		var date time.Time
		var isClosed bool
		var open, close *types.TimeString

		if err := rows.Scan(&date, &isClosed, &open, &close); err != nil {
			return nil, fmt.Errorf("%w: loadExceptions - scan row: %v", ErrScanRow, err)
		}

		exc := domain.DateException{Date: date}
		if !isClosed && open != nil && close != nil {
			exc.Window = &domain.DayWindow{Open: *open, Close: *close}
		}

		exceptions = append(exceptions, exc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadExceptions - rows error: %v", ErrScanRow, err)
	}

	return exceptions, nil
}
