package availability

import "errors"

var (
	// ErrAvailabilityNotFound is returned when a provider has no
	// declared schedule at all
	ErrAvailabilityNotFound = errors.New("availability.repository: provider availability not found")

	// ErrBuildQuery is returned when building a SQL query fails
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery is returned when executing a SQL query fails
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow is returned when scanning a query result fails
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
