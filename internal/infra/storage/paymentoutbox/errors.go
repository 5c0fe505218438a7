package paymentoutbox

import "errors"

var (
	// ErrEventNotFound is returned when no outbox row matches the id
	ErrEventNotFound = errors.New("paymentoutbox.repository: event not found")

	// ErrBuildQuery is returned when building a SQL query fails
	ErrBuildQuery = errors.New("paymentoutbox.repository: failed to build query")

	// ErrExecQuery is returned when executing a SQL query fails
	ErrExecQuery = errors.New("paymentoutbox.repository: failed to execute query")

	// ErrScanRow is returned when scanning a query result fails
	ErrScanRow = errors.New("paymentoutbox.repository: failed to scan row")
)
