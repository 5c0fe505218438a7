package booking

import (
	"context"
	"database/sql"

	"github.com/pawcare/PetCare-BookingService/pkg/dbmetrics"
)

// Reuse the dbmetrics executor interfaces so the repository works over
// both *sql.DB and the metrics wrapper.
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// TxBeginner starts transactions; satisfied by *sql.DB and *dbmetrics.DB
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}
