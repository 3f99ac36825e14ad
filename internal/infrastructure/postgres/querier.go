package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/backoffice-api/internal/application/ledger"
)

// Querier abstrae *pgxpool.Pool y pgx.Tx para que los repositorios funcionen dentro o fuera de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NewStores construye todos los repositorios sobre el mismo Querier.
func NewStores(q Querier) ledger.Stores {
	return ledger.Stores{
		Suppliers: NewSupplierRepository(q),
		Arrivals:  NewArrivalRepository(q),
		Receipts:  NewReceiptRepository(q),
		Debts:     NewDebtRepository(q),
		Cash:      NewCashRegisterRepository(q),
	}
}
