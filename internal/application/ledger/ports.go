package ledger

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// Stores repositorios atados a una misma transacción.
type Stores struct {
	Suppliers repository.SupplierRepository
	Arrivals  repository.ArrivalRepository
	Receipts  repository.ReceiptRepository
	Debts     repository.DebtRepository
	Cash      repository.CashRegisterRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
type TxRunner interface {
	// Run transacción de escritura: Commit si fn no falla, Rollback en cualquier otro caso.
	Run(ctx context.Context, fn func(s Stores) error) error
	// RunSnapshot transacción de solo lectura REPEATABLE READ: todas las lecturas ven el mismo estado.
	RunSnapshot(ctx context.Context, fn func(s Stores) error) error
}

// DebtLocker serializa las mutaciones de una misma deuda entre procesos.
// Lock devuelve domain.ErrDebtBusy si otro proceso tiene el candado.
type DebtLocker interface {
	Lock(ctx context.Context, debtID string) (release func(), err error)
}
