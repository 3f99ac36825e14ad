package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// DebtFilter filtros para listar deudas.
type DebtFilter struct {
	Status     string
	SupplierID string
	Limit      int
	Offset     int
}

// DebtRepository puerto de persistencia para deudas con proveedores.
type DebtRepository interface {
	Create(ctx context.Context, debt *entity.Debt) error
	GetByID(ctx context.Context, id string) (*entity.Debt, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Debt, error)
	GetByArrival(ctx context.Context, arrivalID string) (*entity.Debt, error)
	List(ctx context.Context, f DebtFilter) ([]*entity.Debt, error)
	ListAll(ctx context.Context) ([]entity.Debt, error)
	// Update guarda el nuevo estado solo si remaining_amount sigue siendo expectedRemaining.
	// Devuelve domain.ErrConflict si otra escritura se adelantó.
	Update(ctx context.Context, debt *entity.Debt, expectedRemaining decimal.Decimal) error
	Delete(ctx context.Context, id string) error
	// ListOverdueCandidates deudas activas o parciales con vencimiento anterior a now.
	ListOverdueCandidates(ctx context.Context, now time.Time) ([]entity.Debt, error)
}
