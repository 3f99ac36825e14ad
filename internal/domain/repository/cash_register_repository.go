package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// CashSummary totales de caja en un rango.
type CashSummary struct {
	Credits decimal.Decimal
	Debits  decimal.Decimal
}

// CashRegisterRepository puerto de persistencia para los movimientos de caja.
type CashRegisterRepository interface {
	Create(ctx context.Context, entry *entity.CashEntry) error
	List(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.CashEntry, error)
	Summary(ctx context.Context, from, to *time.Time) (CashSummary, error)
}
