package repository

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// ReceiptRepository puerto de persistencia para recibos de venta.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, id string) (*entity.Receipt, error)
	// GetForUpdate bloquea la fila del recibo (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Receipt, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Receipt, error)
	ListAll(ctx context.Context) ([]entity.Receipt, error)
	// ListReferencing devuelve los recibos no cancelados con alguna línea que apunte a las líneas de llegada indicadas.
	ListReferencing(ctx context.Context, arrivalLineIDs []string) ([]entity.Receipt, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// LockStock serializa las ventas concurrentes dentro de la transacción actual.
	LockStock(ctx context.Context) error
}
