package repository

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// ArrivalRepository puerto de persistencia para llegadas de inventario y sus líneas.
// Las líneas se guardan y se leen siempre junto con la cabecera.
type ArrivalRepository interface {
	Create(ctx context.Context, arrival *entity.Arrival) error
	GetByID(ctx context.Context, id string) (*entity.Arrival, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Arrival, error)
	// ListAll devuelve todas las llegadas con sus líneas (entrada del reductor).
	ListAll(ctx context.Context) ([]entity.Arrival, error)
	Delete(ctx context.Context, id string) error
}
