package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.CashRegisterRepository = (*CashRegisterRepo)(nil)

// CashRegisterRepo movimientos de caja (solo inserción y consulta).
type CashRegisterRepo struct {
	q Querier
}

// NewCashRegisterRepository construye el adaptador de caja. Pasar pool o tx (Querier).
func NewCashRegisterRepository(q Querier) *CashRegisterRepo {
	return &CashRegisterRepo{q: q}
}

func (r *CashRegisterRepo) Create(ctx context.Context, e *entity.CashEntry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO cash_entries (id, type, amount, debt_id, reason, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.Type, e.Amount, e.DebtID, e.Reason, e.CreatedBy, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cash entry: %w", err)
	}
	return nil
}

// List movimientos en [from, to); nil = sin límite.
func (r *CashRegisterRepo) List(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.CashEntry, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, type, amount, debt_id, reason, created_by, created_at
		FROM cash_entries
		WHERE ($1::timestamptz IS NULL OR created_at >= $1) AND ($2::timestamptz IS NULL OR created_at < $2)
		ORDER BY created_at DESC, id
		LIMIT $3 OFFSET $4`, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cash entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashEntry
	for rows.Next() {
		var e entity.CashEntry
		if err := rows.Scan(&e.ID, &e.Type, &e.Amount, &e.DebtID, &e.Reason, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cash entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Summary totales de créditos y débitos en [from, to).
func (r *CashRegisterRepo) Summary(ctx context.Context, from, to *time.Time) (repository.CashSummary, error) {
	var s repository.CashSummary
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount) FILTER (WHERE type = 'credit'), 0),
		       COALESCE(SUM(amount) FILTER (WHERE type = 'debit'), 0)
		FROM cash_entries
		WHERE ($1::timestamptz IS NULL OR created_at >= $1) AND ($2::timestamptz IS NULL OR created_at < $2)`,
		from, to).Scan(&s.Credits, &s.Debits)
	if err != nil {
		return s, fmt.Errorf("cash summary: %w", err)
	}
	return s, nil
}
