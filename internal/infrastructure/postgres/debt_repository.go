package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.DebtRepository = (*DebtRepo)(nil)

// DebtRepo implementación de DebtRepository sobre PostgreSQL (usable con pool o tx).
type DebtRepo struct {
	q Querier
}

// NewDebtRepository construye el adaptador de deudas. Pasar pool o tx (Querier).
func NewDebtRepository(q Querier) *DebtRepo {
	return &DebtRepo{q: q}
}

const debtColumns = `id, arrival_id, supplier_id, supplier_name, amount, paid_amount, remaining_amount,
	status, due_date, comment, version, created_at, updated_at`

func (r *DebtRepo) Create(ctx context.Context, d *entity.Debt) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO debts (`+debtColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		d.ID, d.ArrivalID, d.SupplierID, d.SupplierName, d.Amount, d.PaidAmount, d.RemainingAmount,
		string(d.Status), d.DueDate, d.Comment, d.Version, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert debt: %w", err)
	}
	return nil
}

func (r *DebtRepo) GetByID(ctx context.Context, id string) (*entity.Debt, error) {
	return r.getOne(ctx, `SELECT `+debtColumns+` FROM debts WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila hasta el fin de la transacción.
func (r *DebtRepo) GetForUpdate(ctx context.Context, id string) (*entity.Debt, error) {
	return r.getOne(ctx, `SELECT `+debtColumns+` FROM debts WHERE id = $1 FOR UPDATE`, id)
}

// GetByArrival deuda vinculada a la llegada; nil si la llegada no generó deuda.
func (r *DebtRepo) GetByArrival(ctx context.Context, arrivalID string) (*entity.Debt, error) {
	return r.getOne(ctx, `SELECT `+debtColumns+` FROM debts WHERE arrival_id = $1`, arrivalID)
}

func (r *DebtRepo) getOne(ctx context.Context, query, arg string) (*entity.Debt, error) {
	d, err := scanDebt(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get debt: %w", err)
	}
	return &d, nil
}

// List filtra por estado y proveedor; vencimientos más próximos primero.
func (r *DebtRepo) List(ctx context.Context, f repository.DebtFilter) ([]*entity.Debt, error) {
	debts, err := r.query(ctx, `
		SELECT `+debtColumns+` FROM debts
		WHERE ($1 = '' OR status = $1) AND ($2 = '' OR supplier_id = $2)
		ORDER BY due_date NULLS LAST, created_at DESC
		LIMIT $3 OFFSET $4`, f.Status, f.SupplierID, f.Limit, f.Offset)
	if err != nil {
		return nil, err
	}
	list := make([]*entity.Debt, 0, len(debts))
	for i := range debts {
		list = append(list, &debts[i])
	}
	return list, nil
}

func (r *DebtRepo) ListAll(ctx context.Context) ([]entity.Debt, error) {
	return r.query(ctx, `SELECT `+debtColumns+` FROM debts ORDER BY created_at, id`)
}

// Update escritura condicional: solo aplica si remaining_amount no cambió desde la lectura.
func (r *DebtRepo) Update(ctx context.Context, d *entity.Debt, expectedRemaining decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE debts
		SET paid_amount = $2, remaining_amount = $3, status = $4, due_date = $5, comment = $6,
		    version = $7, updated_at = $8
		WHERE id = $1 AND remaining_amount = $9`,
		d.ID, d.PaidAmount, d.RemainingAmount, string(d.Status), d.DueDate, d.Comment,
		d.Version, d.UpdatedAt, expectedRemaining,
	)
	if err != nil {
		return fmt.Errorf("update debt: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (r *DebtRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM debts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete debt: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListOverdueCandidates bloquea las filas; las que ya tiene otra tx se saltan y se revisan en la próxima corrida.
func (r *DebtRepo) ListOverdueCandidates(ctx context.Context, now time.Time) ([]entity.Debt, error) {
	return r.query(ctx, `
		SELECT `+debtColumns+` FROM debts
		WHERE status IN ('active', 'partially_paid') AND due_date IS NOT NULL AND due_date < $1
		ORDER BY due_date
		FOR UPDATE SKIP LOCKED`, now)
}

func (r *DebtRepo) query(ctx context.Context, sql string, args ...any) ([]entity.Debt, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	defer rows.Close()
	var list []entity.Debt
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan debt: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func scanDebt(row pgx.Row) (entity.Debt, error) {
	var (
		d      entity.Debt
		status string
	)
	err := row.Scan(&d.ID, &d.ArrivalID, &d.SupplierID, &d.SupplierName, &d.Amount, &d.PaidAmount,
		&d.RemainingAmount, &status, &d.DueDate, &d.Comment, &d.Version, &d.CreatedAt, &d.UpdatedAt)
	d.Status = entity.DebtStatus(status)
	return d, err
}
