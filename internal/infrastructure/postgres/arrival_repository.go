package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.ArrivalRepository = (*ArrivalRepo)(nil)

// ArrivalRepo implementación de ArrivalRepository sobre PostgreSQL (usable con pool o tx).
type ArrivalRepo struct {
	q Querier
}

// NewArrivalRepository construye el adaptador de llegadas. Pasar pool o tx (Querier).
func NewArrivalRepository(q Querier) *ArrivalRepo {
	return &ArrivalRepo{q: q}
}

const (
	arrivalColumns     = `id, supplier_id, supplier_name, date, comment, created_at, updated_at`
	arrivalLineColumns = `id, arrival_id, product_id, product_name, kind, quantity, unit_price, unit_cost, barcode, serial_numbers`
)

// Create persiste la cabecera y sus líneas (en orden). Llamar dentro de una tx.
func (r *ArrivalRepo) Create(ctx context.Context, a *entity.Arrival) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO arrivals (`+arrivalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.SupplierID, a.SupplierName, a.Date, a.Comment, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert arrival: %w", err)
	}
	for i, l := range a.Lines {
		serials := l.SerialNumbers
		if serials == nil {
			serials = []string{}
		}
		_, err := r.q.Exec(ctx, `
			INSERT INTO arrival_lines (`+arrivalLineColumns+`, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			l.ID, a.ID, nullIfEmpty(l.ProductID), l.ProductName, string(l.Kind), l.Quantity,
			l.UnitPrice, l.UnitCost, l.Barcode, serials, i,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert arrival line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una llegada con sus líneas; nil si no existe.
func (r *ArrivalRepo) GetByID(ctx context.Context, id string) (*entity.Arrival, error) {
	var a entity.Arrival
	err := r.q.QueryRow(ctx, `SELECT `+arrivalColumns+` FROM arrivals WHERE id = $1`, id).Scan(
		&a.ID, &a.SupplierID, &a.SupplierName, &a.Date, &a.Comment, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get arrival: %w", err)
	}
	lines, err := r.lines(ctx, `WHERE arrival_id = $1`, id)
	if err != nil {
		return nil, err
	}
	a.Lines = lines[a.ID]
	return &a, nil
}

// List lista llegadas (más recientes primero) con paginación.
func (r *ArrivalRepo) List(ctx context.Context, limit, offset int) ([]*entity.Arrival, error) {
	headers, err := r.headers(ctx, `ORDER BY date DESC, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(headers))
	for _, a := range headers {
		ids = append(ids, a.ID)
	}
	lines, err := r.lines(ctx, `WHERE arrival_id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	list := make([]*entity.Arrival, 0, len(headers))
	for i := range headers {
		headers[i].Lines = lines[headers[i].ID]
		list = append(list, &headers[i])
	}
	return list, nil
}

// ListAll devuelve todas las llegadas con sus líneas.
func (r *ArrivalRepo) ListAll(ctx context.Context) ([]entity.Arrival, error) {
	headers, err := r.headers(ctx, `ORDER BY date, id`)
	if err != nil {
		return nil, err
	}
	lines, err := r.lines(ctx, ``)
	if err != nil {
		return nil, err
	}
	for i := range headers {
		headers[i].Lines = lines[headers[i].ID]
	}
	return headers, nil
}

// Delete elimina la llegada; las líneas caen por ON DELETE CASCADE.
func (r *ArrivalRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM arrivals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete arrival: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ArrivalRepo) headers(ctx context.Context, tail string, args ...any) ([]entity.Arrival, error) {
	rows, err := r.q.Query(ctx, `SELECT `+arrivalColumns+` FROM arrivals `+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("list arrivals: %w", err)
	}
	defer rows.Close()
	var list []entity.Arrival
	for rows.Next() {
		var a entity.Arrival
		if err := rows.Scan(&a.ID, &a.SupplierID, &a.SupplierName, &a.Date, &a.Comment, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan arrival: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// lines devuelve las líneas agrupadas por llegada, en el orden de captura.
func (r *ArrivalRepo) lines(ctx context.Context, where string, args ...any) (map[string][]entity.ArrivalLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+arrivalLineColumns+` FROM arrival_lines `+where+` ORDER BY arrival_id, position`, args...)
	if err != nil {
		return nil, fmt.Errorf("list arrival lines: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.ArrivalLine)
	for rows.Next() {
		var (
			l         entity.ArrivalLine
			productID *string
			kind      string
		)
		if err := rows.Scan(&l.ID, &l.ArrivalID, &productID, &l.ProductName, &kind, &l.Quantity,
			&l.UnitPrice, &l.UnitCost, &l.Barcode, &l.SerialNumbers); err != nil {
			return nil, fmt.Errorf("scan arrival line: %w", err)
		}
		l.ProductID = deref(productID)
		l.Kind = entity.ItemKind(kind)
		out[l.ArrivalID] = append(out[l.ArrivalID], l)
	}
	return out, rows.Err()
}
