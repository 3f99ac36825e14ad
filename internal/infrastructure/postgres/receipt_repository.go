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

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// stockLockKey clave del advisory lock que serializa altas de llegadas y ventas.
const stockLockKey int64 = 0x5354_4F43_4B // "STOCK"

// ReceiptRepo implementación de ReceiptRepository sobre PostgreSQL (usable con pool o tx).
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository construye el adaptador de recibos. Pasar pool o tx (Querier).
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

const (
	receiptColumns     = `id, number, status, date, comment, total, created_by, created_at, updated_at`
	receiptLineColumns = `id, receipt_id, arrival_line_id, product_name, barcode, serial_number, quantity, price, is_accessory, is_service`
)

// Create persiste el recibo y sus líneas. Número duplicado -> ErrDuplicate.
func (r *ReceiptRepo) Create(ctx context.Context, rc *entity.Receipt) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO receipts (`+receiptColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rc.ID, rc.Number, rc.Status, rc.Date, rc.Comment, rc.Total, rc.CreatedBy, rc.CreatedAt, rc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert receipt: %w", err)
	}
	for i, l := range rc.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO receipt_lines (`+receiptLineColumns+`, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			l.ID, rc.ID, l.ArrivalLineID, l.ProductName, l.Barcode, l.SerialNumber,
			l.Quantity, l.Price, l.IsAccessory, l.IsService, i,
		)
		if err != nil {
			return fmt.Errorf("insert receipt line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un recibo con sus líneas; nil si no existe.
func (r *ReceiptRepo) GetByID(ctx context.Context, id string) (*entity.Receipt, error) {
	return r.get(ctx, `SELECT `+receiptColumns+` FROM receipts WHERE id = $1`, id)
}

// GetForUpdate obtiene el recibo y bloquea su fila (SELECT FOR UPDATE).
func (r *ReceiptRepo) GetForUpdate(ctx context.Context, id string) (*entity.Receipt, error) {
	return r.get(ctx, `SELECT `+receiptColumns+` FROM receipts WHERE id = $1 FOR UPDATE`, id)
}

func (r *ReceiptRepo) get(ctx context.Context, query, id string) (*entity.Receipt, error) {
	var rc entity.Receipt
	err := r.q.QueryRow(ctx, query, id).Scan(
		&rc.ID, &rc.Number, &rc.Status, &rc.Date, &rc.Comment, &rc.Total, &rc.CreatedBy, &rc.CreatedAt, &rc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	lines, err := r.lines(ctx, `WHERE receipt_id = $1`, id)
	if err != nil {
		return nil, err
	}
	rc.Lines = lines[rc.ID]
	return &rc, nil
}

// List lista recibos (más recientes primero); status vacío = todos.
func (r *ReceiptRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.Receipt, error) {
	headers, err := r.headers(ctx, `
		WHERE ($1 = '' OR status = $1) ORDER BY date DESC, id LIMIT $2 OFFSET $3`, status, limit, offset)
	if err != nil {
		return nil, err
	}
	if err := r.attach(ctx, headers); err != nil {
		return nil, err
	}
	list := make([]*entity.Receipt, 0, len(headers))
	for i := range headers {
		list = append(list, &headers[i])
	}
	return list, nil
}

// ListAll devuelve todos los recibos con sus líneas (incluidos los cancelados).
func (r *ReceiptRepo) ListAll(ctx context.Context) ([]entity.Receipt, error) {
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

// ListReferencing recibos no cancelados con al menos una línea sobre las líneas de llegada indicadas.
func (r *ReceiptRepo) ListReferencing(ctx context.Context, arrivalLineIDs []string) ([]entity.Receipt, error) {
	if len(arrivalLineIDs) == 0 {
		return nil, nil
	}
	headers, err := r.headers(ctx, `
		WHERE status <> 'cancelled'
		  AND id IN (SELECT receipt_id FROM receipt_lines WHERE arrival_line_id = ANY($1))
		ORDER BY date, id`, arrivalLineIDs)
	if err != nil {
		return nil, err
	}
	if err := r.attach(ctx, headers); err != nil {
		return nil, err
	}
	return headers, nil
}

// UpdateStatus cambia el estado del recibo.
func (r *ReceiptRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE receipts SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update receipt status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// LockStock toma pg_advisory_xact_lock; se libera con el commit o rollback.
func (r *ReceiptRepo) LockStock(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, stockLockKey); err != nil {
		return fmt.Errorf("lock stock: %w", err)
	}
	return nil
}

func (r *ReceiptRepo) headers(ctx context.Context, tail string, args ...any) ([]entity.Receipt, error) {
	rows, err := r.q.Query(ctx, `SELECT `+receiptColumns+` FROM receipts `+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()
	var list []entity.Receipt
	for rows.Next() {
		var rc entity.Receipt
		if err := rows.Scan(&rc.ID, &rc.Number, &rc.Status, &rc.Date, &rc.Comment, &rc.Total,
			&rc.CreatedBy, &rc.CreatedAt, &rc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		list = append(list, rc)
	}
	return list, rows.Err()
}

func (r *ReceiptRepo) attach(ctx context.Context, headers []entity.Receipt) error {
	if len(headers) == 0 {
		return nil
	}
	ids := make([]string, 0, len(headers))
	for _, h := range headers {
		ids = append(ids, h.ID)
	}
	lines, err := r.lines(ctx, `WHERE receipt_id = ANY($1)`, ids)
	if err != nil {
		return err
	}
	for i := range headers {
		headers[i].Lines = lines[headers[i].ID]
	}
	return nil
}

func (r *ReceiptRepo) lines(ctx context.Context, where string, args ...any) (map[string][]entity.ReceiptLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+receiptLineColumns+` FROM receipt_lines `+where+` ORDER BY receipt_id, position`, args...)
	if err != nil {
		return nil, fmt.Errorf("list receipt lines: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.ReceiptLine)
	for rows.Next() {
		var l entity.ReceiptLine
		if err := rows.Scan(&l.ID, &l.ReceiptID, &l.ArrivalLineID, &l.ProductName, &l.Barcode, &l.SerialNumber,
			&l.Quantity, &l.Price, &l.IsAccessory, &l.IsService); err != nil {
			return nil, fmt.Errorf("scan receipt line: %w", err)
		}
		out[l.ReceiptID] = append(out[l.ReceiptID], l)
	}
	return out, rows.Err()
}
