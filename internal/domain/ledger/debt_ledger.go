package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// MoneyScale decimales con los que se persisten montos, costos y precios.
const MoneyScale = 2

// ValidMoney indica si d se representa sin redondeo con MoneyScale decimales.
func ValidMoney(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MoneyScale))
}

// NewDebt construye una deuda activa por el monto total (sin pagos).
// ErrInvalidAmount si el monto no es positivo o tiene más de MoneyScale decimales.
func NewDebt(id, supplierID, supplierName string, arrivalID *string, amount decimal.Decimal, dueDate *time.Time, now time.Time) (entity.Debt, error) {
	if !amount.IsPositive() || !ValidMoney(amount) {
		return entity.Debt{}, domain.ErrInvalidAmount
	}
	return entity.Debt{
		ID:              id,
		ArrivalID:       arrivalID,
		SupplierID:      supplierID,
		SupplierName:    supplierName,
		Amount:          amount,
		PaidAmount:      decimal.Zero,
		RemainingAmount: amount,
		Status:          entity.DebtStatusActive,
		DueDate:         dueDate,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// ApplyPayment aplica un pago y devuelve la deuda resultante. La deuda recibida no se modifica.
// Falla con ErrInvalidAmount si amount <= 0, si supera el saldo (no se recorta el sobrepago)
// o si tiene más de MoneyScale decimales.
func ApplyPayment(d entity.Debt, amount decimal.Decimal) (entity.Debt, error) {
	if !amount.IsPositive() || !ValidMoney(amount) || amount.GreaterThan(d.RemainingAmount) {
		return d, domain.ErrInvalidAmount
	}
	out := d
	out.PaidAmount = d.PaidAmount.Add(amount)
	out.RemainingAmount = d.RemainingAmount.Sub(amount)
	out.Status = recomputeStatus(out)
	out.Version = d.Version + 1
	return out, nil
}

// recomputeStatus: paid si no queda saldo; partially_paid si hubo pagos; si no, sin cambio.
func recomputeStatus(d entity.Debt) entity.DebtStatus {
	if d.RemainingAmount.IsZero() {
		return entity.DebtStatusPaid
	}
	if d.PaidAmount.IsPositive() {
		return entity.DebtStatusPartiallyPaid
	}
	return d.Status
}

// DeleteDebt devuelve el reembolso que la caja debe acreditar, o nil si no hubo pagos.
func DeleteDebt(d entity.Debt) *entity.RefundEvent {
	if !d.PaidAmount.IsPositive() {
		return nil
	}
	return &entity.RefundEvent{DebtID: d.ID, Amount: d.PaidAmount}
}

// EnsureDebtDeletable bloquea la eliminación si algún recibo activo referencia una línea
// de la llegada de la deuda. arrivalLineIDs son las líneas de esa llegada.
func EnsureDebtDeletable(d entity.Debt, arrivalLineIDs []string, receipts []entity.Receipt) error {
	if d.ArrivalID == nil || len(arrivalLineIDs) == 0 {
		return nil
	}
	if ReferencesAny(receipts, arrivalLineIDs) {
		return domain.ErrArrivalStillReferenced
	}
	return nil
}

// ReferencesAny indica si algún recibo no cancelado consume alguna de las líneas indicadas.
func ReferencesAny(receipts []entity.Receipt, arrivalLineIDs []string) bool {
	ids := make(map[string]struct{}, len(arrivalLineIDs))
	for _, id := range arrivalLineIDs {
		ids[id] = struct{}{}
	}
	for _, r := range receipts {
		if !r.Active() {
			continue
		}
		for _, rl := range r.Lines {
			if _, ok := ids[rl.ArrivalLineID]; ok {
				return true
			}
		}
	}
	return false
}

// MarkOverdue pasa a overdue una deuda activa o parcialmente pagada con vencimiento anterior a now.
// Devuelve false si no corresponde cambio.
func MarkOverdue(d entity.Debt, now time.Time) (entity.Debt, bool) {
	if d.DueDate == nil || !d.DueDate.Before(now) || !d.RemainingAmount.IsPositive() {
		return d, false
	}
	if d.Status != entity.DebtStatusActive && d.Status != entity.DebtStatusPartiallyPaid {
		return d, false
	}
	out := d
	out.Status = entity.DebtStatusOverdue
	out.Version = d.Version + 1
	return out, true
}
