package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtStatus estado de una deuda con proveedor.
type DebtStatus string

const (
	DebtStatusActive        DebtStatus = "active"
	DebtStatusPartiallyPaid DebtStatus = "partially_paid"
	DebtStatusPaid          DebtStatus = "paid"
	DebtStatusOverdue       DebtStatus = "overdue"
)

// Debt monto adeudado a un proveedor por una llegada, o deuda simple sin llegada (ArrivalID nil).
// Invariante: RemainingAmount = Amount - PaidAmount >= 0; Status = paid sii RemainingAmount = 0.
type Debt struct {
	ID              string
	ArrivalID       *string
	SupplierID      string
	SupplierName    string
	Amount          decimal.Decimal
	PaidAmount      decimal.Decimal
	RemainingAmount decimal.Decimal
	Status          DebtStatus
	DueDate         *time.Time
	Comment         string
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LinkedTo indica si la deuda pertenece a la llegada indicada.
func (d Debt) LinkedTo(arrivalID string) bool {
	return d.ArrivalID != nil && *d.ArrivalID == arrivalID
}

// RefundEvent reembolso que la caja debe acreditar al eliminar una deuda con pagos.
type RefundEvent struct {
	DebtID string
	Amount decimal.Decimal
}
