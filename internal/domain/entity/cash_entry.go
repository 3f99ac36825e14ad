package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de caja.
const (
	CashEntryDebit  = "debit"  // salida de dinero (pago a proveedor)
	CashEntryCredit = "credit" // entrada de dinero (reembolso por eliminación de deuda)
)

// CashEntry movimiento de la caja registradora generado por el libro de deudas.
type CashEntry struct {
	ID        string
	Type      string
	Amount    decimal.Decimal
	DebtID    string
	Reason    string
	CreatedBy string
	CreatedAt time.Time
}
