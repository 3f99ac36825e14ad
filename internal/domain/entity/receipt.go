package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un recibo de venta.
const (
	ReceiptStatusNew       = "new"
	ReceiptStatusCompleted = "completed"
	ReceiptStatusCancelled = "cancelled"
)

// Receipt representa una venta (consumo de unidades llegadas).
type Receipt struct {
	ID        string
	Number    string
	Status    string // new, completed, cancelled
	Date      time.Time
	Comment   string
	Total     decimal.Decimal
	Lines     []ReceiptLine
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Active indica si el recibo cuenta contra la disponibilidad (todo lo que no está cancelado).
func (r Receipt) Active() bool {
	return r.Status != ReceiptStatusCancelled
}

// ReceiptLine consume una unidad (técnica) o una cantidad (accesorio/servicio) de una línea de llegada.
type ReceiptLine struct {
	ID            string
	ReceiptID     string
	ArrivalLineID string
	ProductName   string
	Barcode       string
	SerialNumber  string // obligatorio si la línea de origen es técnica
	Quantity      int    // siempre 1 para técnicos
	Price         decimal.Decimal
	IsAccessory   bool
	IsService     bool
}

// Subtotal devuelve Quantity * Price.
func (l ReceiptLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CanTransitionTo indica si el recibo puede pasar al estado indicado.
// new -> completed | cancelled; completed -> cancelled (devolución). cancelled es terminal.
func (r Receipt) CanTransitionTo(status string) bool {
	switch r.Status {
	case ReceiptStatusNew:
		return status == ReceiptStatusCompleted || status == ReceiptStatusCancelled
	case ReceiptStatusCompleted:
		return status == ReceiptStatusCancelled
	}
	return false
}
