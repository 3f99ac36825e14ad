package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashEntryResponse salida de un movimiento de caja.
type CashEntryResponse struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	DebtID    string          `json:"debt_id,omitempty"`
	Reason    string          `json:"reason"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

// CashEntryListResponse lista paginada de movimientos de caja.
type CashEntryListResponse struct {
	Items []CashEntryResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// CashSummaryResponse totales de caja; Balance = Credits - Debits.
type CashSummaryResponse struct {
	Credits decimal.Decimal `json:"credits"`
	Debits  decimal.Decimal `json:"debits"`
	Balance decimal.Decimal `json:"balance"`
}
