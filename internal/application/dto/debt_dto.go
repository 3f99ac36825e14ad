package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDebtRequest entrada para una deuda simple (sin llegada).
type CreateDebtRequest struct {
	SupplierID string          `json:"supplier_id" validate:"required"`
	Amount     decimal.Decimal `json:"amount"`
	DueDate    *time.Time      `json:"due_date"`
	Comment    string          `json:"comment"`
}

// PayDebtRequest pago parcial o total de una deuda.
type PayDebtRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// DebtResponse salida de una deuda.
type DebtResponse struct {
	ID              string          `json:"id"`
	ArrivalID       *string         `json:"arrival_id,omitempty"`
	SupplierID      string          `json:"supplier_id"`
	SupplierName    string          `json:"supplier_name"`
	Amount          decimal.Decimal `json:"amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	Status          string          `json:"status"`
	DueDate         *time.Time      `json:"due_date,omitempty"`
	Comment         string          `json:"comment"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// DebtListResponse lista paginada de deudas.
type DebtListResponse struct {
	Items []DebtResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// DeleteDebtResponse resultado de eliminar una deuda. Refund presente si hubo pagos.
type DeleteDebtResponse struct {
	DebtID string           `json:"debt_id"`
	Refund *decimal.Decimal `json:"refund,omitempty"`
}
