package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ArrivalLineRequest línea de una llegada. Técnicos: un serial por unidad.
type ArrivalLineRequest struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name" validate:"required,min=1,max=200"`
	Kind          string          `json:"kind" validate:"required,oneof=technical accessory service"`
	Quantity      int             `json:"quantity" validate:"required,min=1"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	Barcode       string          `json:"barcode" validate:"max=64"`
	SerialNumbers []string        `json:"serial_numbers" validate:"omitempty,dive,required,max=64"`
}

// CreateArrivalRequest entrada para registrar una llegada de mercancía.
// Si el costo total es mayor a cero se crea la deuda vinculada con DueDate opcional.
type CreateArrivalRequest struct {
	SupplierID string               `json:"supplier_id" validate:"required"`
	Date       *time.Time           `json:"date"`
	Comment    string               `json:"comment"`
	DueDate    *time.Time           `json:"due_date"`
	Lines      []ArrivalLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// ArrivalLineResponse salida de una línea de llegada.
type ArrivalLineResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id,omitempty"`
	ProductName   string          `json:"product_name"`
	Kind          string          `json:"kind"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	Barcode       string          `json:"barcode,omitempty"`
	SerialNumbers []string        `json:"serial_numbers,omitempty"`
}

// ArrivalResponse salida de una llegada con su deuda vinculada (si existe).
type ArrivalResponse struct {
	ID           string                `json:"id"`
	SupplierID   string                `json:"supplier_id"`
	SupplierName string                `json:"supplier_name"`
	Date         time.Time             `json:"date"`
	Comment      string                `json:"comment"`
	TotalCost    decimal.Decimal       `json:"total_cost"`
	Lines        []ArrivalLineResponse `json:"lines"`
	Debt         *DebtResponse         `json:"debt,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
}

// ArrivalListResponse lista paginada de llegadas.
type ArrivalListResponse struct {
	Items []ArrivalResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// DeleteArrivalResponse resultado de eliminar una llegada (y su deuda).
type DeleteArrivalResponse struct {
	ArrivalID string           `json:"arrival_id"`
	DebtID    string           `json:"debt_id,omitempty"`
	Refund    *decimal.Decimal `json:"refund,omitempty"`
}
