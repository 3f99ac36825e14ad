package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptLineRequest línea solicitada. Técnicos: serial_number; fungibles: arrival_line_id + quantity.
type ReceiptLineRequest struct {
	ArrivalLineID string           `json:"arrival_line_id"`
	SerialNumber  string           `json:"serial_number" validate:"max=64"`
	Quantity      int              `json:"quantity" validate:"min=0"`
	Price         *decimal.Decimal `json:"price"`
}

// CreateReceiptRequest entrada para crear un recibo de venta.
type CreateReceiptRequest struct {
	Number  string               `json:"number" validate:"max=50"`
	Date    *time.Time           `json:"date"`
	Comment string               `json:"comment"`
	Lines   []ReceiptLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// ReceiptLineResponse salida de una línea de recibo.
type ReceiptLineResponse struct {
	ID            string          `json:"id"`
	ArrivalLineID string          `json:"arrival_line_id"`
	ProductName   string          `json:"product_name"`
	Barcode       string          `json:"barcode,omitempty"`
	SerialNumber  string          `json:"serial_number,omitempty"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	IsAccessory   bool            `json:"is_accessory"`
	IsService     bool            `json:"is_service"`
}

// ReceiptResponse salida de un recibo.
type ReceiptResponse struct {
	ID        string                `json:"id"`
	Number    string                `json:"number"`
	Status    string                `json:"status"`
	Date      time.Time             `json:"date"`
	Comment   string                `json:"comment"`
	Total     decimal.Decimal       `json:"total"`
	Lines     []ReceiptLineResponse `json:"lines"`
	CreatedBy string                `json:"created_by"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// ReceiptListResponse lista paginada de recibos.
type ReceiptListResponse struct {
	Items []ReceiptResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
