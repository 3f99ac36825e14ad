package dto

import "github.com/shopspring/decimal"

// UnitSourceResponse línea de llegada que aporta a una unidad agrupada.
type UnitSourceResponse struct {
	ArrivalID     string          `json:"arrival_id"`
	ArrivalLineID string          `json:"arrival_line_id"`
	Quantity      int             `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
}

// AvailableUnitResponse unidad vendible.
type AvailableUnitResponse struct {
	ProductID     string               `json:"product_id,omitempty"`
	ProductName   string               `json:"product_name"`
	Barcode       string               `json:"barcode,omitempty"`
	Kind          string               `json:"kind"`
	Quantity      int                  `json:"quantity"`
	SerialNumber  string               `json:"serial_number,omitempty"`
	ArrivalID     string               `json:"arrival_id"`
	ArrivalLineID string               `json:"arrival_line_id"`
	UnitPrice     decimal.Decimal      `json:"unit_price"`
	UnitCost      decimal.Decimal      `json:"unit_cost"`
	Sources       []UnitSourceResponse `json:"sources,omitempty"`
}

// AvailabilityResponse disponibilidad calculada. Orphans cuenta líneas de recibo sin llegada.
type AvailabilityResponse struct {
	Items   []AvailableUnitResponse `json:"items"`
	Orphans int                     `json:"orphans"`
}

// SerialCheckRequest verifica seriales y códigos de barras antes de registrar una llegada.
type SerialCheckRequest struct {
	SerialNumbers    []string             `json:"serial_numbers" validate:"omitempty,dive,max=64"`
	Lines            []ArrivalLineRequest `json:"lines" validate:"omitempty,dive"`
	ExcludeArrivalID string               `json:"exclude_arrival_id"`
}

// BarcodeConflictResponse código de barras ya usado por otro producto.
type BarcodeConflictResponse struct {
	Barcode             string `json:"barcode"`
	ProductName         string `json:"product_name"`
	ExistingProductName string `json:"existing_product_name"`
	ExistingKind        string `json:"existing_kind"`
}

// SerialCheckResponse resultado de la verificación.
type SerialCheckResponse struct {
	OK               bool                      `json:"ok"`
	Duplicates       []string                  `json:"duplicates"`
	BarcodeConflicts []BarcodeConflictResponse `json:"barcode_conflicts"`
}
