package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemKind tipo de artículo de una línea de llegada.
type ItemKind string

const (
	KindTechnical ItemKind = "technical" // serializado: una unidad por número de serie (IMEI, etc.)
	KindAccessory ItemKind = "accessory" // fungible, con código de barras opcional
	KindService   ItemKind = "service"   // no físico, fungible para disponibilidad
)

// Valid indica si el tipo es uno de los soportados.
func (k ItemKind) Valid() bool {
	switch k {
	case KindTechnical, KindAccessory, KindService:
		return true
	}
	return false
}

// Fungible indica si el tipo se controla por cantidad y no por serial.
func (k ItemKind) Fungible() bool {
	return k == KindAccessory || k == KindService
}

// Arrival representa una entrega de mercancía de un proveedor (cabecera).
type Arrival struct {
	ID           string
	SupplierID   string
	SupplierName string
	Date         time.Time
	Comment      string
	Lines        []ArrivalLine
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ArrivalLine es un lote comprado de un producto en una llegada.
// ID es estable (sobrevive a ediciones) y es el identificador que referencian las líneas de recibo.
type ArrivalLine struct {
	ID            string
	ArrivalID     string
	ProductID     string
	ProductName   string
	Kind          ItemKind
	Quantity      int
	UnitPrice     decimal.Decimal // precio de venta sugerido
	UnitCost      decimal.Decimal // costo de compra
	Barcode       string          // solo accesorios
	SerialNumbers []string        // solo técnicos; len == Quantity
}

// TotalCost devuelve Quantity * UnitCost.
func (l ArrivalLine) TotalCost() decimal.Decimal {
	return l.UnitCost.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// TotalCost suma el costo de todas las líneas (monto de la deuda asociada).
func (a Arrival) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, l := range a.Lines {
		total = total.Add(l.TotalCost())
	}
	return total
}
