package entity

import "github.com/shopspring/decimal"

// StockKey clave compuesta para agrupar unidades fungibles: mismo nombre, código de barras y tipo.
// El nombre se compara normalizado (espacios colapsados, NFC, sin distinguir mayúsculas), así que
// "Funda  Silicona" y "funda silicona" caen en el mismo grupo.
// Construir siempre con ledger.NewStockKey.
type StockKey struct {
	ProductName string
	Barcode     string
	Kind        ItemKind
}

// UnitSource remanente de una línea de llegada que forma parte de una unidad disponible.
type UnitSource struct {
	ArrivalID     string
	ArrivalLineID string
	Quantity      int
	UnitPrice     decimal.Decimal
	UnitCost      decimal.Decimal
}

// AvailableUnit registro derivado (nunca persistido) de stock vendible.
// Técnicos: una unidad por serial (Quantity = 1). Fungibles: cantidad agrupada por StockKey.
type AvailableUnit struct {
	Key           StockKey
	ProductID     string
	ProductName   string
	Barcode       string
	Kind          ItemKind
	Quantity      int
	SerialNumber  string
	ArrivalID     string // primera fuente (FIFO) en agrupados
	ArrivalLineID string
	UnitPrice     decimal.Decimal
	UnitCost      decimal.Decimal
	Sources       []UnitSource
}
