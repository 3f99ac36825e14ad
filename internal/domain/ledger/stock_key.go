package ledger

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// NewStockKey construye la clave compuesta (nombre, código de barras, tipo) usada para agrupar
// y buscar unidades fungibles. El nombre se normaliza (NFC, espacios colapsados, sin mayúsculas)
// para que "Cable  USB-C" y "cable usb-c" caigan en el mismo grupo.
func NewStockKey(productName, barcode string, kind entity.ItemKind) entity.StockKey {
	return entity.StockKey{
		ProductName: normalizeName(productName),
		Barcode:     strings.TrimSpace(barcode),
		Kind:        kind,
	}
}

// KeyOf devuelve la clave de una línea de llegada.
func KeyOf(l entity.ArrivalLine) entity.StockKey {
	return NewStockKey(l.ProductName, l.Barcode, l.Kind)
}

func normalizeName(s string) string {
	s = norm.NFC.String(s)
	s = strings.Join(strings.Fields(s), " ")
	// cases.Caser no es seguro entre goroutines: uno por llamada.
	return cases.Fold().String(s)
}
