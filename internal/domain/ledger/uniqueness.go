package ledger

import (
	"strings"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// CheckUniqueness devuelve los seriales candidatos que colisionan con llegadas existentes.
//
// Regla blanda (no es unicidad global estricta): un serial que ya figura en otra llegada solo
// puede reutilizarse cuando la deuda de esa llegada está pagada Y un recibo activo vendió ese
// serial, es decir, cuando el ciclo de negocio de la unidad anterior terminó (reventa del mismo
// equipo físico). Una llegada sin deuda vinculada cuenta como no pagada. Un serial repetido
// dentro de los propios candidatos también colisiona.
//
// excludeArrivalID permite validar la edición de una llegada contra el resto.
func CheckUniqueness(candidates []string, arrivals []entity.Arrival, debts []entity.Debt, receipts []entity.Receipt, excludeArrivalID string) []string {
	holders := make(map[string][]string) // serial -> llegadas que lo contienen
	for _, a := range arrivals {
		if excludeArrivalID != "" && a.ID == excludeArrivalID {
			continue
		}
		for _, l := range a.Lines {
			for _, raw := range l.SerialNumbers {
				sn := strings.TrimSpace(raw)
				if sn != "" {
					holders[sn] = append(holders[sn], a.ID)
				}
			}
		}
	}
	settled := ReconciledArrivals(debts)
	sold := SoldSerials(receipts)

	var collisions []string
	reported := make(map[string]struct{})
	seen := make(map[string]struct{}, len(candidates))
	report := func(sn string) {
		if _, ok := reported[sn]; ok {
			return
		}
		reported[sn] = struct{}{}
		collisions = append(collisions, sn)
	}

	for _, raw := range candidates {
		sn := strings.TrimSpace(raw)
		if sn == "" {
			continue
		}
		if _, dup := seen[sn]; dup {
			report(sn)
			continue
		}
		seen[sn] = struct{}{}
		_, wasSold := sold[sn]
		for _, arrivalID := range holders[sn] {
			if !settled[arrivalID] || !wasSold {
				report(sn)
				break
			}
		}
	}
	return collisions
}

// BarcodeConflict código de barras ya usado por otro producto o tipo.
type BarcodeConflict struct {
	Barcode             string
	ProductName         string
	ExistingProductName string
	ExistingKind        entity.ItemKind
}

// CheckBarcodeConflicts detecta líneas cuyo código de barras ya identifica a un producto distinto
// (otro nombre normalizado u otro tipo), en llegadas existentes o entre las propias líneas.
func CheckBarcodeConflicts(lines []entity.ArrivalLine, arrivals []entity.Arrival, excludeArrivalID string) []BarcodeConflict {
	type owner struct {
		key  entity.StockKey
		name string
	}
	owners := make(map[string]owner)
	register := func(l entity.ArrivalLine) {
		key := KeyOf(l)
		if key.Barcode == "" {
			return
		}
		if _, ok := owners[key.Barcode]; !ok {
			owners[key.Barcode] = owner{key: key, name: l.ProductName}
		}
	}
	for _, a := range sortedArrivals(arrivals) {
		if excludeArrivalID != "" && a.ID == excludeArrivalID {
			continue
		}
		for _, l := range a.Lines {
			register(l)
		}
	}

	var conflicts []BarcodeConflict
	for _, l := range lines {
		key := KeyOf(l)
		if key.Barcode == "" {
			continue
		}
		o, ok := owners[key.Barcode]
		if !ok {
			register(l)
			continue
		}
		if o.key.ProductName != key.ProductName || o.key.Kind != key.Kind {
			conflicts = append(conflicts, BarcodeConflict{
				Barcode:             key.Barcode,
				ProductName:         l.ProductName,
				ExistingProductName: o.name,
				ExistingKind:        o.key.Kind,
			})
		}
	}
	return conflicts
}
