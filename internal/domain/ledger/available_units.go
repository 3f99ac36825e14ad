package ledger

import (
	"sort"
	"strings"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// AvailabilityOptions parámetros de política para el cálculo de disponibilidad.
type AvailabilityOptions struct {
	// ReconciledArrivals IDs de llegadas cuya deuda está pagada (ver ReconciledArrivals).
	ReconciledArrivals map[string]bool
	// IncludeReconciled permite vender inventario de llegadas financieramente cerradas.
	IncludeReconciled bool
}

// OrphanedReference línea de recibo activa que apunta a una línea de llegada inexistente.
// No es un error: se excluye del resultado y el caso de uso la registra en el log.
type OrphanedReference struct {
	ReceiptID     string
	ReceiptLineID string
	ArrivalLineID string
	SerialNumber  string
	Quantity      int
}

// AvailabilityResult resultado del reductor.
type AvailabilityResult struct {
	Units   []entity.AvailableUnit
	Orphans []OrphanedReference
}

// consumption consumo acumulado de los recibos no cancelados.
type consumption struct {
	soldSerials map[string]struct{}
	consumedQty map[string]int
	orphans     []OrphanedReference
}

// ReconciledArrivals devuelve el conjunto de llegadas cuya deuda vinculada está pagada.
func ReconciledArrivals(debts []entity.Debt) map[string]bool {
	out := make(map[string]bool)
	for _, d := range debts {
		if d.ArrivalID != nil && d.Status == entity.DebtStatusPaid {
			out[*d.ArrivalID] = true
		}
	}
	return out
}

// SoldSerials devuelve todos los seriales presentes en líneas de recibos no cancelados.
func SoldSerials(receipts []entity.Receipt) map[string]struct{} {
	return tally(receipts, nil).soldSerials
}

// ComputeAvailableUnits reconstruye las unidades vendibles a partir de llegadas menos recibos.
// Función pura y determinista: el mismo snapshot produce siempre la misma salida (ordenada).
//
//  1. Técnicos: una unidad por serial de la línea que no aparezca en ningún recibo activo.
//  2. Accesorios/servicios: Quantity - consumido por ID de línea; solo si el remanente es > 0.
//  3. Los fungibles con la misma StockKey se agrupan en una sola unidad (suma de remanentes).
//  4. Opcional: se omiten llegadas con deuda pagada salvo opts.IncludeReconciled.
//
// Los seriales vendidos se cuentan globalmente: un serial reutilizado en una llegada nueva
// no aparece disponible mientras algún recibo activo lo tenga.
func ComputeAvailableUnits(arrivals []entity.Arrival, receipts []entity.Receipt, opts AvailabilityOptions) AvailabilityResult {
	lineIDs := make(map[string]struct{})
	for _, a := range arrivals {
		for _, l := range a.Lines {
			lineIDs[l.ID] = struct{}{}
		}
	}
	c := tally(receipts, lineIDs)

	var units []entity.AvailableUnit
	groups := make(map[entity.StockKey]*entity.AvailableUnit)
	var groupOrder []entity.StockKey

	for _, a := range sortedArrivals(arrivals) {
		if !opts.IncludeReconciled && opts.ReconciledArrivals[a.ID] {
			continue
		}
		for _, l := range a.Lines {
			switch {
			case l.Kind == entity.KindTechnical:
				units = append(units, technicalUnits(a, l, c.soldSerials)...)
			case l.Kind.Fungible():
				remaining := l.Quantity - c.consumedQty[l.ID]
				if remaining <= 0 {
					continue
				}
				key := KeyOf(l)
				g, ok := groups[key]
				if !ok {
					g = &entity.AvailableUnit{
						Key:           key,
						ProductID:     l.ProductID,
						ProductName:   l.ProductName,
						Barcode:       key.Barcode,
						Kind:          l.Kind,
						ArrivalID:     a.ID,
						ArrivalLineID: l.ID,
					}
					groups[key] = g
					groupOrder = append(groupOrder, key)
				}
				g.Quantity += remaining
				// precio de la fuente más reciente
				g.UnitPrice = l.UnitPrice
				g.Sources = append(g.Sources, entity.UnitSource{
					ArrivalID:     a.ID,
					ArrivalLineID: l.ID,
					Quantity:      remaining,
					UnitPrice:     l.UnitPrice,
					UnitCost:      l.UnitCost,
				})
			}
		}
	}
	for _, key := range groupOrder {
		groups[key].UnitCost = WeightedUnitCost(groups[key].Sources)
		units = append(units, *groups[key])
	}
	sortUnits(units)
	return AvailabilityResult{Units: units, Orphans: c.orphans}
}

func technicalUnits(a entity.Arrival, l entity.ArrivalLine, sold map[string]struct{}) []entity.AvailableUnit {
	key := KeyOf(l)
	seen := make(map[string]struct{}, len(l.SerialNumbers))
	out := make([]entity.AvailableUnit, 0, len(l.SerialNumbers))
	for _, raw := range l.SerialNumbers {
		sn := strings.TrimSpace(raw)
		if sn == "" {
			continue
		}
		if _, dup := seen[sn]; dup {
			continue
		}
		seen[sn] = struct{}{}
		if _, isSold := sold[sn]; isSold {
			continue
		}
		out = append(out, entity.AvailableUnit{
			Key:           key,
			ProductID:     l.ProductID,
			ProductName:   l.ProductName,
			Kind:          entity.KindTechnical,
			Quantity:      1,
			SerialNumber:  sn,
			ArrivalID:     a.ID,
			ArrivalLineID: l.ID,
			UnitPrice:     l.UnitPrice,
			UnitCost:      l.UnitCost,
			Sources: []entity.UnitSource{{
				ArrivalID:     a.ID,
				ArrivalLineID: l.ID,
				Quantity:      1,
				UnitPrice:     l.UnitPrice,
				UnitCost:      l.UnitCost,
			}},
		})
	}
	return out
}

// tally recorre los recibos no cancelados. Si lineIDs es nil no se detectan huérfanos.
func tally(receipts []entity.Receipt, lineIDs map[string]struct{}) consumption {
	c := consumption{
		soldSerials: make(map[string]struct{}),
		consumedQty: make(map[string]int),
	}
	for _, r := range receipts {
		if !r.Active() {
			continue
		}
		for _, rl := range r.Lines {
			sn := strings.TrimSpace(rl.SerialNumber)
			if sn != "" {
				c.soldSerials[sn] = struct{}{}
			} else if rl.Quantity > 0 {
				c.consumedQty[rl.ArrivalLineID] += rl.Quantity
			}
			if lineIDs == nil {
				continue
			}
			if _, ok := lineIDs[rl.ArrivalLineID]; !ok {
				c.orphans = append(c.orphans, OrphanedReference{
					ReceiptID:     r.ID,
					ReceiptLineID: rl.ID,
					ArrivalLineID: rl.ArrivalLineID,
					SerialNumber:  sn,
					Quantity:      rl.Quantity,
				})
			}
		}
	}
	return c
}

// sortedArrivals copia ordenada por fecha e ID (orden FIFO de las fuentes).
func sortedArrivals(arrivals []entity.Arrival) []entity.Arrival {
	out := make([]entity.Arrival, len(arrivals))
	copy(out, arrivals)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func sortUnits(units []entity.AvailableUnit) {
	sort.SliceStable(units, func(i, j int) bool {
		a, b := units[i], units[j]
		if a.Key.ProductName != b.Key.ProductName {
			return a.Key.ProductName < b.Key.ProductName
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Barcode != b.Barcode {
			return a.Barcode < b.Barcode
		}
		if a.SerialNumber != b.SerialNumber {
			return a.SerialNumber < b.SerialNumber
		}
		return a.ArrivalLineID < b.ArrivalLineID
	})
}
