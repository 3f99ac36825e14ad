package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// WeightedUnitCost costo unitario promedio ponderado por el remanente de cada fuente:
// Σ(cantidad × costo) / Σ cantidad. Sin cantidad devuelve cero.
func WeightedUnitCost(sources []entity.UnitSource) decimal.Decimal {
	total := decimal.Zero
	qty := int64(0)
	for _, s := range sources {
		if s.Quantity <= 0 {
			continue
		}
		q := int64(s.Quantity)
		total = total.Add(s.UnitCost.Mul(decimal.NewFromInt(q)))
		qty += q
	}
	if qty == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(qty))
}
