package ledger

import (
	"strings"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// ValidateArrivalLine verifica las invariantes de una línea de llegada:
// cantidad >= 1, tipo válido, costo y precio no negativos con a lo sumo MoneyScale decimales y, para técnicos, Quantity == len(SerialNumbers)
// con seriales no vacíos y únicos dentro de la línea.
func ValidateArrivalLine(l entity.ArrivalLine) error {
	if !l.Kind.Valid() || l.Quantity < 1 || strings.TrimSpace(l.ProductName) == "" {
		return domain.ErrInvalidInput
	}
	if l.UnitCost.IsNegative() || l.UnitPrice.IsNegative() || !ValidMoney(l.UnitCost) || !ValidMoney(l.UnitPrice) {
		return domain.ErrInvalidInput
	}
	if l.Kind != entity.KindTechnical {
		if len(l.SerialNumbers) > 0 {
			return domain.ErrInvalidInput
		}
		return nil
	}
	if len(l.SerialNumbers) != l.Quantity {
		return domain.ErrInvalidInput
	}
	seen := make(map[string]struct{}, len(l.SerialNumbers))
	for _, raw := range l.SerialNumbers {
		sn := strings.TrimSpace(raw)
		if sn == "" {
			return domain.ErrInvalidInput
		}
		if _, dup := seen[sn]; dup {
			return &domain.DuplicateSerialError{Serials: []string{sn}}
		}
		seen[sn] = struct{}{}
	}
	return nil
}

// CandidateSerials junta los seriales de todas las líneas técnicas.
func CandidateSerials(lines []entity.ArrivalLine) []string {
	var out []string
	for _, l := range lines {
		if l.Kind == entity.KindTechnical {
			out = append(out, l.SerialNumbers...)
		}
	}
	return out
}
