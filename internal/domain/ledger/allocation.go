package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// SaleRequest línea solicitada por el vendedor.
// Técnicos: SerialNumber (ArrivalLineID opcional, se valida si viene).
// Fungibles: ArrivalLineID de cualquier fuente del grupo y Quantity.
type SaleRequest struct {
	ArrivalLineID string
	SerialNumber  string
	Quantity      int
	Price         *decimal.Decimal // nil = precio de la unidad disponible
}

// AllocateSale convierte las solicitudes en líneas de recibo contra las unidades disponibles.
// Los fungibles se reparten FIFO entre las fuentes del grupo, por eso una solicitud puede
// producir varias líneas. Falla con ErrInsufficientStock si algo no está disponible.
func AllocateSale(units []entity.AvailableUnit, requests []SaleRequest) ([]entity.ReceiptLine, error) {
	if len(requests) == 0 {
		return nil, domain.ErrInvalidInput
	}
	bySerial := make(map[string]entity.AvailableUnit)
	groupByLine := make(map[string]int)
	remaining := make([][]int, len(units))
	for i, u := range units {
		if u.Kind == entity.KindTechnical {
			bySerial[u.SerialNumber] = u
			continue
		}
		remaining[i] = make([]int, len(u.Sources))
		for j, s := range u.Sources {
			groupByLine[s.ArrivalLineID] = i
			remaining[i][j] = s.Quantity
		}
	}

	var lines []entity.ReceiptLine
	for _, req := range requests {
		if req.Price != nil && (req.Price.IsNegative() || !ValidMoney(*req.Price)) {
			return nil, domain.ErrInvalidInput
		}
		sn := strings.TrimSpace(req.SerialNumber)
		if sn != "" {
			u, ok := bySerial[sn]
			if !ok || (req.ArrivalLineID != "" && req.ArrivalLineID != u.ArrivalLineID) {
				return nil, domain.ErrInsufficientStock
			}
			delete(bySerial, sn)
			lines = append(lines, entity.ReceiptLine{
				ArrivalLineID: u.ArrivalLineID,
				ProductName:   u.ProductName,
				SerialNumber:  sn,
				Quantity:      1,
				Price:         priceOr(req.Price, u.UnitPrice),
			})
			continue
		}

		if req.Quantity <= 0 || req.ArrivalLineID == "" {
			return nil, domain.ErrInvalidInput
		}
		gi, ok := groupByLine[req.ArrivalLineID]
		if !ok {
			return nil, domain.ErrInsufficientStock
		}
		g := units[gi]
		total := 0
		for _, q := range remaining[gi] {
			total += q
		}
		if total < req.Quantity {
			return nil, domain.ErrInsufficientStock
		}
		need := req.Quantity
		for j, s := range g.Sources {
			if need == 0 {
				break
			}
			take := remaining[gi][j]
			if take == 0 {
				continue
			}
			if take > need {
				take = need
			}
			remaining[gi][j] -= take
			need -= take
			lines = append(lines, entity.ReceiptLine{
				ArrivalLineID: s.ArrivalLineID,
				ProductName:   g.ProductName,
				Barcode:       g.Barcode,
				Quantity:      take,
				Price:         priceOr(req.Price, g.UnitPrice),
				IsAccessory:   g.Kind == entity.KindAccessory,
				IsService:     g.Kind == entity.KindService,
			})
		}
	}
	return lines, nil
}

func priceOr(p *decimal.Decimal, def decimal.Decimal) decimal.Decimal {
	if p != nil {
		return *p
	}
	return def
}
