package ledger

import (
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	domainledger "github.com/jhoicas/backoffice-api/internal/domain/ledger"
)

func toDebtResponse(d *entity.Debt) *dto.DebtResponse {
	if d == nil {
		return nil
	}
	return &dto.DebtResponse{
		ID:              d.ID,
		ArrivalID:       d.ArrivalID,
		SupplierID:      d.SupplierID,
		SupplierName:    d.SupplierName,
		Amount:          d.Amount,
		PaidAmount:      d.PaidAmount,
		RemainingAmount: d.RemainingAmount,
		Status:          string(d.Status),
		DueDate:         d.DueDate,
		Comment:         d.Comment,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func toArrivalResponse(a *entity.Arrival, debt *entity.Debt) *dto.ArrivalResponse {
	if a == nil {
		return nil
	}
	lines := make([]dto.ArrivalLineResponse, 0, len(a.Lines))
	for _, l := range a.Lines {
		lines = append(lines, dto.ArrivalLineResponse{
			ID:            l.ID,
			ProductID:     l.ProductID,
			ProductName:   l.ProductName,
			Kind:          string(l.Kind),
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
			UnitCost:      l.UnitCost,
			Barcode:       l.Barcode,
			SerialNumbers: l.SerialNumbers,
		})
	}
	return &dto.ArrivalResponse{
		ID:           a.ID,
		SupplierID:   a.SupplierID,
		SupplierName: a.SupplierName,
		Date:         a.Date,
		Comment:      a.Comment,
		TotalCost:    a.TotalCost(),
		Lines:        lines,
		Debt:         toDebtResponse(debt),
		CreatedAt:    a.CreatedAt,
	}
}

func toReceiptResponse(r *entity.Receipt) *dto.ReceiptResponse {
	if r == nil {
		return nil
	}
	lines := make([]dto.ReceiptLineResponse, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, dto.ReceiptLineResponse{
			ID:            l.ID,
			ArrivalLineID: l.ArrivalLineID,
			ProductName:   l.ProductName,
			Barcode:       l.Barcode,
			SerialNumber:  l.SerialNumber,
			Quantity:      l.Quantity,
			Price:         l.Price,
			Subtotal:      l.Subtotal(),
			IsAccessory:   l.IsAccessory,
			IsService:     l.IsService,
		})
	}
	return &dto.ReceiptResponse{
		ID:        r.ID,
		Number:    r.Number,
		Status:    r.Status,
		Date:      r.Date,
		Comment:   r.Comment,
		Total:     r.Total,
		Lines:     lines,
		CreatedBy: r.CreatedBy,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toAvailabilityResponse(res domainledger.AvailabilityResult) *dto.AvailabilityResponse {
	items := make([]dto.AvailableUnitResponse, 0, len(res.Units))
	for _, u := range res.Units {
		var sources []dto.UnitSourceResponse
		for _, s := range u.Sources {
			sources = append(sources, dto.UnitSourceResponse{
				ArrivalID:     s.ArrivalID,
				ArrivalLineID: s.ArrivalLineID,
				Quantity:      s.Quantity,
				UnitCost:      s.UnitCost,
			})
		}
		items = append(items, dto.AvailableUnitResponse{
			ProductID:     u.ProductID,
			ProductName:   u.ProductName,
			Barcode:       u.Barcode,
			Kind:          string(u.Kind),
			Quantity:      u.Quantity,
			SerialNumber:  u.SerialNumber,
			ArrivalID:     u.ArrivalID,
			ArrivalLineID: u.ArrivalLineID,
			UnitPrice:     u.UnitPrice,
			UnitCost:      u.UnitCost,
			Sources:       sources,
		})
	}
	return &dto.AvailabilityResponse{Items: items, Orphans: len(res.Orphans)}
}
