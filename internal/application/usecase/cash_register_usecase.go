package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// CashRegisterUseCase consulta de movimientos de caja (solo lectura; los escribe el libro de deudas).
type CashRegisterUseCase struct {
	repo repository.CashRegisterRepository
}

// NewCashRegisterUseCase construye el caso de uso.
func NewCashRegisterUseCase(repo repository.CashRegisterRepository) *CashRegisterUseCase {
	return &CashRegisterUseCase{repo: repo}
}

// List lista movimientos en el rango [from, to) con paginación.
func (uc *CashRegisterUseCase) List(ctx context.Context, from, to *time.Time, limit, offset int) (*dto.CashEntryListResponse, error) {
	list, err := uc.repo.List(ctx, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CashEntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, dto.CashEntryResponse{
			ID:        e.ID,
			Type:      e.Type,
			Amount:    e.Amount,
			DebtID:    e.DebtID,
			Reason:    e.Reason,
			CreatedBy: e.CreatedBy,
			CreatedAt: e.CreatedAt,
		})
	}
	return &dto.CashEntryListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Summary totales de caja; Balance = créditos - débitos.
func (uc *CashRegisterUseCase) Summary(ctx context.Context, from, to *time.Time) (*dto.CashSummaryResponse, error) {
	sum, err := uc.repo.Summary(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.CashSummaryResponse{
		Credits: sum.Credits,
		Debits:  sum.Debits,
		Balance: sum.Credits.Sub(sum.Debits),
	}, nil
}
