package http

import (
	"context"
	"time"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// Puertos que los handlers necesitan de la capa de aplicación.

type SupplierService interface {
	Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SupplierResponse, error)
	Update(ctx context.Context, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error)
	List(ctx context.Context, limit, offset int) (*dto.SupplierListResponse, error)
	Delete(ctx context.Context, id string) error
}

type ArrivalService interface {
	Create(ctx context.Context, in dto.CreateArrivalRequest) (*dto.ArrivalResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ArrivalResponse, error)
	List(ctx context.Context, limit, offset int) (*dto.ArrivalListResponse, error)
	Delete(ctx context.Context, userID, id string) (*dto.DeleteArrivalResponse, error)
}

type ReceiptService interface {
	Create(ctx context.Context, userID string, includeReconciled bool, in dto.CreateReceiptRequest) (*dto.ReceiptResponse, error)
	Complete(ctx context.Context, id string) (*dto.ReceiptResponse, error)
	Cancel(ctx context.Context, id string) (*dto.ReceiptResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ReceiptResponse, error)
	List(ctx context.Context, status string, limit, offset int) (*dto.ReceiptListResponse, error)
}

type DebtService interface {
	CreateSimple(ctx context.Context, in dto.CreateDebtRequest) (*dto.DebtResponse, error)
	GetByID(ctx context.Context, id string) (*dto.DebtResponse, error)
	List(ctx context.Context, f repository.DebtFilter) (*dto.DebtListResponse, error)
	Pay(ctx context.Context, userID, debtID string, in dto.PayDebtRequest) (*dto.DebtResponse, error)
	Delete(ctx context.Context, userID, debtID string) (*dto.DeleteDebtResponse, error)
}

type CashRegisterService interface {
	List(ctx context.Context, from, to *time.Time, limit, offset int) (*dto.CashEntryListResponse, error)
	Summary(ctx context.Context, from, to *time.Time) (*dto.CashSummaryResponse, error)
}

type AvailabilityService interface {
	Available(ctx context.Context, includeReconciled bool) (*dto.AvailabilityResponse, error)
}

type SerialCheckService interface {
	Check(ctx context.Context, in dto.SerialCheckRequest) (*dto.SerialCheckResponse, error)
}
