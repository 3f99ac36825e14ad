package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/event"
	domainledger "github.com/jhoicas/backoffice-api/internal/domain/ledger"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

// ReceiptUseCase ventas: crea recibos contra la disponibilidad calculada y gestiona su estado.
type ReceiptUseCase struct {
	txRunner  TxRunner
	publisher event.Publisher
	log       *logger.Logger
	now       func() time.Time
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(txRunner TxRunner, publisher event.Publisher, log *logger.Logger) *ReceiptUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ReceiptUseCase{txRunner: txRunner, publisher: publisher, log: log, now: time.Now}
}

// Create toma el candado de stock, recalcula la disponibilidad dentro de la misma transacción,
// asigna las unidades pedidas y guarda el recibo. Dos ventas concurrentes no pueden
// consumir la misma unidad.
func (uc *ReceiptUseCase) Create(ctx context.Context, userID string, includeReconciled bool, in dto.CreateReceiptRequest) (*dto.ReceiptResponse, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	requests := make([]domainledger.SaleRequest, 0, len(in.Lines))
	for _, l := range in.Lines {
		if l.Price != nil && l.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		requests = append(requests, domainledger.SaleRequest{
			ArrivalLineID: strings.TrimSpace(l.ArrivalLineID),
			SerialNumber:  strings.TrimSpace(l.SerialNumber),
			Quantity:      l.Quantity,
			Price:         l.Price,
		})
	}

	now := uc.now()
	receipt := entity.Receipt{
		ID:        uuid.New().String(),
		Number:    strings.TrimSpace(in.Number),
		Status:    entity.ReceiptStatusNew,
		Date:      now,
		Comment:   in.Comment,
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Date != nil {
		receipt.Date = *in.Date
	}
	if receipt.Number == "" {
		receipt.Number = fmt.Sprintf("R-%s-%s", now.Format("20060102"), receipt.ID[:8])
	}

	err := uc.txRunner.Run(ctx, func(s Stores) error {
		if err := s.Receipts.LockStock(ctx); err != nil {
			return err
		}
		res, err := ComputeInTx(ctx, s, includeReconciled)
		if err != nil {
			return err
		}
		lines, err := domainledger.AllocateSale(res.Units, requests)
		if err != nil {
			return err
		}
		total := decimal.Zero
		for i := range lines {
			lines[i].ID = uuid.New().String()
			lines[i].ReceiptID = receipt.ID
			total = total.Add(lines[i].Subtotal())
		}
		receipt.Lines = lines
		receipt.Total = total
		return s.Receipts.Create(ctx, &receipt)
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, event.New(event.ReceiptCreated, receipt.ID, map[string]any{
		"number": receipt.Number,
		"total":  receipt.Total,
	}))
	uc.log.Info().Str("receipt_id", receipt.ID).Str("total", receipt.Total.String()).Msg("recibo creado")
	return toReceiptResponse(&receipt), nil
}

// Complete marca el recibo como completado.
func (uc *ReceiptUseCase) Complete(ctx context.Context, id string) (*dto.ReceiptResponse, error) {
	return uc.transition(ctx, id, entity.ReceiptStatusCompleted, event.ReceiptCompleted)
}

// Cancel cancela el recibo; sus unidades vuelven a estar disponibles.
func (uc *ReceiptUseCase) Cancel(ctx context.Context, id string) (*dto.ReceiptResponse, error) {
	return uc.transition(ctx, id, entity.ReceiptStatusCancelled, event.ReceiptCancelled)
}

func (uc *ReceiptUseCase) transition(ctx context.Context, id, status, eventType string) (*dto.ReceiptResponse, error) {
	var r *entity.Receipt
	err := uc.txRunner.Run(ctx, func(s Stores) error {
		var err error
		r, err = s.Receipts.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if r == nil {
			return domain.ErrNotFound
		}
		if !r.CanTransitionTo(status) {
			return domain.ErrInvalidTransition
		}
		if err := s.Receipts.UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		r.Status = status
		r.UpdatedAt = uc.now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, event.New(eventType, id, map[string]string{"status": status}))
	return toReceiptResponse(r), nil
}

// GetByID obtiene un recibo; nil si no existe.
func (uc *ReceiptUseCase) GetByID(ctx context.Context, id string) (*dto.ReceiptResponse, error) {
	var r *entity.Receipt
	err := uc.txRunner.RunSnapshot(ctx, func(s Stores) error {
		var err error
		r, err = s.Receipts.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toReceiptResponse(r), nil
}

// List lista recibos, opcionalmente filtrados por estado.
func (uc *ReceiptUseCase) List(ctx context.Context, status string, limit, offset int) (*dto.ReceiptListResponse, error) {
	var list []*entity.Receipt
	err := uc.txRunner.RunSnapshot(ctx, func(s Stores) error {
		var err error
		list, err = s.Receipts.List(ctx, status, limit, offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReceiptResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toReceiptResponse(r))
	}
	return &dto.ReceiptListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

func (uc *ReceiptUseCase) publish(ctx context.Context, events ...event.Event) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, events...); err != nil {
		uc.log.Warn().Err(err).Msg("publicar eventos de recibo")
	}
}
