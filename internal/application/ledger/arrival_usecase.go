package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/event"
	domainledger "github.com/jhoicas/backoffice-api/internal/domain/ledger"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

// ArrivalUseCase registra y elimina llegadas de mercancía junto con su deuda vinculada.
type ArrivalUseCase struct {
	txRunner  TxRunner
	publisher event.Publisher
	log       *logger.Logger
	now       func() time.Time
}

// NewArrivalUseCase construye el caso de uso.
func NewArrivalUseCase(txRunner TxRunner, publisher event.Publisher, log *logger.Logger) *ArrivalUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ArrivalUseCase{txRunner: txRunner, publisher: publisher, log: log, now: time.Now}
}

// Create valida las líneas, verifica seriales y códigos de barras contra el inventario existente
// y guarda llegada y deuda (Amount = costo total) en una sola transacción.
func (uc *ArrivalUseCase) Create(ctx context.Context, in dto.CreateArrivalRequest) (*dto.ArrivalResponse, error) {
	if in.SupplierID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	arrival := entity.Arrival{
		ID:         uuid.New().String(),
		SupplierID: in.SupplierID,
		Date:       now,
		Comment:    in.Comment,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.Date != nil {
		arrival.Date = *in.Date
	}
	for _, l := range in.Lines {
		line := entity.ArrivalLine{
			ID:            uuid.New().String(),
			ArrivalID:     arrival.ID,
			ProductID:     l.ProductID,
			ProductName:   strings.TrimSpace(l.ProductName),
			Kind:          entity.ItemKind(l.Kind),
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
			UnitCost:      l.UnitCost,
			Barcode:       strings.TrimSpace(l.Barcode),
			SerialNumbers: trimAll(l.SerialNumbers),
		}
		if err := domainledger.ValidateArrivalLine(line); err != nil {
			return nil, err
		}
		arrival.Lines = append(arrival.Lines, line)
	}

	var debt *entity.Debt
	err := uc.txRunner.Run(ctx, func(s Stores) error {
		supplier, err := s.Suppliers.GetByID(ctx, in.SupplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return domain.ErrNotFound
		}
		arrival.SupplierName = supplier.Name

		// Mismo candado que las ventas: la verificación de seriales no compite con otra alta.
		if err := s.Receipts.LockStock(ctx); err != nil {
			return err
		}
		arrivals, err := s.Arrivals.ListAll(ctx)
		if err != nil {
			return err
		}
		receipts, err := s.Receipts.ListAll(ctx)
		if err != nil {
			return err
		}
		debts, err := s.Debts.ListAll(ctx)
		if err != nil {
			return err
		}
		if dup := domainledger.CheckUniqueness(domainledger.CandidateSerials(arrival.Lines), arrivals, debts, receipts, ""); len(dup) > 0 {
			return &domain.DuplicateSerialError{Serials: dup}
		}
		if conflicts := domainledger.CheckBarcodeConflicts(arrival.Lines, arrivals, ""); len(conflicts) > 0 {
			c := conflicts[0]
			return fmt.Errorf("%w: código de barras %s ya pertenece a %q", domain.ErrConflict, c.Barcode, c.ExistingProductName)
		}

		if err := s.Arrivals.Create(ctx, &arrival); err != nil {
			return err
		}
		total := arrival.TotalCost()
		if !total.IsPositive() {
			return nil
		}
		arrivalID := arrival.ID
		d, err := domainledger.NewDebt(uuid.New().String(), supplier.ID, supplier.Name, &arrivalID, total, in.DueDate, now)
		if err != nil {
			return err
		}
		d.Comment = "llegada " + arrival.Date.Format("2006-01-02")
		if err := s.Debts.Create(ctx, &d); err != nil {
			return err
		}
		debt = &d
		return nil
	})
	if err != nil {
		return nil, err
	}

	events := []event.Event{event.New(event.ArrivalCreated, arrival.ID, map[string]any{
		"supplier_id": arrival.SupplierID,
		"lines":       len(arrival.Lines),
	})}
	if debt != nil {
		events = append(events, event.New(event.DebtCreated, debt.ID, toDebtResponse(debt)))
	}
	uc.publish(ctx, events...)
	uc.log.Info().Str("arrival_id", arrival.ID).Int("lines", len(arrival.Lines)).Msg("llegada registrada")
	return toArrivalResponse(&arrival, debt), nil
}

// GetByID obtiene una llegada con su deuda; nil si no existe.
func (uc *ArrivalUseCase) GetByID(ctx context.Context, id string) (*dto.ArrivalResponse, error) {
	var out *dto.ArrivalResponse
	err := uc.txRunner.RunSnapshot(ctx, func(s Stores) error {
		a, err := s.Arrivals.GetByID(ctx, id)
		if err != nil || a == nil {
			return err
		}
		d, err := s.Debts.GetByArrival(ctx, id)
		if err != nil {
			return err
		}
		out = toArrivalResponse(a, d)
		return nil
	})
	return out, err
}

// List lista llegadas con paginación (más recientes primero).
func (uc *ArrivalUseCase) List(ctx context.Context, limit, offset int) (*dto.ArrivalListResponse, error) {
	var items []dto.ArrivalResponse
	err := uc.txRunner.RunSnapshot(ctx, func(s Stores) error {
		list, err := s.Arrivals.List(ctx, limit, offset)
		if err != nil {
			return err
		}
		items = make([]dto.ArrivalResponse, 0, len(list))
		for _, a := range list {
			d, err := s.Debts.GetByArrival(ctx, a.ID)
			if err != nil {
				return err
			}
			items = append(items, *toArrivalResponse(a, d))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.ArrivalListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Delete elimina una llegada y su deuda. Bloqueada si algún recibo activo consume sus líneas;
// si la deuda tenía pagos se acredita el reembolso en caja.
func (uc *ArrivalUseCase) Delete(ctx context.Context, userID, id string) (*dto.DeleteArrivalResponse, error) {
	out := dto.DeleteArrivalResponse{ArrivalID: id}
	err := uc.txRunner.Run(ctx, func(s Stores) error {
		// Candado de stock antes de leer referencias: ninguna venta puede consumir la llegada en medio.
		if err := s.Receipts.LockStock(ctx); err != nil {
			return err
		}
		arrival, err := s.Arrivals.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if arrival == nil {
			return domain.ErrNotFound
		}
		receipts, err := s.Receipts.ListReferencing(ctx, arrivalLineIDs(arrival))
		if err != nil {
			return err
		}
		if domainledger.ReferencesAny(receipts, arrivalLineIDs(arrival)) {
			return domain.ErrArrivalStillReferenced
		}
		linked, err := s.Debts.GetByArrival(ctx, id)
		if err != nil {
			return err
		}
		if linked != nil {
			d, err := s.Debts.GetForUpdate(ctx, linked.ID)
			if err != nil {
				return err
			}
			if d != nil {
				refund, err := deleteDebtInTx(ctx, s, d, userID, uc.now())
				if err != nil {
					return err
				}
				out.DebtID = d.ID
				if refund != nil {
					amount := refund.Amount
					out.Refund = &amount
				}
			}
		}
		return s.Arrivals.Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	events := []event.Event{event.New(event.ArrivalDeleted, id, nil)}
	if out.DebtID != "" {
		events = append(events, event.New(event.DebtDeleted, out.DebtID, debtDeletedPayload{
			DebtID:    out.DebtID,
			ArrivalID: &out.ArrivalID,
			Refund:    out.Refund,
		}))
	}
	uc.publish(ctx, events...)
	uc.log.Info().Str("arrival_id", id).Str("debt_id", out.DebtID).Msg("llegada eliminada")
	return &out, nil
}

func (uc *ArrivalUseCase) publish(ctx context.Context, events ...event.Event) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, events...); err != nil {
		uc.log.Warn().Err(err).Msg("publicar eventos de llegada")
	}
}

func trimAll(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.TrimSpace(s))
	}
	return out
}
