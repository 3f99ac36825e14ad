package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/event"
	domainledger "github.com/jhoicas/backoffice-api/internal/domain/ledger"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

// DebtUseCase libro de deudas con proveedores: pagos, eliminación con reembolso y vencimientos.
// Cada mutación toma el candado de la deuda, bloquea la fila (SELECT FOR UPDATE) y escribe
// deuda y caja en la misma transacción. El evento se publica después del commit.
type DebtUseCase struct {
	txRunner  TxRunner
	locker    DebtLocker
	publisher event.Publisher
	log       *logger.Logger
	now       func() time.Time
}

// NewDebtUseCase construye el caso de uso.
func NewDebtUseCase(txRunner TxRunner, locker DebtLocker, publisher event.Publisher, log *logger.Logger) *DebtUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DebtUseCase{
		txRunner:  txRunner,
		locker:    locker,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

type debtPaidPayload struct {
	DebtID    string          `json:"debt_id"`
	Amount    decimal.Decimal `json:"amount"`
	Remaining decimal.Decimal `json:"remaining"`
	Status    string          `json:"status"`
}

type debtDeletedPayload struct {
	DebtID    string           `json:"debt_id"`
	ArrivalID *string          `json:"arrival_id,omitempty"`
	Refund    *decimal.Decimal `json:"refund,omitempty"`
}

// CreateSimple registra una deuda sin llegada asociada.
func (uc *DebtUseCase) CreateSimple(ctx context.Context, in dto.CreateDebtRequest) (*dto.DebtResponse, error) {
	if in.SupplierID == "" {
		return nil, domain.ErrInvalidInput
	}
	var created entity.Debt
	err := uc.txRunner.Run(ctx, func(s Stores) error {
		supplier, err := s.Suppliers.GetByID(ctx, in.SupplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return domain.ErrNotFound
		}
		d, err := domainledger.NewDebt(uuid.New().String(), supplier.ID, supplier.Name, nil, in.Amount, in.DueDate, uc.now())
		if err != nil {
			return err
		}
		d.Comment = in.Comment
		if err := s.Debts.Create(ctx, &d); err != nil {
			return err
		}
		created = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, event.New(event.DebtCreated, created.ID, toDebtResponse(&created)))
	return toDebtResponse(&created), nil
}

// GetByID obtiene una deuda; nil si no existe.
func (uc *DebtUseCase) GetByID(ctx context.Context, id string) (*dto.DebtResponse, error) {
	var d *entity.Debt
	err := uc.txRunner.RunSnapshot(ctx, func(s Stores) error {
		var err error
		d, err = s.Debts.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toDebtResponse(d), nil
}

// List lista deudas con filtros y paginación.
func (uc *DebtUseCase) List(ctx context.Context, f repository.DebtFilter) (*dto.DebtListResponse, error) {
	var list []*entity.Debt
	err := uc.txRunner.RunSnapshot(ctx, func(s Stores) error {
		var err error
		list, err = s.Debts.List(ctx, f)
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.DebtResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDebtResponse(d))
	}
	return &dto.DebtListResponse{Items: items, Page: dto.PageResponse{Limit: f.Limit, Offset: f.Offset}}, nil
}

// Pay aplica un pago. El pago y el débito de caja se confirman juntos o no se confirma ninguno.
func (uc *DebtUseCase) Pay(ctx context.Context, userID, debtID string, in dto.PayDebtRequest) (*dto.DebtResponse, error) {
	release, err := uc.locker.Lock(ctx, debtID)
	if err != nil {
		return nil, err
	}
	defer release()

	var updated entity.Debt
	err = uc.txRunner.Run(ctx, func(s Stores) error {
		current, err := s.Debts.GetForUpdate(ctx, debtID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		next, err := domainledger.ApplyPayment(*current, in.Amount)
		if err != nil {
			return err
		}
		now := uc.now()
		next.UpdatedAt = now
		if err := s.Debts.Update(ctx, &next, current.RemainingAmount); err != nil {
			return err
		}
		entry := &entity.CashEntry{
			ID:        uuid.New().String(),
			Type:      entity.CashEntryDebit,
			Amount:    in.Amount,
			DebtID:    debtID,
			Reason:    "pago de deuda a " + current.SupplierName,
			CreatedBy: userID,
			CreatedAt: now,
		}
		if err := s.Cash.Create(ctx, entry); err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("debt_id", debtID).
		Str("amount", in.Amount.String()).
		Str("remaining", updated.RemainingAmount.String()).
		Str("status", string(updated.Status)).
		Msg("pago de deuda registrado")
	uc.publish(ctx, event.New(event.DebtPaid, debtID, debtPaidPayload{
		DebtID:    debtID,
		Amount:    in.Amount,
		Remaining: updated.RemainingAmount,
		Status:    string(updated.Status),
	}))
	return toDebtResponse(&updated), nil
}

// Delete elimina una deuda. Falla con ErrArrivalStillReferenced si algún recibo activo
// consume líneas de su llegada. Si hubo pagos se acredita el reembolso en caja.
func (uc *DebtUseCase) Delete(ctx context.Context, userID, debtID string) (*dto.DeleteDebtResponse, error) {
	release, err := uc.locker.Lock(ctx, debtID)
	if err != nil {
		return nil, err
	}
	defer release()

	var out dto.DeleteDebtResponse
	var arrivalID *string
	err = uc.txRunner.Run(ctx, func(s Stores) error {
		// Orden de candados: stock y luego la fila de la deuda, igual que al eliminar llegadas.
		if err := s.Receipts.LockStock(ctx); err != nil {
			return err
		}
		d, err := s.Debts.GetForUpdate(ctx, debtID)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrNotFound
		}
		refund, err := deleteDebtInTx(ctx, s, d, userID, uc.now())
		if err != nil {
			return err
		}
		arrivalID = d.ArrivalID
		out = dto.DeleteDebtResponse{DebtID: d.ID}
		if refund != nil {
			amount := refund.Amount
			out.Refund = &amount
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ev := uc.log.Info().Str("debt_id", debtID)
	if out.Refund != nil {
		ev = ev.Str("refund", out.Refund.String())
	}
	ev.Msg("deuda eliminada")
	uc.publish(ctx, event.New(event.DebtDeleted, debtID, debtDeletedPayload{
		DebtID:    debtID,
		ArrivalID: arrivalID,
		Refund:    out.Refund,
	}))
	return &out, nil
}

// deleteDebtInTx verifica la precondición, borra la deuda y acredita el reembolso.
// Compartido con la eliminación de llegadas. El llamador ya tomó LockStock en la misma transacción.
func deleteDebtInTx(ctx context.Context, s Stores, d *entity.Debt, userID string, now time.Time) (*entity.RefundEvent, error) {
	if d.ArrivalID != nil {
		arrival, err := s.Arrivals.GetByID(ctx, *d.ArrivalID)
		if err != nil {
			return nil, err
		}
		if arrival != nil {
			lineIDs := arrivalLineIDs(arrival)
			receipts, err := s.Receipts.ListReferencing(ctx, lineIDs)
			if err != nil {
				return nil, err
			}
			if err := domainledger.EnsureDebtDeletable(*d, lineIDs, receipts); err != nil {
				return nil, err
			}
		}
	}
	if err := s.Debts.Delete(ctx, d.ID); err != nil {
		return nil, err
	}
	refund := domainledger.DeleteDebt(*d)
	if refund == nil {
		return nil, nil
	}
	entry := &entity.CashEntry{
		ID:        uuid.New().String(),
		Type:      entity.CashEntryCredit,
		Amount:    refund.Amount,
		DebtID:    refund.DebtID,
		Reason:    "reembolso por eliminación de deuda con " + d.SupplierName,
		CreatedBy: userID,
		CreatedAt: now,
	}
	if err := s.Cash.Create(ctx, entry); err != nil {
		return nil, err
	}
	return refund, nil
}

// MarkOverdue pasa a overdue las deudas vencidas. Devuelve cuántas cambiaron.
func (uc *DebtUseCase) MarkOverdue(ctx context.Context) (int, error) {
	now := uc.now()
	var changed []entity.Debt
	err := uc.txRunner.Run(ctx, func(s Stores) error {
		candidates, err := s.Debts.ListOverdueCandidates(ctx, now)
		if err != nil {
			return err
		}
		for _, d := range candidates {
			next, ok := domainledger.MarkOverdue(d, now)
			if !ok {
				continue
			}
			next.UpdatedAt = now
			if err := s.Debts.Update(ctx, &next, d.RemainingAmount); err != nil {
				return err
			}
			changed = append(changed, next)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if len(changed) == 0 {
		return 0, nil
	}
	events := make([]event.Event, 0, len(changed))
	for i := range changed {
		events = append(events, event.New(event.DebtOverdue, changed[i].ID, toDebtResponse(&changed[i])))
	}
	uc.publish(ctx, events...)
	uc.log.Info().Int("count", len(changed)).Msg("deudas marcadas como vencidas")
	return len(changed), nil
}

func (uc *DebtUseCase) publish(ctx context.Context, events ...event.Event) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, events...); err != nil {
		uc.log.Warn().Err(err).Msg("publicar eventos de deuda")
	}
}

func arrivalLineIDs(a *entity.Arrival) []string {
	ids := make([]string, 0, len(a.Lines))
	for _, l := range a.Lines {
		ids = append(ids, l.ID)
	}
	return ids
}
