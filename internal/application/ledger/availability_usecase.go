package ledger

import (
	"context"
	"sync"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain/event"
	domainledger "github.com/jhoicas/backoffice-api/internal/domain/ledger"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

// AvailabilityUseCase calcula las unidades vendibles sobre una lectura consistente y
// mantiene en memoria el último resultado por nivel de acceso. Cualquier evento de dominio
// incrementa la generación e invalida la caché.
type AvailabilityUseCase struct {
	txRunner TxRunner
	log      *logger.Logger

	mu         sync.Mutex
	generation uint64
	cache      map[bool]cachedAvailability
}

type cachedAvailability struct {
	generation uint64
	result     domainledger.AvailabilityResult
}

// NewAvailabilityUseCase construye el caso de uso.
func NewAvailabilityUseCase(txRunner TxRunner, log *logger.Logger) *AvailabilityUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AvailabilityUseCase{
		txRunner: txRunner,
		log:      log,
		cache:    make(map[bool]cachedAvailability),
	}
}

// Available devuelve la disponibilidad actual. includeReconciled solo para roles que pueden
// vender inventario de llegadas ya pagadas.
func (uc *AvailabilityUseCase) Available(ctx context.Context, includeReconciled bool) (*dto.AvailabilityResponse, error) {
	res, err := uc.compute(ctx, includeReconciled)
	if err != nil {
		return nil, err
	}
	return toAvailabilityResponse(res), nil
}

func (uc *AvailabilityUseCase) compute(ctx context.Context, includeReconciled bool) (domainledger.AvailabilityResult, error) {
	uc.mu.Lock()
	gen := uc.generation
	if c, ok := uc.cache[includeReconciled]; ok && c.generation == gen {
		uc.mu.Unlock()
		return c.result, nil
	}
	uc.mu.Unlock()

	var res domainledger.AvailabilityResult
	err := uc.txRunner.RunSnapshot(ctx, func(s Stores) error {
		var err error
		res, err = ComputeInTx(ctx, s, includeReconciled)
		return err
	})
	if err != nil {
		return domainledger.AvailabilityResult{}, err
	}
	uc.logOrphans(res.Orphans)

	uc.mu.Lock()
	// Si llegó un evento durante el cálculo el resultado ya no es vigente: no se guarda.
	if uc.generation == gen {
		uc.cache[includeReconciled] = cachedAvailability{generation: gen, result: res}
	}
	uc.mu.Unlock()
	return res, nil
}

// Invalidate descarta la caché.
func (uc *AvailabilityUseCase) Invalidate() {
	uc.mu.Lock()
	uc.generation++
	uc.mu.Unlock()
}

// HandleEvent handler de eventos: todo cambio en llegadas, recibos o deudas invalida la vista.
func (uc *AvailabilityUseCase) HandleEvent(_ context.Context, e event.Event) error {
	uc.Invalidate()
	uc.log.Debug().Str("event_type", e.Type).Str("aggregate_id", e.AggregateID).Msg("disponibilidad invalidada")
	return nil
}

func (uc *AvailabilityUseCase) logOrphans(orphans []domainledger.OrphanedReference) {
	for _, o := range orphans {
		uc.log.Warn().
			Str("receipt_id", o.ReceiptID).
			Str("receipt_line_id", o.ReceiptLineID).
			Str("arrival_line_id", o.ArrivalLineID).
			Str("serial_number", o.SerialNumber).
			Int("quantity", o.Quantity).
			Msg("línea de recibo sin llegada de origen")
	}
}

// ComputeInTx ejecuta el reductor con los repositorios de la transacción en curso.
func ComputeInTx(ctx context.Context, s Stores, includeReconciled bool) (domainledger.AvailabilityResult, error) {
	arrivals, err := s.Arrivals.ListAll(ctx)
	if err != nil {
		return domainledger.AvailabilityResult{}, err
	}
	receipts, err := s.Receipts.ListAll(ctx)
	if err != nil {
		return domainledger.AvailabilityResult{}, err
	}
	debts, err := s.Debts.ListAll(ctx)
	if err != nil {
		return domainledger.AvailabilityResult{}, err
	}
	return domainledger.ComputeAvailableUnits(arrivals, receipts, domainledger.AvailabilityOptions{
		ReconciledArrivals: domainledger.ReconciledArrivals(debts),
		IncludeReconciled:  includeReconciled,
	}), nil
}
