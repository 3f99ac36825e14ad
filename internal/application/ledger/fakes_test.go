package ledger_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/application/ledger"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/event"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Base de datos en memoria: Run trabaja sobre una copia y la confirma solo si fn no falla.
// ──────────────────────────────────────────────────────────────────────────────

var errCashDown = errors.New("caja no disponible")

type state struct {
	suppliers map[string]entity.Supplier
	arrivals  map[string]entity.Arrival
	receipts  map[string]entity.Receipt
	debts     map[string]entity.Debt
	cash      []entity.CashEntry
}

func (s *state) clone() *state {
	c := &state{
		suppliers: make(map[string]entity.Supplier, len(s.suppliers)),
		arrivals:  make(map[string]entity.Arrival, len(s.arrivals)),
		receipts:  make(map[string]entity.Receipt, len(s.receipts)),
		debts:     make(map[string]entity.Debt, len(s.debts)),
		cash:      append([]entity.CashEntry(nil), s.cash...),
	}
	for k, v := range s.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range s.arrivals {
		c.arrivals[k] = v
	}
	for k, v := range s.receipts {
		c.receipts[k] = v
	}
	for k, v := range s.debts {
		c.debts[k] = v
	}
	return c
}

type memDB struct {
	mu        sync.Mutex
	st        *state
	failCash  bool
	snapshots int
	locks     stockLocks
}

// stockLocks registra LockStock y las lecturas de referencias hechas sin el candado.
type stockLocks struct {
	held     bool // candado tomado en la transacción en curso
	taken    int
	unlocked int // ListReferencing sin candado
}

func newMemDB() *memDB {
	return &memDB{st: (&state{}).clone()}
}

var _ ledger.TxRunner = (*memDB)(nil)

func (db *memDB) stores(st *state) ledger.Stores {
	return ledger.Stores{
		Suppliers: supplierRepo{st},
		Arrivals:  arrivalRepo{st},
		Receipts:  receiptRepo{st: st, locks: &db.locks},
		Debts:     debtRepo{st},
		Cash:      cashRepo{st: st, fail: db.failCash},
	}
}

func (db *memDB) Run(_ context.Context, fn func(s ledger.Stores) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	work := db.st.clone()
	db.locks.held = false
	defer func() { db.locks.held = false }()
	if err := fn(db.stores(work)); err != nil {
		return err
	}
	db.st = work
	return nil
}

func (db *memDB) RunSnapshot(_ context.Context, fn func(s ledger.Stores) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.snapshots++
	db.locks.held = false
	return fn(db.stores(db.st.clone()))
}

func (db *memDB) stockLocks() stockLocks {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.locks
}

func (db *memDB) debt(id string) entity.Debt {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.st.debts[id]
}

func (db *memDB) cashEntries() []entity.CashEntry {
	db.mu.Lock()
	defer db.mu.Unlock()
	return append([]entity.CashEntry(nil), db.st.cash...)
}

func (db *memDB) addSupplier(id, name string) {
	db.st.suppliers[id] = entity.Supplier{ID: id, Name: name}
}

// ── repositorios ─────────────────────────────────────────────────────────────

type supplierRepo struct{ st *state }

func (r supplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	r.st.suppliers[s.ID] = *s
	return nil
}

func (r supplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	s, ok := r.st.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r supplierRepo) Update(_ context.Context, s *entity.Supplier) error {
	r.st.suppliers[s.ID] = *s
	return nil
}

func (r supplierRepo) List(_ context.Context, _, _ int) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, s := range r.st.suppliers {
		s := s
		out = append(out, &s)
	}
	return out, nil
}

func (r supplierRepo) Delete(_ context.Context, id string) error {
	delete(r.st.suppliers, id)
	return nil
}

type arrivalRepo struct{ st *state }

func (r arrivalRepo) Create(_ context.Context, a *entity.Arrival) error {
	r.st.arrivals[a.ID] = *a
	return nil
}

func (r arrivalRepo) GetByID(_ context.Context, id string) (*entity.Arrival, error) {
	a, ok := r.st.arrivals[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r arrivalRepo) List(ctx context.Context, limit, offset int) ([]*entity.Arrival, error) {
	all, _ := r.ListAll(ctx)
	sort.Slice(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	var out []*entity.Arrival
	for i := offset; i < len(all) && len(out) < limit; i++ {
		a := all[i]
		out = append(out, &a)
	}
	return out, nil
}

func (r arrivalRepo) ListAll(_ context.Context) ([]entity.Arrival, error) {
	out := make([]entity.Arrival, 0, len(r.st.arrivals))
	for _, a := range r.st.arrivals {
		out = append(out, a)
	}
	return out, nil
}

func (r arrivalRepo) Delete(_ context.Context, id string) error {
	delete(r.st.arrivals, id)
	return nil
}

type receiptRepo struct {
	st    *state
	locks *stockLocks
}

func (r receiptRepo) Create(_ context.Context, rc *entity.Receipt) error {
	r.st.receipts[rc.ID] = *rc
	return nil
}

func (r receiptRepo) GetByID(_ context.Context, id string) (*entity.Receipt, error) {
	rc, ok := r.st.receipts[id]
	if !ok {
		return nil, nil
	}
	return &rc, nil
}

func (r receiptRepo) GetForUpdate(ctx context.Context, id string) (*entity.Receipt, error) {
	return r.GetByID(ctx, id)
}

func (r receiptRepo) List(_ context.Context, status string, _, _ int) ([]*entity.Receipt, error) {
	var out []*entity.Receipt
	for _, rc := range r.st.receipts {
		if status != "" && rc.Status != status {
			continue
		}
		rc := rc
		out = append(out, &rc)
	}
	return out, nil
}

func (r receiptRepo) ListAll(_ context.Context) ([]entity.Receipt, error) {
	out := make([]entity.Receipt, 0, len(r.st.receipts))
	for _, rc := range r.st.receipts {
		out = append(out, rc)
	}
	return out, nil
}

func (r receiptRepo) ListReferencing(_ context.Context, lineIDs []string) ([]entity.Receipt, error) {
	if !r.locks.held {
		r.locks.unlocked++
	}
	ids := make(map[string]bool, len(lineIDs))
	for _, id := range lineIDs {
		ids[id] = true
	}
	var out []entity.Receipt
	for _, rc := range r.st.receipts {
		if !rc.Active() {
			continue
		}
		for _, l := range rc.Lines {
			if ids[l.ArrivalLineID] {
				out = append(out, rc)
				break
			}
		}
	}
	return out, nil
}

func (r receiptRepo) UpdateStatus(_ context.Context, id, status string) error {
	rc, ok := r.st.receipts[id]
	if !ok {
		return domain.ErrNotFound
	}
	rc.Status = status
	r.st.receipts[id] = rc
	return nil
}

func (r receiptRepo) LockStock(context.Context) error {
	r.locks.held = true
	r.locks.taken++
	return nil
}

type debtRepo struct{ st *state }

func (r debtRepo) Create(_ context.Context, d *entity.Debt) error {
	r.st.debts[d.ID] = *d
	return nil
}

func (r debtRepo) GetByID(_ context.Context, id string) (*entity.Debt, error) {
	d, ok := r.st.debts[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r debtRepo) GetForUpdate(ctx context.Context, id string) (*entity.Debt, error) {
	return r.GetByID(ctx, id)
}

func (r debtRepo) GetByArrival(_ context.Context, arrivalID string) (*entity.Debt, error) {
	for _, d := range r.st.debts {
		if d.LinkedTo(arrivalID) {
			return &d, nil
		}
	}
	return nil, nil
}

func (r debtRepo) List(_ context.Context, f repository.DebtFilter) ([]*entity.Debt, error) {
	var out []*entity.Debt
	for _, d := range r.st.debts {
		if f.Status != "" && string(d.Status) != f.Status {
			continue
		}
		d := d
		out = append(out, &d)
	}
	return out, nil
}

func (r debtRepo) ListAll(_ context.Context) ([]entity.Debt, error) {
	out := make([]entity.Debt, 0, len(r.st.debts))
	for _, d := range r.st.debts {
		out = append(out, d)
	}
	return out, nil
}

func (r debtRepo) Update(_ context.Context, d *entity.Debt, expectedRemaining decimal.Decimal) error {
	cur, ok := r.st.debts[d.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if !cur.RemainingAmount.Equal(expectedRemaining) {
		return domain.ErrConflict
	}
	r.st.debts[d.ID] = *d
	return nil
}

func (r debtRepo) Delete(_ context.Context, id string) error {
	delete(r.st.debts, id)
	return nil
}

func (r debtRepo) ListOverdueCandidates(_ context.Context, now time.Time) ([]entity.Debt, error) {
	var out []entity.Debt
	for _, d := range r.st.debts {
		if d.DueDate != nil && d.DueDate.Before(now) &&
			(d.Status == entity.DebtStatusActive || d.Status == entity.DebtStatusPartiallyPaid) {
			out = append(out, d)
		}
	}
	return out, nil
}

type cashRepo struct {
	st   *state
	fail bool
}

func (r cashRepo) Create(_ context.Context, e *entity.CashEntry) error {
	if r.fail {
		return errCashDown
	}
	r.st.cash = append(r.st.cash, *e)
	return nil
}

func (r cashRepo) List(_ context.Context, _, _ *time.Time, _, _ int) ([]*entity.CashEntry, error) {
	var out []*entity.CashEntry
	for i := range r.st.cash {
		out = append(out, &r.st.cash[i])
	}
	return out, nil
}

func (r cashRepo) Summary(_ context.Context, _, _ *time.Time) (repository.CashSummary, error) {
	var sum repository.CashSummary
	for _, e := range r.st.cash {
		if e.Type == entity.CashEntryCredit {
			sum.Credits = sum.Credits.Add(e.Amount)
		} else {
			sum.Debits = sum.Debits.Add(e.Amount)
		}
	}
	return sum, nil
}

// ── colaboradores ────────────────────────────────────────────────────────────

type noopLocker struct{}

func (noopLocker) Lock(context.Context, string) (func(), error) { return func() {}, nil }

type busyLocker struct{}

func (busyLocker) Lock(context.Context, string) (func(), error) { return nil, domain.ErrDebtBusy }

type recorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *recorder) Publish(_ context.Context, events ...event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
	return nil
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}
