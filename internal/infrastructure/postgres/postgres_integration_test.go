package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/backoffice-api/internal/application/ledger"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/postgres"
	"github.com/jhoicas/backoffice-api/pkg/config"
)

// newTestPool levanta PostgreSQL en un contenedor, aplica migraciones y devuelve el pool.
// Requiere Docker y INTEGRATION_TESTS=1.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() || os.Getenv("INTEGRATION_TESTS") == "" {
		t.Skip("INTEGRATION_TESTS no definido")
	}
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("backoffice_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	m, err := postgres.NewMigrator(dsn, nil)
	require.NoError(t, err)
	require.NoError(t, m.Up())
	require.NoError(t, m.Up(), "segunda corrida sin cambios")
	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
	require.NoError(t, m.Close())

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestPostgres_CicloLlegadaVentaDeuda(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	runner := postgres.NewTxRunner(pool)
	now := time.Now().UTC().Truncate(time.Microsecond)
	arrivalID := "a1"

	// ─── Alta de proveedor, llegada y deuda en una tx ───
	err := runner.Run(ctx, func(s ledger.Stores) error {
		if err := s.Suppliers.Create(ctx, &entity.Supplier{ID: "s1", Name: "Mayorista", CreatedAt: now, UpdatedAt: now}); err != nil {
			return err
		}
		if err := s.Receipts.LockStock(ctx); err != nil {
			return err
		}
		err := s.Arrivals.Create(ctx, &entity.Arrival{
			ID: arrivalID, SupplierID: "s1", SupplierName: "Mayorista", Date: now, CreatedAt: now, UpdatedAt: now,
			Lines: []entity.ArrivalLine{
				{ID: "l1", ProductName: "Teléfono", Kind: entity.KindTechnical, Quantity: 2,
					UnitPrice: decimal.NewFromInt(1000), UnitCost: decimal.NewFromInt(600), SerialNumbers: []string{"SN1", "SN2"}},
				{ID: "l2", ProductName: "Cable", Kind: entity.KindAccessory, Quantity: 5,
					UnitPrice: decimal.NewFromInt(20), UnitCost: decimal.NewFromInt(5), Barcode: "777"},
			},
		})
		if err != nil {
			return err
		}
		return s.Debts.Create(ctx, &entity.Debt{
			ID: "d1", ArrivalID: &arrivalID, SupplierID: "s1", Amount: decimal.NewFromInt(1225),
			RemainingAmount: decimal.NewFromInt(1225), Status: entity.DebtStatusActive, CreatedAt: now, UpdatedAt: now,
		})
	})
	require.NoError(t, err)

	stores := postgres.NewStores(pool)
	got, err := stores.Arrivals.GetByID(ctx, arrivalID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Lines, 2)
	assert.Equal(t, []string{"SN1", "SN2"}, got.Lines[0].SerialNumbers)
	assert.Equal(t, entity.KindAccessory, got.Lines[1].Kind)
	assert.True(t, got.Lines[1].UnitCost.Equal(decimal.NewFromInt(5)))

	// ─── Recibo que referencia la llegada ───
	require.NoError(t, stores.Receipts.Create(ctx, &entity.Receipt{
		ID: "r1", Number: "R-1", Status: entity.ReceiptStatusNew, Date: now, Total: decimal.NewFromInt(1000),
		CreatedAt: now, UpdatedAt: now,
		Lines: []entity.ReceiptLine{{ID: "rl1", ArrivalLineID: "l1", SerialNumber: "SN1", Quantity: 1, Price: decimal.NewFromInt(1000)}},
	}))
	assert.ErrorIs(t, stores.Receipts.Create(ctx, &entity.Receipt{ID: "r2", Number: "R-1", Status: entity.ReceiptStatusNew, Date: now}),
		domain.ErrDuplicate)

	refs, err := stores.Receipts.ListReferencing(ctx, []string{"l1", "l2"})
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "SN1", refs[0].Lines[0].SerialNumber)

	require.NoError(t, stores.Receipts.UpdateStatus(ctx, "r1", entity.ReceiptStatusCancelled))
	refs, err = stores.Receipts.ListReferencing(ctx, []string{"l1"})
	require.NoError(t, err)
	assert.Empty(t, refs, "los cancelados no cuentan")

	// ─── Escritura condicional de la deuda ───
	debt, err := stores.Debts.GetByArrival(ctx, arrivalID)
	require.NoError(t, err)
	require.NotNil(t, debt)
	next := *debt
	next.PaidAmount = decimal.NewFromInt(225)
	next.RemainingAmount = decimal.NewFromInt(1000)
	next.Status = entity.DebtStatusPartiallyPaid
	require.NoError(t, stores.Debts.Update(ctx, &next, debt.RemainingAmount))
	assert.ErrorIs(t, stores.Debts.Update(ctx, &next, debt.RemainingAmount), domain.ErrConflict, "remaining ya cambió")

	list, err := stores.Debts.List(ctx, repository.DebtFilter{Status: string(entity.DebtStatusPartiallyPaid), Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].PaidAmount.Equal(decimal.NewFromInt(225)))

	// ─── Caja ───
	require.NoError(t, stores.Cash.Create(ctx, &entity.CashEntry{ID: "c1", Type: entity.CashEntryDebit, Amount: decimal.NewFromInt(225), DebtID: "d1", CreatedAt: now}))
	require.NoError(t, stores.Cash.Create(ctx, &entity.CashEntry{ID: "c2", Type: entity.CashEntryCredit, Amount: decimal.NewFromInt(50), DebtID: "d1", CreatedAt: now}))
	sum, err := stores.Cash.Summary(ctx, nil, nil)
	require.NoError(t, err)
	assert.True(t, sum.Debits.Equal(decimal.NewFromInt(225)))
	assert.True(t, sum.Credits.Equal(decimal.NewFromInt(50)))

	// ─── Borrado: deuda antes que llegada ───
	require.NoError(t, stores.Debts.Delete(ctx, "d1"))
	require.NoError(t, stores.Arrivals.Delete(ctx, arrivalID))
	gone, err := stores.Arrivals.GetByID(ctx, arrivalID)
	require.NoError(t, err)
	assert.Nil(t, gone)
	assert.ErrorIs(t, stores.Arrivals.Delete(ctx, arrivalID), domain.ErrNotFound)
}

func TestTxRunner_RollbackAnteError(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	runner := postgres.NewTxRunner(pool)
	now := time.Now().UTC()

	err := runner.Run(ctx, func(s ledger.Stores) error {
		if err := s.Suppliers.Create(ctx, &entity.Supplier{ID: "s1", Name: "Temporal", CreatedAt: now, UpdatedAt: now}); err != nil {
			return err
		}
		return domain.ErrInvalidAmount
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	err = runner.RunSnapshot(ctx, func(s ledger.Stores) error {
		sup, err := s.Suppliers.GetByID(ctx, "s1")
		assert.Nil(t, sup)
		return err
	})
	require.NoError(t, err)
}
