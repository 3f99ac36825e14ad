package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/ledger"
)

func newDebt(t *testing.T, amount int64) entity.Debt {
	t.Helper()
	arrivalID := "a1"
	d, err := ledger.NewDebt("d1", "s1", "Proveedor", &arrivalID, decimal.NewFromInt(amount), nil, day0)
	require.NoError(t, err)
	return d
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// Deuda de 5000 pagada completa → paid; un pago adicional de 1 falla con ErrInvalidAmount.
func TestApplyPayment_PagoTotalYLuegoSobrepago(t *testing.T) {
	d := newDebt(t, 5000)

	paid, err := ledger.ApplyPayment(d, dec(5000))
	require.NoError(t, err)
	assert.True(t, paid.PaidAmount.Equal(dec(5000)))
	assert.True(t, paid.RemainingAmount.IsZero())
	assert.Equal(t, entity.DebtStatusPaid, paid.Status)

	again, err := ledger.ApplyPayment(paid, dec(1))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.Equal(t, paid, again, "un pago rechazado no modifica la deuda")
}

func TestApplyPayment_PagoParcial(t *testing.T) {
	d := newDebt(t, 1000)

	partial, err := ledger.ApplyPayment(d, dec(300))
	require.NoError(t, err)
	assert.Equal(t, entity.DebtStatusPartiallyPaid, partial.Status)
	assert.True(t, partial.RemainingAmount.Equal(dec(700)))
	assert.Equal(t, d.Version+1, partial.Version)

	// La deuda original no se modifica.
	assert.Equal(t, entity.DebtStatusActive, d.Status)
	assert.True(t, d.PaidAmount.IsZero())

	full, err := ledger.ApplyPayment(partial, dec(700))
	require.NoError(t, err)
	assert.Equal(t, entity.DebtStatusPaid, full.Status)
	assert.True(t, full.Amount.Equal(full.PaidAmount.Add(full.RemainingAmount)))
}

func TestApplyPayment_MontosInvalidos(t *testing.T) {
	d := newDebt(t, 100)
	for _, amount := range []decimal.Decimal{dec(0), dec(-5), dec(101), decimal.RequireFromString("100.01")} {
		got, err := ledger.ApplyPayment(d, amount)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount, "monto %s", amount)
		assert.Equal(t, d, got)
	}
}

func TestApplyPayment_PagoExactoSiempreCierra(t *testing.T) {
	for _, amount := range []string{"0.01", "1", "999.99", "123456.78"} {
		d, err := ledger.NewDebt("d", "s", "", nil, decimal.RequireFromString(amount), nil, day0)
		require.NoError(t, err)
		out, err := ledger.ApplyPayment(d, d.RemainingAmount)
		require.NoError(t, err)
		assert.Equal(t, entity.DebtStatusPaid, out.Status)
		assert.True(t, out.RemainingAmount.IsZero())
	}
}

func TestNewDebt_MontoNoPositivo(t *testing.T) {
	_, err := ledger.NewDebt("d", "s", "", nil, dec(0), nil, day0)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

// Los montos se guardan con dos decimales: más precisión rompería saldo = monto - pagado al persistir.
func TestApplyPayment_MasDeDosDecimales(t *testing.T) {
	d := newDebt(t, 100)
	for _, raw := range []string{"33.335", "0.004", "10.001"} {
		got, err := ledger.ApplyPayment(d, decimal.RequireFromString(raw))
		assert.ErrorIs(t, err, domain.ErrInvalidAmount, "monto %s", raw)
		assert.Equal(t, d, got)
	}

	out, err := ledger.ApplyPayment(d, decimal.RequireFromString("33.330"))
	require.NoError(t, err, "ceros a la derecha no agregan precisión")
	assert.True(t, out.RemainingAmount.Equal(decimal.RequireFromString("66.67")))
}

func TestNewDebt_MasDeDosDecimales(t *testing.T) {
	_, err := ledger.NewDebt("d", "s", "", nil, decimal.RequireFromString("0.999"), nil, day0)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = ledger.NewDebt("d", "s", "", nil, decimal.RequireFromString("0.99"), nil, day0)
	assert.NoError(t, err)
}

func TestValidMoney(t *testing.T) {
	assert.True(t, ledger.ValidMoney(decimal.RequireFromString("12.50")))
	assert.True(t, ledger.ValidMoney(decimal.RequireFromString("12.500")))
	assert.True(t, ledger.ValidMoney(dec(7)))
	assert.False(t, ledger.ValidMoney(decimal.RequireFromString("0.333")))
}

func TestDeleteDebt_Reembolso(t *testing.T) {
	d := newDebt(t, 800)
	assert.Nil(t, ledger.DeleteDebt(d), "sin pagos no hay reembolso")

	partial, err := ledger.ApplyPayment(d, dec(250))
	require.NoError(t, err)
	refund := ledger.DeleteDebt(partial)
	require.NotNil(t, refund)
	assert.Equal(t, "d1", refund.DebtID)
	assert.True(t, refund.Amount.Equal(dec(250)))
}

func TestEnsureDebtDeletable(t *testing.T) {
	d := newDebt(t, 800)
	active := receipt("r1", entity.ReceiptStatusNew, entity.ReceiptLine{ArrivalLineID: "l1", Quantity: 1})
	cancelled := receipt("r2", entity.ReceiptStatusCancelled, entity.ReceiptLine{ArrivalLineID: "l1", Quantity: 1})

	err := ledger.EnsureDebtDeletable(d, []string{"l1", "l2"}, []entity.Receipt{active})
	assert.ErrorIs(t, err, domain.ErrArrivalStillReferenced)

	assert.NoError(t, ledger.EnsureDebtDeletable(d, []string{"l1"}, []entity.Receipt{cancelled}))

	simple, err := ledger.NewDebt("d2", "s", "", nil, dec(10), nil, day0)
	require.NoError(t, err)
	assert.NoError(t, ledger.EnsureDebtDeletable(simple, nil, []entity.Receipt{active}))
}

func TestMarkOverdue(t *testing.T) {
	due := day0.Add(24 * time.Hour)
	d := newDebt(t, 100)
	d.DueDate = &due

	_, changed := ledger.MarkOverdue(d, day0)
	assert.False(t, changed, "aún no vence")

	out, changed := ledger.MarkOverdue(d, due.Add(time.Minute))
	assert.True(t, changed)
	assert.Equal(t, entity.DebtStatusOverdue, out.Status)

	paid, err := ledger.ApplyPayment(d, dec(100))
	require.NoError(t, err)
	_, changed = ledger.MarkOverdue(paid, due.Add(time.Minute))
	assert.False(t, changed, "nada sale de paid")

	_, changed = ledger.MarkOverdue(out, due.Add(time.Hour))
	assert.False(t, changed, "ya vencida")
}

func TestApplyPayment_DeudaVencidaPasaAParcial(t *testing.T) {
	d := newDebt(t, 100)
	d.Status = entity.DebtStatusOverdue
	out, err := ledger.ApplyPayment(d, dec(40))
	require.NoError(t, err)
	assert.Equal(t, entity.DebtStatusPartiallyPaid, out.Status)
}
