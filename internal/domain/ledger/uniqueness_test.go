package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/ledger"
)

func debtFor(arrivalID string, status entity.DebtStatus) entity.Debt {
	id := arrivalID
	return entity.Debt{ID: "d-" + arrivalID, ArrivalID: &id, Status: status}
}

func TestCheckUniqueness_SerialEnLlegadaAbierta(t *testing.T) {
	arrivals := []entity.Arrival{technicalArrival("a1", "l1", "SN1", "SN2")}
	debts := []entity.Debt{debtFor("a1", entity.DebtStatusActive)}

	got := ledger.CheckUniqueness([]string{"SN2", "SN9"}, arrivals, debts, nil, "")
	assert.Equal(t, []string{"SN2"}, got)
}

// Reventa: deuda pagada Y serial vendido → se puede reutilizar.
func TestCheckUniqueness_ReutilizacionTrasCicloCerrado(t *testing.T) {
	arrivals := []entity.Arrival{technicalArrival("a1", "l1", "SN1")}
	sold := []entity.Receipt{receipt("r1", entity.ReceiptStatusCompleted, entity.ReceiptLine{ArrivalLineID: "l1", SerialNumber: "SN1", Quantity: 1})}

	paid := []entity.Debt{debtFor("a1", entity.DebtStatusPaid)}
	assert.Empty(t, ledger.CheckUniqueness([]string{"SN1"}, arrivals, paid, sold, ""))

	// Pagada pero no vendida: colisiona.
	assert.Equal(t, []string{"SN1"}, ledger.CheckUniqueness([]string{"SN1"}, arrivals, paid, nil, ""))

	// Vendida pero deuda abierta: colisiona.
	open := []entity.Debt{debtFor("a1", entity.DebtStatusPartiallyPaid)}
	assert.Equal(t, []string{"SN1"}, ledger.CheckUniqueness([]string{"SN1"}, arrivals, open, sold, ""))

	// Venta cancelada no cuenta como vendida.
	cancelled := []entity.Receipt{receipt("r1", entity.ReceiptStatusCancelled, entity.ReceiptLine{ArrivalLineID: "l1", SerialNumber: "SN1", Quantity: 1})}
	assert.Equal(t, []string{"SN1"}, ledger.CheckUniqueness([]string{"SN1"}, arrivals, paid, cancelled, ""))

	// Sin deuda vinculada: cuenta como no pagada.
	assert.Equal(t, []string{"SN1"}, ledger.CheckUniqueness([]string{"SN1"}, arrivals, nil, sold, ""))
}

func TestCheckUniqueness_ExcluyeLlegadaEditada(t *testing.T) {
	arrivals := []entity.Arrival{technicalArrival("a1", "l1", "SN1")}
	assert.Empty(t, ledger.CheckUniqueness([]string{"SN1"}, arrivals, nil, nil, "a1"))
}

func TestCheckUniqueness_DuplicadosEntreCandidatos(t *testing.T) {
	got := ledger.CheckUniqueness([]string{" X1", "X2", "X1 ", "", "X1"}, nil, nil, nil, "")
	assert.Equal(t, []string{"X1"}, got, "se reporta una sola vez y se ignoran vacíos")
}

func TestCheckBarcodeConflicts(t *testing.T) {
	arrivals := []entity.Arrival{accessoryArrival("a1", "l1", day0, "Cable USB-C", "777", 1, 1)}
	lines := []entity.ArrivalLine{
		{ProductName: "cable usb-c", Kind: entity.KindAccessory, Barcode: "777", Quantity: 1, UnitCost: decimal.Zero},
		{ProductName: "Audífonos", Kind: entity.KindAccessory, Barcode: "777", Quantity: 1},
		{ProductName: "Audífonos", Kind: entity.KindAccessory, Barcode: "888", Quantity: 1},
		{ProductName: "Protector", Kind: entity.KindAccessory, Barcode: "888", Quantity: 1},
	}

	got := ledger.CheckBarcodeConflicts(lines, arrivals, "")
	if assert.Len(t, got, 2) {
		assert.Equal(t, "777", got[0].Barcode)
		assert.Equal(t, "Cable USB-C", got[0].ExistingProductName)
		assert.Equal(t, "888", got[1].Barcode)
		assert.Equal(t, "Audífonos", got[1].ExistingProductName)
	}
}
