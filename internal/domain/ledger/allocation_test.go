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

func stock(t *testing.T) []entity.AvailableUnit {
	t.Helper()
	arrivals := []entity.Arrival{
		technicalArrival("a1", "t1", "SN1", "SN2"),
		accessoryArrival("a2", "c1", day0, "Cable", "K", 2, 5),
		accessoryArrival("a3", "c2", day0.Add(time.Hour), "Cable", "K", 3, 5),
	}
	return ledger.ComputeAvailableUnits(arrivals, nil, ledger.AvailabilityOptions{}).Units
}

func TestAllocateSale_FIFOEntreFuentes(t *testing.T) {
	lines, err := ledger.AllocateSale(stock(t), []ledger.SaleRequest{
		{ArrivalLineID: "c2", Quantity: 4},
	})
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "c1", lines[0].ArrivalLineID, "primero la fuente más antigua")
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "c2", lines[1].ArrivalLineID)
	assert.Equal(t, 2, lines[1].Quantity)
	assert.True(t, lines[0].IsAccessory)
}

func TestAllocateSale_TecnicoPorSerial(t *testing.T) {
	price := decimal.NewFromInt(950)
	lines, err := ledger.AllocateSale(stock(t), []ledger.SaleRequest{
		{SerialNumber: "SN2", Price: &price},
		{SerialNumber: "SN1", ArrivalLineID: "t1"},
	})
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "SN2", lines[0].SerialNumber)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.True(t, lines[0].Price.Equal(price))
	assert.True(t, lines[1].Price.Equal(decimal.NewFromInt(1000)), "precio por defecto de la llegada")
}

func TestAllocateSale_StockInsuficiente(t *testing.T) {
	units := stock(t)
	cases := map[string][]ledger.SaleRequest{
		"serial inexistente":      {{SerialNumber: "SN9"}},
		"serial repetido":         {{SerialNumber: "SN1"}, {SerialNumber: "SN1"}},
		"línea de serial errónea": {{SerialNumber: "SN1", ArrivalLineID: "c1"}},
		"cantidad mayor":          {{ArrivalLineID: "c1", Quantity: 6}},
		"acumulado mayor":         {{ArrivalLineID: "c1", Quantity: 3}, {ArrivalLineID: "c2", Quantity: 3}},
		"línea desconocida":       {{ArrivalLineID: "zz", Quantity: 1}},
	}
	for name, reqs := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ledger.AllocateSale(units, reqs)
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		})
	}
}

func TestAllocateSale_SolicitudInvalida(t *testing.T) {
	_, err := ledger.AllocateSale(stock(t), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	fine := decimal.RequireFromString("10.005")
	_, err = ledger.AllocateSale(stock(t), []ledger.SaleRequest{{SerialNumber: "SN1", Price: &fine}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio con más de dos decimales")

	_, err = ledger.AllocateSale(stock(t), []ledger.SaleRequest{{ArrivalLineID: "c1", Quantity: 0}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidateArrivalLine(t *testing.T) {
	ok := entity.ArrivalLine{ProductName: "Tel", Kind: entity.KindTechnical, Quantity: 2, SerialNumbers: []string{"A", "B"}}
	assert.NoError(t, ledger.ValidateArrivalLine(ok))

	mismatch := ok
	mismatch.Quantity = 3
	assert.ErrorIs(t, ledger.ValidateArrivalLine(mismatch), domain.ErrInvalidInput)

	dup := ok
	dup.SerialNumbers = []string{"A", "A"}
	err := ledger.ValidateArrivalLine(dup)
	assert.ErrorIs(t, err, domain.ErrDuplicateSerial)
	var dse *domain.DuplicateSerialError
	require.ErrorAs(t, err, &dse)
	assert.Equal(t, []string{"A"}, dse.Serials)

	acc := entity.ArrivalLine{ProductName: "Cable", Kind: entity.KindAccessory, Quantity: 1, SerialNumbers: []string{"X"}}
	assert.ErrorIs(t, ledger.ValidateArrivalLine(acc), domain.ErrInvalidInput, "fungibles no llevan seriales")

	bad := entity.ArrivalLine{ProductName: "Cable", Kind: "otro", Quantity: 1}
	assert.ErrorIs(t, ledger.ValidateArrivalLine(bad), domain.ErrInvalidInput)

	negative := entity.ArrivalLine{ProductName: "Cable", Kind: entity.KindAccessory, Quantity: 1, UnitCost: decimal.NewFromInt(-1)}
	assert.ErrorIs(t, ledger.ValidateArrivalLine(negative), domain.ErrInvalidInput)

	fineCost := entity.ArrivalLine{ProductName: "Cable", Kind: entity.KindAccessory, Quantity: 3, UnitCost: decimal.RequireFromString("0.333")}
	assert.ErrorIs(t, ledger.ValidateArrivalLine(fineCost), domain.ErrInvalidInput, "costo con más de dos decimales")

	finePrice := entity.ArrivalLine{ProductName: "Cable", Kind: entity.KindAccessory, Quantity: 1, UnitPrice: decimal.RequireFromString("9.995")}
	assert.ErrorIs(t, ledger.ValidateArrivalLine(finePrice), domain.ErrInvalidInput, "precio con más de dos decimales")
}

func TestNewStockKey_Normaliza(t *testing.T) {
	a := ledger.NewStockKey("  Cable   USB-C ", " 123 ", entity.KindAccessory)
	b := ledger.NewStockKey("cable usb-c", "123", entity.KindAccessory)
	assert.Equal(t, a, b)

	c := ledger.NewStockKey("cable usb-c", "123", entity.KindService)
	assert.NotEqual(t, a, c, "el tipo forma parte de la clave")
}

func TestWeightedUnitCost(t *testing.T) {
	got := ledger.WeightedUnitCost([]entity.UnitSource{
		{Quantity: 10, UnitCost: decimal.NewFromInt(100)},
		{Quantity: 10, UnitCost: decimal.NewFromInt(200)},
		{Quantity: 0, UnitCost: decimal.NewFromInt(9999)},
	})
	assert.True(t, got.Equal(decimal.NewFromInt(150)))
	assert.True(t, ledger.WeightedUnitCost(nil).IsZero())
}
