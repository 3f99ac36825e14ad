package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
)

// StockHandler disponibilidad y verificación de seriales.
type StockHandler struct {
	availability AvailabilityService
	serials      SerialCheckService
}

func NewStockHandler(availability AvailabilityService, serials SerialCheckService) *StockHandler {
	return &StockHandler{availability: availability, serials: serials}
}

// Available godoc
// @Summary      Unidades disponibles
// @Description  Técnicos por serial, fungibles agrupados. El stock de llegadas conciliadas solo lo ve admin.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AvailabilityResponse
// @Router       /api/stock/available [get]
func (h *StockHandler) Available(c *fiber.Ctx) error {
	out, err := h.availability.Available(c.UserContext(), isAdmin(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CheckSerials godoc
// @Summary      Verificar seriales y códigos de barras
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SerialCheckRequest  true  "Candidatos"
// @Success      200   {object}  dto.SerialCheckResponse
// @Router       /api/stock/serials/check [post]
func (h *StockHandler) CheckSerials(c *fiber.Ctx) error {
	var in dto.SerialCheckRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.serials.Check(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
