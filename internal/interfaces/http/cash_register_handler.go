package http

import (
	"github.com/gofiber/fiber/v2"
)

// CashRegisterHandler consulta de la caja.
type CashRegisterHandler struct {
	uc CashRegisterService
}

func NewCashRegisterHandler(uc CashRegisterService) *CashRegisterHandler {
	return &CashRegisterHandler{uc: uc}
}

// Entries godoc
// @Summary      Movimientos de caja
// @Tags         cash-register
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to      query  string  false  "Hasta, exclusivo"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.CashEntryListResponse
// @Router       /api/cash-register/entries [get]
func (h *CashRegisterHandler) Entries(c *fiber.Ctx) error {
	from, err := queryTime(c, "from")
	if err != nil {
		return respondError(c, err)
	}
	to, err := queryTime(c, "to")
	if err != nil {
		return respondError(c, err)
	}
	limit, offset := page(c)
	out, err := h.uc.List(c.UserContext(), from, to, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de caja
// @Tags         cash-register
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde"
// @Param        to    query  string  false  "Hasta, exclusivo"
// @Success      200   {object}  dto.CashSummaryResponse
// @Router       /api/cash-register/summary [get]
func (h *CashRegisterHandler) Summary(c *fiber.Ctx) error {
	from, err := queryTime(c, "from")
	if err != nil {
		return respondError(c, err)
	}
	to, err := queryTime(c, "to")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Summary(c.UserContext(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
