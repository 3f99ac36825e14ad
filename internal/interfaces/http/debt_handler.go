package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// DebtHandler deudas con proveedores y sus pagos.
type DebtHandler struct {
	uc DebtService
}

func NewDebtHandler(uc DebtService) *DebtHandler {
	return &DebtHandler{uc: uc}
}

// Create godoc
// @Summary      Crear deuda simple
// @Description  Deuda sin llegada asociada (ej. servicio del proveedor).
// @Tags         debts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDebtRequest  true  "Deuda"
// @Success      201   {object}  dto.DebtResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/debts [post]
func (h *DebtHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDebtRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CreateSimple(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener deuda
// @Tags         debts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la deuda"
// @Success      200  {object}  dto.DebtResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/debts/{id} [get]
func (h *DebtHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "deuda no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar deudas
// @Tags         debts
// @Security     Bearer
// @Produce      json
// @Param        status       query  string  false  "active | partially_paid | paid | overdue"
// @Param        supplier_id  query  string  false  "Proveedor"
// @Param        limit        query  int     false  "Límite"   default(20)
// @Param        offset       query  int     false  "Offset"   default(0)
// @Success      200          {object}  dto.DebtListResponse
// @Router       /api/debts [get]
func (h *DebtHandler) List(c *fiber.Ctx) error {
	status := c.Query("status")
	switch entity.DebtStatus(status) {
	case "", entity.DebtStatusActive, entity.DebtStatusPartiallyPaid, entity.DebtStatusPaid, entity.DebtStatusOverdue:
	default:
		return respondError(c, badRequest("VALIDATION", "status inválido: %s", status))
	}
	limit, offset := page(c)
	out, err := h.uc.List(c.UserContext(), repository.DebtFilter{
		Status:     status,
		SupplierID: c.Query("supplier_id"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Pay godoc
// @Summary      Registrar pago
// @Description  0 < amount <= saldo; si no, 422 INVALID_AMOUNT y la deuda no cambia.
// @Tags         debts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la deuda"
// @Param        body  body  dto.PayDebtRequest  true  "Monto"
// @Success      200   {object}  dto.DebtResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      423   {object}  dto.ErrorResponse
// @Router       /api/debts/{id}/payments [post]
func (h *DebtHandler) Pay(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.PayDebtRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Pay(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar deuda
// @Description  Si tenía pagos, acredita el reembolso en caja. Bloqueado si la llegada tiene recibos activos.
// @Tags         debts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la deuda"
// @Success      200  {object}  dto.DeleteDebtResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/debts/{id} [delete]
func (h *DebtHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Delete(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
