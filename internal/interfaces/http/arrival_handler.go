package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
)

// ArrivalHandler llegadas de mercancía.
type ArrivalHandler struct {
	uc ArrivalService
}

func NewArrivalHandler(uc ArrivalService) *ArrivalHandler {
	return &ArrivalHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar llegada
// @Description  Crea la llegada y, si el costo total es mayor a cero, la deuda con el proveedor.
// @Tags         arrivals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateArrivalRequest  true  "Llegada"
// @Success      201   {object}  dto.ArrivalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.DuplicateSerialResponse
// @Router       /api/arrivals [post]
func (h *ArrivalHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateArrivalRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener llegada
// @Tags         arrivals
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la llegada"
// @Success      200  {object}  dto.ArrivalResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/arrivals/{id} [get]
func (h *ArrivalHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "llegada no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar llegadas
// @Tags         arrivals
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.ArrivalListResponse
// @Router       /api/arrivals [get]
func (h *ArrivalHandler) List(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.uc.List(c.UserContext(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar llegada
// @Description  Bloqueado (409 ARRIVAL_STILL_REFERENCED) si un recibo activo consume sus líneas.
// @Tags         arrivals
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la llegada"
// @Success      200  {object}  dto.DeleteArrivalResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/arrivals/{id} [delete]
func (h *ArrivalHandler) Delete(c *fiber.Ctx) error {
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
