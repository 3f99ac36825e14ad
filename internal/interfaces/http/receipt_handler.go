package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// ReceiptHandler recibos de venta.
type ReceiptHandler struct {
	uc ReceiptService
}

func NewReceiptHandler(uc ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{uc: uc}
}

// Create godoc
// @Summary      Crear recibo
// @Description  Asigna las unidades contra el stock disponible; 409 INSUFFICIENT_STOCK si algo ya no está.
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReceiptRequest  true  "Recibo"
// @Success      201   {object}  dto.ReceiptResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/receipts [post]
func (h *ReceiptHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReceiptRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), isAdmin(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener recibo
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del recibo"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [get]
func (h *ReceiptHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recibo no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar recibos
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "new | completed | cancelled"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.ReceiptListResponse
// @Router       /api/receipts [get]
func (h *ReceiptHandler) List(c *fiber.Ctx) error {
	status := c.Query("status")
	switch status {
	case "", entity.ReceiptStatusNew, entity.ReceiptStatusCompleted, entity.ReceiptStatusCancelled:
	default:
		return respondError(c, badRequest("VALIDATION", "status inválido: %s", status))
	}
	limit, offset := page(c)
	out, err := h.uc.List(c.UserContext(), status, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Complete godoc
// @Summary      Completar recibo
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del recibo"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/complete [post]
func (h *ReceiptHandler) Complete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Complete(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar recibo
// @Description  Las unidades vuelven a estar disponibles.
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del recibo"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/cancel [post]
func (h *ReceiptHandler) Cancel(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Cancel(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
