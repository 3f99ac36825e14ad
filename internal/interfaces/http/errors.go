package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
)

// errorMapping asocia cada error de dominio con su status y código.
var errorMapping = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInvalidAmount, fiber.StatusUnprocessableEntity, "INVALID_AMOUNT"},
	{domain.ErrArrivalStillReferenced, fiber.StatusConflict, "ARRIVAL_STILL_REFERENCED"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrDebtBusy, fiber.StatusLocked, "DEBT_BUSY"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
}

// respondError traduce un error de caso de uso a la respuesta JSON.
func respondError(c *fiber.Ctx, err error) error {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: reqErr.code, Message: reqErr.message})
	}
	var dup *domain.DuplicateSerialError
	if errors.As(err, &dup) {
		return c.Status(fiber.StatusConflict).JSON(dto.DuplicateSerialResponse{
			Code: "DUPLICATE_SERIAL", Message: err.Error(), Serials: dup.Serials,
		})
	}
	if errors.Is(err, domain.ErrDuplicateSerial) {
		return c.Status(fiber.StatusConflict).JSON(dto.DuplicateSerialResponse{Code: "DUPLICATE_SERIAL", Message: err.Error()})
	}
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

// ErrorHandler para fiber.Config: errores no manejados por los handlers (404 de ruta, pánico recuperado).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
	}
	return respondError(c, err)
}
