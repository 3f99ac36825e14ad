package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrForbidden              = errors.New("acceso denegado")
	ErrConflict               = errors.New("conflicto con el estado actual")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrInvalidAmount          = errors.New("monto inválido")
	ErrArrivalStillReferenced = errors.New("la llegada tiene recibos activos que la referencian")
	ErrDuplicateSerial        = errors.New("número de serie duplicado")
	ErrInvalidTransition      = errors.New("transición de estado no permitida")
	ErrDebtBusy               = errors.New("la deuda está siendo modificada por otra operación")
)

// DuplicateSerialError lista los seriales que colisionan con llegadas existentes.
// errors.Is(err, ErrDuplicateSerial) es verdadero.
type DuplicateSerialError struct {
	Serials []string
}

func (e *DuplicateSerialError) Error() string {
	return ErrDuplicateSerial.Error() + ": " + strings.Join(e.Serials, ", ")
}

func (e *DuplicateSerialError) Unwrap() error { return ErrDuplicateSerial }
