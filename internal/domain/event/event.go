// Package event define los eventos de dominio tipados que sustituyen las señales globales
// entre pestañas: los suscriptores recalculan vistas derivadas al recibirlos.
package event

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Tipos de evento.
const (
	ArrivalCreated   = "arrival.created"
	ArrivalDeleted   = "arrival.deleted"
	ReceiptCreated   = "receipt.created"
	ReceiptCompleted = "receipt.completed"
	ReceiptCancelled = "receipt.cancelled"
	DebtCreated      = "debt.created"
	DebtPaid         = "debt.paid"
	DebtDeleted      = "debt.deleted"
	DebtOverdue      = "debt.overdue"
)

// Event sobre de un evento de dominio.
type Event struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	AggregateID string          `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload,omitempty"`
}

// New construye un evento; payload nil se omite.
func New(eventType, aggregateID string, payload any) Event {
	e := Event{
		ID:          uuid.New().String(),
		Type:        eventType,
		AggregateID: aggregateID,
		OccurredAt:  time.Now().UTC(),
	}
	if payload != nil {
		if raw, err := json.Marshal(payload); err == nil {
			e.Payload = raw
		}
	}
	return e
}

// Publisher publica eventos después de que la transacción que los originó hizo commit.
type Publisher interface {
	Publish(ctx context.Context, events ...Event) error
}

// Handler procesa un evento recibido.
type Handler func(ctx context.Context, e Event) error

// Subscriber registra handlers por tipo de evento. Sin tipos = todos los eventos.
type Subscriber interface {
	Subscribe(handler Handler, eventTypes ...string)
}
