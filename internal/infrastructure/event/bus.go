// Package event implementa el bus de eventos de dominio en proceso y su difusión por Redis.
package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/backoffice-api/internal/domain/event"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

var (
	_ event.Publisher  = (*Bus)(nil)
	_ event.Subscriber = (*Bus)(nil)
)

// Bus pub/sub síncrono en memoria. Un handler que falla o entra en pánico se registra
// en el log y no impide que los demás reciban el evento.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]event.Handler // "" = todos los tipos
	log      *logger.Logger
}

// NewBus construye el bus.
func NewBus(log *logger.Logger) *Bus {
	if log == nil {
		log = logger.Nop()
	}
	return &Bus{handlers: make(map[string][]event.Handler), log: log}
}

// Subscribe registra handler para los tipos indicados; sin tipos recibe todos.
func (b *Bus) Subscribe(handler event.Handler, eventTypes ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(eventTypes) == 0 {
		eventTypes = []string{""}
	}
	for _, t := range eventTypes {
		b.handlers[t] = append(b.handlers[t], handler)
	}
	b.log.Debug().Strs("event_types", eventTypes).Msg("handler suscrito")
}

// Publish entrega cada evento a sus handlers en orden de suscripción. Nunca devuelve error.
func (b *Bus) Publish(ctx context.Context, events ...event.Event) error {
	for _, e := range events {
		for _, h := range b.handlersFor(e.Type) {
			if err := b.dispatch(ctx, h, e); err != nil {
				b.log.Error().Err(err).
					Str("event_type", e.Type).
					Str("event_id", e.ID).
					Msg("handler falló al procesar evento")
			}
		}
	}
	return nil
}

func (b *Bus) handlersFor(eventType string) []event.Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]event.Handler, 0, len(b.handlers[eventType])+len(b.handlers[""]))
	out = append(out, b.handlers[eventType]...)
	return append(out, b.handlers[""]...)
}

func (b *Bus) dispatch(ctx context.Context, h event.Handler, e event.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic en handler: %v", r)
		}
	}()
	return h(ctx, e)
}
