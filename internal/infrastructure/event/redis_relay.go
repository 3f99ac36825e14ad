package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/backoffice-api/internal/domain/event"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

var _ event.Publisher = (*RedisRelay)(nil)

// envelope mensaje en el canal; Origin evita que una instancia reprocese sus propios eventos.
type envelope struct {
	Origin string      `json:"origin"`
	Event  event.Event `json:"event"`
}

// RedisRelay publica en el bus local y difunde por Redis Pub/Sub a las demás instancias,
// para que invaliden sus vistas derivadas (disponibilidad) al mismo tiempo.
type RedisRelay struct {
	client  *redis.Client
	channel string
	origin  string
	local   event.Publisher
	log     *logger.Logger
}

// NewRedisRelay construye el relay. El cliente lo cierra quien lo creó.
func NewRedisRelay(client *redis.Client, channel string, local event.Publisher, log *logger.Logger) *RedisRelay {
	if log == nil {
		log = logger.Nop()
	}
	return &RedisRelay{
		client:  client,
		channel: channel,
		origin:  uuid.NewString(),
		local:   local,
		log:     log,
	}
}

// Publish entrega localmente y luego difunde. Un fallo de Redis se devuelve, la entrega local ya ocurrió.
func (r *RedisRelay) Publish(ctx context.Context, events ...event.Event) error {
	if err := r.local.Publish(ctx, events...); err != nil {
		return err
	}
	var errs []error
	for _, e := range events {
		data, err := json.Marshal(envelope{Origin: r.origin, Event: e})
		if err != nil {
			errs = append(errs, fmt.Errorf("marshal event %s: %w", e.Type, err))
			continue
		}
		if err := r.client.Publish(ctx, r.channel, data).Err(); err != nil {
			errs = append(errs, fmt.Errorf("redis publish %s: %w", e.Type, err))
		}
	}
	return errors.Join(errs...)
}

// Run escucha el canal hasta que ctx termine y reenvía al bus local los eventos de otras instancias.
// ready (opcional) se cierra cuando la suscripción quedó confirmada.
func (r *RedisRelay) Run(ctx context.Context, ready chan<- struct{}) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("redis subscribe %s: %w", r.channel, err)
	}
	if ready != nil {
		close(ready)
	}
	r.log.Info().Str("channel", r.channel).Msg("relay de eventos suscrito")

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				r.log.Warn().Err(err).Msg("evento remoto ilegible")
				continue
			}
			if env.Origin == r.origin {
				continue
			}
			_ = r.local.Publish(ctx, env.Event)
		}
	}
}
