// Package lock implementa candados por deuda: en proceso o distribuidos con Redis.
package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bsm/redislock"

	"github.com/jhoicas/backoffice-api/internal/application/ledger"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

var (
	_ ledger.DebtLocker = (*LocalLocker)(nil)
	_ ledger.DebtLocker = (*RedisLocker)(nil)
)

// LocalLocker candado por deuda dentro de un solo proceso. No espera: si está tomado, ErrDebtBusy.
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewLocalLocker construye el candado en memoria.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]struct{})}
}

func (l *LocalLocker) Lock(_ context.Context, debtID string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, busy := l.held[debtID]; busy {
		return nil, domain.ErrDebtBusy
	}
	l.held[debtID] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, debtID)
			l.mu.Unlock()
		})
	}, nil
}

// RedisLocker candado distribuido con redislock; clave "lock:debt:<id>".
type RedisLocker struct {
	locker *redislock.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedisLocker construye el candado sobre un cliente Redis (go-redis v9).
func NewRedisLocker(client redislock.RedisClient, ttl time.Duration, log *logger.Logger) *RedisLocker {
	if log == nil {
		log = logger.Nop()
	}
	return &RedisLocker{locker: redislock.New(client), ttl: ttl, log: log}
}

func (l *RedisLocker) Lock(ctx context.Context, debtID string) (func(), error) {
	lk, err := l.locker.Obtain(ctx, "lock:debt:"+debtID, l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, domain.ErrDebtBusy
	}
	if err != nil {
		return nil, fmt.Errorf("obtener candado de deuda: %w", err)
	}
	return func() {
		// ctx de la petición puede estar cancelado; liberar igual.
		rctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := lk.Release(rctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.log.Warn().Err(err).Str("debt_id", debtID).Msg("liberar candado de deuda")
		}
	}, nil
}
