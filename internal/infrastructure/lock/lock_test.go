package lock_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/ledger"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/lock"
)

func assertExclusive(t *testing.T, l ledger.DebtLocker) {
	t.Helper()
	ctx := context.Background()

	release, err := l.Lock(ctx, "d1")
	require.NoError(t, err)

	_, err = l.Lock(ctx, "d1")
	assert.ErrorIs(t, err, domain.ErrDebtBusy, "misma deuda ocupada")

	other, err := l.Lock(ctx, "d2")
	require.NoError(t, err, "otra deuda es independiente")
	other()

	release()
	release() // idempotente

	again, err := l.Lock(ctx, "d1")
	require.NoError(t, err)
	again()
}

func TestLocalLocker(t *testing.T) {
	assertExclusive(t, lock.NewLocalLocker())
}

func TestRedisLocker(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	assertExclusive(t, lock.NewRedisLocker(client, 30*time.Second, nil))
}

func TestRedisLocker_ExpiraPorTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	l := lock.NewRedisLocker(client, time.Second, nil)

	_, err := l.Lock(context.Background(), "d1")
	require.NoError(t, err)
	mr.FastForward(2 * time.Second)

	release, err := l.Lock(context.Background(), "d1")
	require.NoError(t, err, "el candado abandonado expira")
	release()
}
