package event_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/domain/event"
	infraevent "github.com/jhoicas/backoffice-api/internal/infrastructure/event"
)

type received struct {
	mu    sync.Mutex
	types []string
}

func (r *received) handle(_ context.Context, e event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = append(r.types, e.Type)
	return nil
}

func (r *received) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.types...)
}

func startRelay(t *testing.T, ctx context.Context, addr string) (*infraevent.RedisRelay, *received) {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	bus := infraevent.NewBus(nil)
	got := &received{}
	bus.Subscribe(got.handle)

	relay := infraevent.NewRedisRelay(client, "test.events", bus, nil)
	ready := make(chan struct{})
	go func() { _ = relay.Run(ctx, ready) }()
	select {
	case <-ready:
	case <-time.After(2 * time.Second):
		t.Fatal("el relay no se suscribió")
	}
	return relay, got
}

func TestRedisRelay_DifundeAOtrasInstancias(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, gotA := startRelay(t, ctx, mr.Addr())
	_, gotB := startRelay(t, ctx, mr.Addr())

	require.NoError(t, a.Publish(ctx, event.New(event.DebtPaid, "d1", map[string]string{"debt_id": "d1"})))

	assert.Eventually(t, func() bool {
		return len(gotB.snapshot()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{event.DebtPaid}, gotB.snapshot())

	// La instancia origen lo recibió solo una vez (local), no de vuelta por Redis.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, []string{event.DebtPaid}, gotA.snapshot())
}

func TestRedisRelay_FalloDeRedisNoImpideEntregaLocal(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()

	bus := infraevent.NewBus(nil)
	got := &received{}
	bus.Subscribe(got.handle)
	relay := infraevent.NewRedisRelay(client, "test.events", bus, nil)

	mr.Close()
	err := relay.Publish(context.Background(), event.New(event.ArrivalCreated, "a1", nil))
	assert.Error(t, err)
	assert.Equal(t, []string{event.ArrivalCreated}, got.snapshot())
}
