package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/infrastructure/scheduler"
	"github.com/jhoicas/backoffice-api/pkg/config"
)

type fakeMarker struct {
	calls atomic.Int32
	err   error
}

func (f *fakeMarker) MarkOverdue(ctx context.Context) (int, error) {
	f.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("sin deadline")
	}
	return 2, f.err
}

func TestScheduler_EjecutaSegunCron(t *testing.T) {
	m := &fakeMarker{}
	s := scheduler.New(config.SchedulerConfig{OverdueCron: "@every 1s"}, m, nil)
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return m.calls.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
}

func TestScheduler_CronInvalido(t *testing.T) {
	s := scheduler.New(config.SchedulerConfig{OverdueCron: "no es cron"}, &fakeMarker{}, nil)
	assert.Error(t, s.Start())
}

func TestScheduler_Deshabilitado(t *testing.T) {
	m := &fakeMarker{}
	s := scheduler.New(config.SchedulerConfig{}, m, nil)
	require.NoError(t, s.Start())
	s.Stop()
	assert.Zero(t, m.calls.Load())
}

func TestScheduler_RunOverdueToleraErrores(t *testing.T) {
	m := &fakeMarker{err: errors.New("db caída")}
	s := scheduler.New(config.SchedulerConfig{JobTimeout: time.Second}, m, nil)
	assert.NotPanics(t, s.RunOverdue)
	assert.Equal(t, int32(1), m.calls.Load())
}
