// Package scheduler tareas periódicas del back-office (cron).
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/backoffice-api/pkg/config"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

// OverdueMarker marca como vencidas las deudas cuyo vencimiento pasó.
type OverdueMarker interface {
	MarkOverdue(ctx context.Context) (int, error)
}

// Scheduler ejecuta los jobs con robfig/cron (5 campos o descriptores @every/@hourly).
type Scheduler struct {
	cron    *cron.Cron
	overdue OverdueMarker
	cfg     config.SchedulerConfig
	log     *logger.Logger
}

// New construye el scheduler; no arranca nada hasta Start.
func New(cfg config.SchedulerConfig, overdue OverdueMarker, log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 2 * time.Minute
	}
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		overdue: overdue,
		cfg:     cfg,
		log:     log,
	}
}

// Start registra los jobs y arranca. OverdueCron vacío deja el job deshabilitado.
func (s *Scheduler) Start() error {
	if s.cfg.OverdueCron != "" {
		if _, err := s.cron.AddFunc(s.cfg.OverdueCron, s.RunOverdue); err != nil {
			return fmt.Errorf("programar deudas vencidas %q: %w", s.cfg.OverdueCron, err)
		}
	}
	s.log.Info().Str("overdue_cron", s.cfg.OverdueCron).Msg("scheduler iniciado")
	s.cron.Start()
	return nil
}

// Stop deja de programar y espera a que terminen los jobs en curso.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("scheduler detenido")
}

// RunOverdue ejecuta una pasada de deudas vencidas.
func (s *Scheduler) RunOverdue() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.JobTimeout)
	defer cancel()

	n, err := s.overdue.MarkOverdue(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("marcar deudas vencidas")
		return
	}
	if n > 0 {
		s.log.Info().Int("debts", n).Msg("deudas marcadas como vencidas")
	}
}
