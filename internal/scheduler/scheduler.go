package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	applifecycle "github.com/jhoicas/Alquileres-api/internal/application/lifecycle"
	"github.com/jhoicas/Alquileres-api/pkg/config"
	"github.com/jhoicas/Alquileres-api/pkg/logger"
)

// Scheduler ejecuta tareas periódicas del servicio. Hoy solo el barrido de
// transiciones huérfanas (cambios de estado sin evento de traslado registrado).
type Scheduler struct {
	cron  *cron.Cron
	sweep *applifecycle.Sweep
	cfg   config.SweepConfig
	log   *logger.Logger
}

// New construye el scheduler. No arranca nada hasta Start.
func New(cfg config.SweepConfig, sweep *applifecycle.Sweep, log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	// Parser estándar de 5 campos (min, hora, día, mes, día-semana).
	return &Scheduler{
		cron:  cron.New(),
		sweep: sweep,
		cfg:   cfg,
		log:   log,
	}
}

// Start programa el barrido y arranca el cron. Si el barrido está
// deshabilitado no hace nada.
func (s *Scheduler) Start() {
	if !s.cfg.Enabled {
		s.log.Info().Msg("barrido de consistencia deshabilitado")
		return
	}
	if _, err := s.cron.AddFunc(s.cfg.Schedule, s.runSweep); err != nil {
		s.log.Error().Err(err).Str("schedule", s.cfg.Schedule).Msg("no se pudo programar el barrido de consistencia")
		return
	}
	s.log.Info().Str("schedule", s.cfg.Schedule).Msg("barrido de consistencia programado")
	s.cron.Start()
}

// Stop detiene el cron. Las tareas en curso terminan por su cuenta.
func (s *Scheduler) Stop() {
	s.log.Info().Msg("deteniendo scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	orphans, err := s.sweep.Run(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("barrido de consistencia fallido")
		return
	}
	s.log.Info().Int("huerfanas", orphans).Msg("barrido de consistencia completado")
}
