// Package maintenance agrupa las tareas periódicas de la plataforma
// (purga del cache TTL, retención del audit log) sobre un cron.
package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tikprofil/tikprofil-api/pkg/logger"
)

// Purger contrato del cache TTL (lo implementa pkg/cache.TTL).
type Purger interface {
	PurgeExpired() int
}

// AuditPurger contrato de la retención del audit log (lo implementa
// usecase.AuditRecorder).
type AuditPurger interface {
	PurgeOlderThan(ctx context.Context, cutoff time.Time)
}

// Scheduler envuelve el cron de mantenimiento.
type Scheduler struct {
	c   *cron.Cron
	log *logger.Logger
}

// NewScheduler construye el scheduler (no arranca hasta Start).
func NewScheduler(log *logger.Logger) *Scheduler {
	return &Scheduler{c: cron.New(), log: log}
}

// AddCachePurge purga las entradas vencidas del cache cada minuto.
func (s *Scheduler) AddCachePurge(p Purger) error {
	_, err := s.c.AddFunc("@every 1m", func() {
		if n := p.PurgeExpired(); n > 0 {
			s.log.Debug().Int("purged", n).Msg("cache: entradas vencidas purgadas")
		}
	})
	if err != nil {
		return fmt.Errorf("programar purga de cache: %w", err)
	}
	return nil
}

// AddAuditRetention aplica la retención del audit log cada día a las 03:00.
func (s *Scheduler) AddAuditRetention(p AuditPurger, retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	_, err := s.c.AddFunc("0 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		p.PurgeOlderThan(ctx, time.Now().AddDate(0, 0, -retentionDays))
	})
	if err != nil {
		return fmt.Errorf("programar retención de audit log: %w", err)
	}
	return nil
}

// Start arranca el cron en su propia goroutine.
func (s *Scheduler) Start() {
	s.c.Start()
}

// Stop detiene el cron y espera a que terminen los jobs en vuelo.
func (s *Scheduler) Stop() {
	<-s.c.Stop().Done()
}
