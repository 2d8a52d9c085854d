package usecase

import (
	"context"
	"time"

	"github.com/tikprofil/tikprofil-api/internal/domain/entity"
	"github.com/tikprofil/tikprofil-api/internal/domain/repository"
	"github.com/tikprofil/tikprofil-api/pkg/logger"
)

// AuditRecorder escribe el audit log. Es deliberadamente best-effort: un
// fallo al auditar se registra en el logger y jamás falla la operación
// principal que lo originó.
type AuditRecorder struct {
	repo repository.AuditRepository
	log  *logger.Logger
}

// NewAuditRecorder construye el recorder.
func NewAuditRecorder(repo repository.AuditRepository, log *logger.Logger) *AuditRecorder {
	return &AuditRecorder{repo: repo, log: log}
}

// Record agrega una entrada; completa CreatedAt si falta y traga el error.
func (a *AuditRecorder) Record(ctx context.Context, entry entity.AuditEntry) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if err := a.repo.Append(ctx, &entry); err != nil {
		a.log.Warn().Err(err).
			Str("action", entry.Action).
			Str("collection", entry.Collection).
			Msg("audit log falló")
	}
}

// PurgeOlderThan aplica la retención configurada (lo invoca el scheduler).
func (a *AuditRecorder) PurgeOlderThan(ctx context.Context, cutoff time.Time) {
	deleted, err := a.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		a.log.Warn().Err(err).Msg("retención de audit log falló")
		return
	}
	if deleted > 0 {
		a.log.Info().Int("deleted", deleted).Msg("audit log: entradas purgadas")
	}
}
