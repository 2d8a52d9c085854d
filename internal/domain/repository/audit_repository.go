package repository

import (
	"context"
	"time"

	"github.com/tikprofil/tikprofil-api/internal/domain/entity"
)

// AuditRepository puerto del audit log.
type AuditRepository interface {
	Append(ctx context.Context, entry *entity.AuditEntry) error
	// DeleteOlderThan elimina entradas anteriores al corte y devuelve cuántas.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
