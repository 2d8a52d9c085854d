package collections

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tikprofil/tikprofil-api/internal/domain/entity"
	"github.com/tikprofil/tikprofil-api/internal/domain/repository"
)

// Asegura que AuditRepo implementa repository.AuditRepository.
var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo persistencia del audit log sobre la colección "audit_logs".
type AuditRepo struct {
	store repository.DocumentStore
}

// NewAuditRepository construye el adaptador sobre el document store.
func NewAuditRepository(store repository.DocumentStore) *AuditRepo {
	return &AuditRepo{store: store}
}

// Append agrega una entrada de auditoría.
func (r *AuditRepo) Append(ctx context.Context, e *entity.AuditEntry) error {
	id := e.ID
	if id == "" {
		id = uuid.New().String()
	}
	doc := map[string]any{
		"businessId": e.BusinessID,
		"actorId":    e.ActorID,
		"actorRole":  string(e.ActorRole),
		"action":     e.Action,
		"collection": e.Collection,
		"documentId": e.DocumentID,
		"createdAt":  encodeTime(e.CreatedAt),
	}
	if _, err := r.store.CreateDocument(ctx, entity.CollectionAuditLogs, doc, id); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

// DeleteOlderThan elimina entradas anteriores al corte (retención). El store
// no filtra por fecha, así que se recorre la colección del lado del cliente.
func (r *AuditRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	docs, err := r.store.GetCollection(ctx, entity.CollectionAuditLogs)
	if err != nil {
		return 0, fmt.Errorf("list audit entries: %w", err)
	}
	deleted := 0
	for _, doc := range docs {
		createdAt := decodeTime(doc.GetString("createdAt"))
		if createdAt.IsZero() || !createdAt.Before(cutoff) {
			continue
		}
		if err := r.store.DeleteDocument(ctx, entity.CollectionAuditLogs, doc.ID()); err != nil {
			return deleted, fmt.Errorf("delete audit entry %s: %w", doc.ID(), err)
		}
		deleted++
	}
	return deleted, nil
}
