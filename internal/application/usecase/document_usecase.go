package usecase

import (
	"context"

	"github.com/tikprofil/tikprofil-api/internal/domain"
	"github.com/tikprofil/tikprofil-api/internal/domain/entity"
	"github.com/tikprofil/tikprofil-api/internal/domain/repository"
)

// Clave con la que se estampa el tenant en cada documento del panel de
// negocio. El store no aplica aislamiento: este caso de uso es quien filtra.
const documentKeyBusinessID = "businessId"

// DocumentUseCase CRUD genérico de documentos. Las operaciones con prefijo
// del negocio estampan y filtran por businessId; las Admin* acceden crudo.
type DocumentUseCase struct {
	store repository.DocumentStore
	audit *AuditRecorder
}

// NewDocumentUseCase construye el caso de uso sobre el store.
func NewDocumentUseCase(store repository.DocumentStore, audit *AuditRecorder) *DocumentUseCase {
	return &DocumentUseCase{store: store, audit: audit}
}

// List devuelve los documentos de la colección que pertenecen al negocio.
func (uc *DocumentUseCase) List(ctx context.Context, businessID, collection string) ([]entity.Document, error) {
	if entity.IsReservedCollection(collection) {
		return nil, domain.ErrReservedCollection
	}
	docs, err := uc.store.GetCollection(ctx, collection)
	if err != nil {
		return nil, err
	}
	var out []entity.Document
	for _, doc := range docs {
		if doc.GetString(documentKeyBusinessID) == businessID {
			out = append(out, doc)
		}
	}
	return out, nil
}

// Get devuelve el documento si pertenece al negocio; (nil, nil) si no existe
// o es de otro tenant (misma respuesta: no filtra información).
func (uc *DocumentUseCase) Get(ctx context.Context, businessID, collection, id string) (entity.Document, error) {
	if entity.IsReservedCollection(collection) {
		return nil, domain.ErrReservedCollection
	}
	doc, err := uc.store.GetDocument(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	if doc == nil || doc.GetString(documentKeyBusinessID) != businessID {
		return nil, nil
	}
	return doc, nil
}

// Create crea/upserta estampando el tenant. Con id explícito el upsert solo
// procede si el documento existente pertenece al mismo negocio.
func (uc *DocumentUseCase) Create(ctx context.Context, actorID, businessID, collection string, data map[string]any, id string) (string, error) {
	if entity.IsReservedCollection(collection) {
		return "", domain.ErrReservedCollection
	}
	if id != "" {
		existing, err := uc.store.GetDocument(ctx, collection, id)
		if err != nil {
			return "", err
		}
		if existing != nil && existing.GetString(documentKeyBusinessID) != businessID {
			return "", domain.ErrForbidden
		}
	}
	stamped := make(map[string]any, len(data)+1)
	for k, v := range data {
		stamped[k] = v
	}
	stamped[documentKeyBusinessID] = businessID

	newID, err := uc.store.CreateDocument(ctx, collection, stamped, id)
	if err != nil {
		return "", err
	}
	uc.audit.Record(ctx, entity.AuditEntry{
		BusinessID: businessID,
		ActorID:    actorID,
		Action:     "create",
		Collection: collection,
		DocumentID: newID,
	})
	return newID, nil
}

// Update merge parcial sobre un documento del negocio. El parche no puede
// mover el documento de tenant: businessId se descarta del partial.
func (uc *DocumentUseCase) Update(ctx context.Context, actorID, businessID, collection, id string, partial map[string]any) error {
	doc, err := uc.Get(ctx, businessID, collection, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return domain.ErrNotFound
	}
	clean := make(map[string]any, len(partial))
	for k, v := range partial {
		if k == documentKeyBusinessID || k == entity.DocumentKeyID {
			continue
		}
		clean[k] = v
	}
	if err := uc.store.UpdateDocument(ctx, collection, id, clean); err != nil {
		return err
	}
	uc.audit.Record(ctx, entity.AuditEntry{
		BusinessID: businessID,
		ActorID:    actorID,
		Action:     "update",
		Collection: collection,
		DocumentID: id,
	})
	return nil
}

// Delete elimina un documento del negocio. domain.ErrNotFound si no existe
// o es de otro tenant.
func (uc *DocumentUseCase) Delete(ctx context.Context, actorID, businessID, collection, id string) error {
	doc, err := uc.Get(ctx, businessID, collection, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return domain.ErrNotFound
	}
	if err := uc.store.DeleteDocument(ctx, collection, id); err != nil {
		return err
	}
	uc.audit.Record(ctx, entity.AuditEntry{
		BusinessID: businessID,
		ActorID:    actorID,
		Action:     "delete",
		Collection: collection,
		DocumentID: id,
	})
	return nil
}

// AdminList acceso crudo a una colección, incluidas las reservadas.
func (uc *DocumentUseCase) AdminList(ctx context.Context, collection string) ([]entity.Document, error) {
	return uc.store.GetCollection(ctx, collection)
}

// AdminGet acceso crudo a un documento ((nil, nil) si no existe).
func (uc *DocumentUseCase) AdminGet(ctx context.Context, collection, id string) (entity.Document, error) {
	return uc.store.GetDocument(ctx, collection, id)
}

// AdminCreate crea/upserta sin estampar tenant.
func (uc *DocumentUseCase) AdminCreate(ctx context.Context, actorID, collection string, data map[string]any, id string) (string, error) {
	newID, err := uc.store.CreateDocument(ctx, collection, data, id)
	if err != nil {
		return "", err
	}
	uc.audit.Record(ctx, entity.AuditEntry{
		ActorID:    actorID,
		ActorRole:  entity.RoleAdmin,
		Action:     "create",
		Collection: collection,
		DocumentID: newID,
	})
	return newID, nil
}

// AdminUpdate merge parcial crudo.
func (uc *DocumentUseCase) AdminUpdate(ctx context.Context, actorID, collection, id string, partial map[string]any) error {
	if err := uc.store.UpdateDocument(ctx, collection, id, partial); err != nil {
		return err
	}
	uc.audit.Record(ctx, entity.AuditEntry{
		ActorID:    actorID,
		ActorRole:  entity.RoleAdmin,
		Action:     "update",
		Collection: collection,
		DocumentID: id,
	})
	return nil
}

// AdminDelete borrado crudo.
func (uc *DocumentUseCase) AdminDelete(ctx context.Context, actorID, collection, id string) error {
	if err := uc.store.DeleteDocument(ctx, collection, id); err != nil {
		return err
	}
	uc.audit.Record(ctx, entity.AuditEntry{
		ActorID:    actorID,
		ActorRole:  entity.RoleAdmin,
		Action:     "delete",
		Collection: collection,
		DocumentID: id,
	})
	return nil
}
