package collections

import (
	"context"
	"fmt"

	"github.com/tikprofil/tikprofil-api/internal/domain/entity"
	"github.com/tikprofil/tikprofil-api/internal/domain/repository"
)

// Asegura que BusinessRepo implementa repository.BusinessRepository.
var _ repository.BusinessRepository = (*BusinessRepo)(nil)

// BusinessRepo persistencia de Business sobre la colección "businesses".
type BusinessRepo struct {
	store repository.DocumentStore
}

// NewBusinessRepository construye el adaptador sobre el document store.
func NewBusinessRepository(store repository.DocumentStore) *BusinessRepo {
	return &BusinessRepo{store: store}
}

// Create persiste un nuevo negocio.
func (r *BusinessRepo) Create(ctx context.Context, business *entity.Business) error {
	if _, err := r.store.CreateDocument(ctx, entity.CollectionBusinesses, businessToDocument(business), business.ID); err != nil {
		return fmt.Errorf("create business: %w", err)
	}
	return nil
}

// GetByID obtiene un negocio por ID ((nil, nil) si no existe).
func (r *BusinessRepo) GetByID(ctx context.Context, id string) (*entity.Business, error) {
	doc, err := r.store.GetDocument(ctx, entity.CollectionBusinesses, id)
	if err != nil {
		return nil, fmt.Errorf("get business: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	return businessFromDocument(doc), nil
}

// GetBySlug busca por slug filtrando del lado del cliente: el store no
// ofrece índices secundarios.
func (r *BusinessRepo) GetBySlug(ctx context.Context, slug string) (*entity.Business, error) {
	docs, err := r.store.GetCollection(ctx, entity.CollectionBusinesses)
	if err != nil {
		return nil, fmt.Errorf("get business by slug: %w", err)
	}
	for _, doc := range docs {
		if doc.GetString("slug") == slug {
			return businessFromDocument(doc), nil
		}
	}
	return nil, nil
}

// Update reescribe el documento completo del negocio.
func (r *BusinessRepo) Update(ctx context.Context, business *entity.Business) error {
	if _, err := r.store.CreateDocument(ctx, entity.CollectionBusinesses, businessToDocument(business), business.ID); err != nil {
		return fmt.Errorf("update business: %w", err)
	}
	return nil
}

// List devuelve todos los negocios.
func (r *BusinessRepo) List(ctx context.Context) ([]*entity.Business, error) {
	docs, err := r.store.GetCollection(ctx, entity.CollectionBusinesses)
	if err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	list := make([]*entity.Business, 0, len(docs))
	for _, doc := range docs {
		list = append(list, businessFromDocument(doc))
	}
	return list, nil
}

// Delete elimina un negocio por ID.
func (r *BusinessRepo) Delete(ctx context.Context, id string) error {
	if err := r.store.DeleteDocument(ctx, entity.CollectionBusinesses, id); err != nil {
		return fmt.Errorf("delete business: %w", err)
	}
	return nil
}

func businessToDocument(b *entity.Business) map[string]any {
	return map[string]any{
		"name":           b.Name,
		"slug":           b.Slug,
		"type":           b.Type,
		"email":          b.Email,
		"phone":          b.Phone,
		"address":        b.Address,
		"status":         b.Status,
		"forceLoggedOut": b.ForceLoggedOut,
		"createdAt":      encodeTime(b.CreatedAt),
		"updatedAt":      encodeTime(b.UpdatedAt),
	}
}

func businessFromDocument(doc entity.Document) *entity.Business {
	return &entity.Business{
		ID:             doc.ID(),
		Name:           doc.GetString("name"),
		Slug:           doc.GetString("slug"),
		Type:           doc.GetString("type"),
		Email:          doc.GetString("email"),
		Phone:          doc.GetString("phone"),
		Address:        doc.GetString("address"),
		Status:         doc.GetString("status"),
		ForceLoggedOut: doc.GetBool("forceLoggedOut"),
		CreatedAt:      decodeTime(doc.GetString("createdAt")),
		UpdatedAt:      decodeTime(doc.GetString("updatedAt")),
	}
}
