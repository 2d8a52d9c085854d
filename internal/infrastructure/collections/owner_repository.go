package collections

import (
	"context"
	"fmt"
	"strings"

	"github.com/tikprofil/tikprofil-api/internal/domain/entity"
	"github.com/tikprofil/tikprofil-api/internal/domain/repository"
)

// Asegura que OwnerRepo implementa repository.OwnerRepository.
var _ repository.OwnerRepository = (*OwnerRepo)(nil)

// OwnerRepo persistencia de Owner sobre la colección "business_owners".
type OwnerRepo struct {
	store repository.DocumentStore
}

// NewOwnerRepository construye el adaptador sobre el document store.
func NewOwnerRepository(store repository.DocumentStore) *OwnerRepo {
	return &OwnerRepo{store: store}
}

// Create persiste un nuevo owner.
func (r *OwnerRepo) Create(ctx context.Context, owner *entity.Owner) error {
	if _, err := r.store.CreateDocument(ctx, entity.CollectionOwners, ownerToDocument(owner), owner.ID); err != nil {
		return fmt.Errorf("create owner: %w", err)
	}
	return nil
}

// GetByID obtiene un owner por ID ((nil, nil) si no existe).
func (r *OwnerRepo) GetByID(ctx context.Context, id string) (*entity.Owner, error) {
	doc, err := r.store.GetDocument(ctx, entity.CollectionOwners, id)
	if err != nil {
		return nil, fmt.Errorf("get owner: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	return ownerFromDocument(doc), nil
}

// FindByEmail busca por email (case-insensitive, filtro del lado del cliente).
func (r *OwnerRepo) FindByEmail(ctx context.Context, email string) (*entity.Owner, error) {
	docs, err := r.store.GetCollection(ctx, entity.CollectionOwners)
	if err != nil {
		return nil, fmt.Errorf("find owner by email: %w", err)
	}
	for _, doc := range docs {
		if strings.EqualFold(doc.GetString("email"), email) {
			return ownerFromDocument(doc), nil
		}
	}
	return nil, nil
}

// FindByBusiness devuelve el owner del negocio (a lo sumo uno por negocio).
func (r *OwnerRepo) FindByBusiness(ctx context.Context, businessID string) (*entity.Owner, error) {
	docs, err := r.store.GetCollection(ctx, entity.CollectionOwners)
	if err != nil {
		return nil, fmt.Errorf("find owner by business: %w", err)
	}
	for _, doc := range docs {
		if doc.GetString("businessId") == businessID {
			return ownerFromDocument(doc), nil
		}
	}
	return nil, nil
}

// Update reescribe el documento completo del owner.
func (r *OwnerRepo) Update(ctx context.Context, owner *entity.Owner) error {
	if _, err := r.store.CreateDocument(ctx, entity.CollectionOwners, ownerToDocument(owner), owner.ID); err != nil {
		return fmt.Errorf("update owner: %w", err)
	}
	return nil
}

// Delete elimina un owner por ID.
func (r *OwnerRepo) Delete(ctx context.Context, id string) error {
	if err := r.store.DeleteDocument(ctx, entity.CollectionOwners, id); err != nil {
		return fmt.Errorf("delete owner: %w", err)
	}
	return nil
}

func ownerToDocument(o *entity.Owner) map[string]any {
	return map[string]any{
		"businessId":   o.BusinessID,
		"email":        o.Email,
		"passwordHash": o.PasswordHash,
		"name":         o.Name,
		"status":       o.Status,
		"createdAt":    encodeTime(o.CreatedAt),
		"updatedAt":    encodeTime(o.UpdatedAt),
	}
}

func ownerFromDocument(doc entity.Document) *entity.Owner {
	return &entity.Owner{
		ID:           doc.ID(),
		BusinessID:   doc.GetString("businessId"),
		Email:        doc.GetString("email"),
		PasswordHash: doc.GetString("passwordHash"),
		Name:         doc.GetString("name"),
		Status:       doc.GetString("status"),
		CreatedAt:    decodeTime(doc.GetString("createdAt")),
		UpdatedAt:    decodeTime(doc.GetString("updatedAt")),
	}
}
