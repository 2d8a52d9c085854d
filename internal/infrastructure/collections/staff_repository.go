package collections

import (
	"context"
	"fmt"
	"strings"

	"github.com/tikprofil/tikprofil-api/internal/domain/entity"
	"github.com/tikprofil/tikprofil-api/internal/domain/repository"
)

// Asegura que StaffRepo implementa repository.StaffRepository.
var _ repository.StaffRepository = (*StaffRepo)(nil)

// StaffRepo persistencia de Staff sobre la colección "business_staff".
type StaffRepo struct {
	store repository.DocumentStore
}

// NewStaffRepository construye el adaptador sobre el document store.
func NewStaffRepository(store repository.DocumentStore) *StaffRepo {
	return &StaffRepo{store: store}
}

// Create persiste un nuevo miembro del staff.
func (r *StaffRepo) Create(ctx context.Context, staff *entity.Staff) error {
	if _, err := r.store.CreateDocument(ctx, entity.CollectionStaff, staffToDocument(staff), staff.ID); err != nil {
		return fmt.Errorf("create staff: %w", err)
	}
	return nil
}

// GetByID obtiene un miembro del staff por ID ((nil, nil) si no existe).
func (r *StaffRepo) GetByID(ctx context.Context, id string) (*entity.Staff, error) {
	doc, err := r.store.GetDocument(ctx, entity.CollectionStaff, id)
	if err != nil {
		return nil, fmt.Errorf("get staff: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	return staffFromDocument(doc), nil
}

// FindByEmail busca por email (case-insensitive, filtro del lado del cliente).
func (r *StaffRepo) FindByEmail(ctx context.Context, email string) (*entity.Staff, error) {
	docs, err := r.store.GetCollection(ctx, entity.CollectionStaff)
	if err != nil {
		return nil, fmt.Errorf("find staff by email: %w", err)
	}
	for _, doc := range docs {
		if strings.EqualFold(doc.GetString("email"), email) {
			return staffFromDocument(doc), nil
		}
	}
	return nil, nil
}

// ListByBusiness filtra el staff del negocio del lado del cliente
// (aislamiento multi-tenant: el store no lo aplica).
func (r *StaffRepo) ListByBusiness(ctx context.Context, businessID string) ([]*entity.Staff, error) {
	docs, err := r.store.GetCollection(ctx, entity.CollectionStaff)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	var list []*entity.Staff
	for _, doc := range docs {
		if doc.GetString("businessId") == businessID {
			list = append(list, staffFromDocument(doc))
		}
	}
	return list, nil
}

// Update reescribe el documento completo del staff.
func (r *StaffRepo) Update(ctx context.Context, staff *entity.Staff) error {
	if _, err := r.store.CreateDocument(ctx, entity.CollectionStaff, staffToDocument(staff), staff.ID); err != nil {
		return fmt.Errorf("update staff: %w", err)
	}
	return nil
}

// Delete elimina un miembro del staff por ID.
func (r *StaffRepo) Delete(ctx context.Context, id string) error {
	if err := r.store.DeleteDocument(ctx, entity.CollectionStaff, id); err != nil {
		return fmt.Errorf("delete staff: %w", err)
	}
	return nil
}

func staffToDocument(s *entity.Staff) map[string]any {
	return map[string]any{
		"businessId":   s.BusinessID,
		"email":        s.Email,
		"passwordHash": s.PasswordHash,
		"name":         s.Name,
		"role":         string(s.Role),
		"permissions":  s.Permissions,
		"status":       s.Status,
		"createdAt":    encodeTime(s.CreatedAt),
		"updatedAt":    encodeTime(s.UpdatedAt),
	}
}

func staffFromDocument(doc entity.Document) *entity.Staff {
	role, err := entity.ParseRole(doc.GetString("role"))
	if err != nil {
		// Documento legado o corrupto: degradar al rol de menor privilegio.
		role = entity.RoleStaff
	}
	return &entity.Staff{
		ID:           doc.ID(),
		BusinessID:   doc.GetString("businessId"),
		Email:        doc.GetString("email"),
		PasswordHash: doc.GetString("passwordHash"),
		Name:         doc.GetString("name"),
		Role:         role,
		Permissions:  decodeStrings(doc["permissions"]),
		Status:       doc.GetString("status"),
		CreatedAt:    decodeTime(doc.GetString("createdAt")),
		UpdatedAt:    decodeTime(doc.GetString("updatedAt")),
	}
}
