package collections

import (
	"context"
	"fmt"
	"strings"

	"github.com/tikprofil/tikprofil-api/internal/domain/entity"
	"github.com/tikprofil/tikprofil-api/internal/domain/repository"
)

// Asegura que ConsultantRepo implementa repository.ConsultantRepository.
var _ repository.ConsultantRepository = (*ConsultantRepo)(nil)

// ConsultantRepo persistencia de Consultant sobre la colección "consultants".
// Las cuentas las provisiona el admin vía el CRUD de documentos del panel.
type ConsultantRepo struct {
	store repository.DocumentStore
}

// NewConsultantRepository construye el adaptador sobre el document store.
func NewConsultantRepository(store repository.DocumentStore) *ConsultantRepo {
	return &ConsultantRepo{store: store}
}

// FindByEmail busca por email (case-insensitive, filtro del lado del cliente).
func (r *ConsultantRepo) FindByEmail(ctx context.Context, email string) (*entity.Consultant, error) {
	docs, err := r.store.GetCollection(ctx, entity.CollectionConsultants)
	if err != nil {
		return nil, fmt.Errorf("find consultant by email: %w", err)
	}
	for _, doc := range docs {
		if strings.EqualFold(doc.GetString("email"), email) {
			return &entity.Consultant{
				ID:           doc.ID(),
				Email:        doc.GetString("email"),
				PasswordHash: doc.GetString("passwordHash"),
				Name:         doc.GetString("name"),
				Status:       doc.GetString("status"),
				CreatedAt:    decodeTime(doc.GetString("createdAt")),
				UpdatedAt:    decodeTime(doc.GetString("updatedAt")),
			}, nil
		}
	}
	return nil, nil
}
