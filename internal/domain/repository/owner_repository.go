package repository

import (
	"context"

	"github.com/tikprofil/tikprofil-api/internal/domain/entity"
)

// OwnerRepository puerto de persistencia para Owner.
type OwnerRepository interface {
	Create(ctx context.Context, owner *entity.Owner) error
	GetByID(ctx context.Context, id string) (*entity.Owner, error)
	FindByEmail(ctx context.Context, email string) (*entity.Owner, error)
	FindByBusiness(ctx context.Context, businessID string) (*entity.Owner, error)
	Update(ctx context.Context, owner *entity.Owner) error
	Delete(ctx context.Context, id string) error
}
