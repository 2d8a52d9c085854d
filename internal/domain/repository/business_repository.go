package repository

import (
	"context"

	"github.com/tikprofil/tikprofil-api/internal/domain/entity"
)

// BusinessRepository puerto de persistencia para Business (DIP).
// La implementación vive en infrastructure, sobre el DocumentStore.
type BusinessRepository interface {
	Create(ctx context.Context, business *entity.Business) error
	GetByID(ctx context.Context, id string) (*entity.Business, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Business, error)
	Update(ctx context.Context, business *entity.Business) error
	List(ctx context.Context) ([]*entity.Business, error)
	Delete(ctx context.Context, id string) error
}
