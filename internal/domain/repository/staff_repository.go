package repository

import (
	"context"

	"github.com/tikprofil/tikprofil-api/internal/domain/entity"
)

// StaffRepository puerto de persistencia para Staff.
type StaffRepository interface {
	Create(ctx context.Context, staff *entity.Staff) error
	GetByID(ctx context.Context, id string) (*entity.Staff, error)
	FindByEmail(ctx context.Context, email string) (*entity.Staff, error)
	ListByBusiness(ctx context.Context, businessID string) ([]*entity.Staff, error)
	Update(ctx context.Context, staff *entity.Staff) error
	Delete(ctx context.Context, id string) error
}
