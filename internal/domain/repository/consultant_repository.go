package repository

import (
	"context"

	"github.com/tikprofil/tikprofil-api/internal/domain/entity"
)

// ConsultantRepository puerto de persistencia para Consultant.
type ConsultantRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.Consultant, error)
}
