package usecase

import (
	"context"

	"github.com/tikprofil/tikprofil-api/internal/application/dto"
	"github.com/tikprofil/tikprofil-api/internal/domain"
	"github.com/tikprofil/tikprofil-api/internal/domain/entity"
	"github.com/tikprofil/tikprofil-api/internal/domain/repository"
	"github.com/tikprofil/tikprofil-api/pkg/cache"
)

// ProfileUseCase sirve el perfil público de un negocio por slug, con un
// cache TTL por delante. El cache es advisory: dos misses concurrentes
// pueden leer dos veces del store, y el watcher lo recalienta de fondo.
type ProfileUseCase struct {
	businessRepo repository.BusinessRepository
	cache        *cache.TTL
}

// NewProfileUseCase construye el caso de uso con el cache inyectado.
func NewProfileUseCase(businessRepo repository.BusinessRepository, c *cache.TTL) *ProfileUseCase {
	return &ProfileUseCase{businessRepo: businessRepo, cache: c}
}

// GetBySlug devuelve el perfil público. domain.ErrNotFound si el slug no
// existe o el negocio no está activo.
func (uc *ProfileUseCase) GetBySlug(ctx context.Context, slug string) (*dto.PublicProfileResponse, error) {
	if v, ok := uc.cache.Get(slug); ok {
		if resp, ok := v.(*dto.PublicProfileResponse); ok {
			return resp, nil
		}
	}
	business, err := uc.businessRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if business == nil || business.Status != "active" {
		return nil, domain.ErrNotFound
	}
	resp := businessToProfile(business)
	uc.cache.Set(slug, resp)
	return resp, nil
}

// RefreshAll recalienta el cache con todos los negocios activos. Lo invoca
// el watcher de polling y el debounce del change feed; el siguiente request
// por slug sale del cache recién puesto.
func (uc *ProfileUseCase) RefreshAll(ctx context.Context) error {
	businesses, err := uc.businessRepo.List(ctx)
	if err != nil {
		return err
	}
	for _, b := range businesses {
		if b.Status != "active" {
			uc.cache.Invalidate(b.Slug)
			continue
		}
		uc.cache.Set(b.Slug, businessToProfile(b))
	}
	return nil
}

// Invalidate elimina un slug del cache (tras mutaciones directas).
func (uc *ProfileUseCase) Invalidate(slug string) {
	uc.cache.Invalidate(slug)
}

func businessToProfile(b *entity.Business) *dto.PublicProfileResponse {
	return &dto.PublicProfileResponse{
		Name:    b.Name,
		Slug:    b.Slug,
		Type:    b.Type,
		Phone:   b.Phone,
		Address: b.Address,
	}
}
