package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tikprofil/tikprofil-api/internal/application/dto"
	"github.com/tikprofil/tikprofil-api/internal/domain"
	"github.com/tikprofil/tikprofil-api/internal/domain/entity"
	"github.com/tikprofil/tikprofil-api/internal/domain/repository"
)

// BusinessUseCase administración de negocios (panel de administración).
type BusinessUseCase struct {
	businessRepo repository.BusinessRepository
	ownerRepo    repository.OwnerRepository
	staffRepo    repository.StaffRepository
	audit        *AuditRecorder
}

// NewBusinessUseCase construye el caso de uso con sus puertos.
func NewBusinessUseCase(
	businessRepo repository.BusinessRepository,
	ownerRepo repository.OwnerRepository,
	staffRepo repository.StaffRepository,
	audit *AuditRecorder,
) *BusinessUseCase {
	return &BusinessUseCase{businessRepo: businessRepo, ownerRepo: ownerRepo, staffRepo: staffRepo, audit: audit}
}

// Create da de alta un negocio junto con su owner inicial.
// Devuelve domain.ErrDuplicate si el slug ya existe y
// domain.ErrEmailAlreadyExists si el email del owner ya está registrado.
func (uc *BusinessUseCase) Create(ctx context.Context, in dto.CreateBusinessRequest) (*dto.BusinessResponse, error) {
	existing, err := uc.businessRepo.GetBySlug(ctx, in.Slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if owner, _ := uc.ownerRepo.FindByEmail(ctx, in.OwnerEmail); owner != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.OwnerPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	business := &entity.Business{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Slug:      in.Slug,
		Type:      in.Type,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.businessRepo.Create(ctx, business); err != nil {
		return nil, err
	}

	ownerName := in.OwnerName
	if ownerName == "" {
		ownerName = in.OwnerEmail
	}
	owner := &entity.Owner{
		ID:           uuid.New().String(),
		BusinessID:   business.ID,
		Email:        in.OwnerEmail,
		PasswordHash: string(hash),
		Name:         ownerName,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.ownerRepo.Create(ctx, owner); err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, entity.AuditEntry{
		BusinessID: business.ID,
		ActorRole:  entity.RoleAdmin,
		Action:     "create",
		Collection: entity.CollectionBusinesses,
		DocumentID: business.ID,
	})
	return businessToResponse(business), nil
}

// GetByID obtiene un negocio ((nil, nil) si no existe).
func (uc *BusinessUseCase) GetByID(ctx context.Context, id string) (*dto.BusinessResponse, error) {
	business, err := uc.businessRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, nil
	}
	return businessToResponse(business), nil
}

// List lista negocios con paginación aplicada sobre la colección completa
// (el store no pagina).
func (uc *BusinessUseCase) List(ctx context.Context, limit, offset int) (*dto.BusinessListResponse, error) {
	all, err := uc.businessRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	total := len(all)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	items := make([]dto.BusinessResponse, 0, end-offset)
	for _, b := range all[offset:end] {
		items = append(items, *businessToResponse(b))
	}
	return &dto.BusinessListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Update aplica cambios parciales. Devuelve domain.ErrNotFound si no existe.
func (uc *BusinessUseCase) Update(ctx context.Context, id string, in dto.UpdateBusinessRequest) (*dto.BusinessResponse, error) {
	business, err := uc.businessRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		business.Name = *in.Name
	}
	if in.Type != nil {
		business.Type = *in.Type
	}
	if in.Email != nil {
		business.Email = *in.Email
	}
	if in.Phone != nil {
		business.Phone = *in.Phone
	}
	if in.Address != nil {
		business.Address = *in.Address
	}
	if in.Status != nil {
		business.Status = *in.Status
	}
	business.UpdatedAt = time.Now()
	if err := uc.businessRepo.Update(ctx, business); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, entity.AuditEntry{
		BusinessID: business.ID,
		ActorRole:  entity.RoleAdmin,
		Action:     "update",
		Collection: entity.CollectionBusinesses,
		DocumentID: business.ID,
	})
	return businessToResponse(business), nil
}

// ForceLogout marca el negocio para revocar las sesiones vigentes de su
// owner y staff. El flag se limpia en el siguiente login exitoso.
func (uc *BusinessUseCase) ForceLogout(ctx context.Context, id string) error {
	business, err := uc.businessRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if business == nil {
		return domain.ErrNotFound
	}
	business.ForceLoggedOut = true
	business.UpdatedAt = time.Now()
	if err := uc.businessRepo.Update(ctx, business); err != nil {
		return err
	}
	uc.audit.Record(ctx, entity.AuditEntry{
		BusinessID: business.ID,
		ActorRole:  entity.RoleAdmin,
		Action:     "force_logout",
		Collection: entity.CollectionBusinesses,
		DocumentID: business.ID,
	})
	return nil
}

// Delete elimina el negocio junto con su owner y su staff.
func (uc *BusinessUseCase) Delete(ctx context.Context, id string) error {
	business, err := uc.businessRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if business == nil {
		return domain.ErrNotFound
	}
	if owner, err := uc.ownerRepo.FindByBusiness(ctx, id); err == nil && owner != nil {
		if err := uc.ownerRepo.Delete(ctx, owner.ID); err != nil {
			return err
		}
	}
	staffList, err := uc.staffRepo.ListByBusiness(ctx, id)
	if err != nil {
		return err
	}
	for _, s := range staffList {
		if err := uc.staffRepo.Delete(ctx, s.ID); err != nil {
			return err
		}
	}
	if err := uc.businessRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.audit.Record(ctx, entity.AuditEntry{
		BusinessID: id,
		ActorRole:  entity.RoleAdmin,
		Action:     "delete",
		Collection: entity.CollectionBusinesses,
		DocumentID: id,
	})
	return nil
}

func businessToResponse(b *entity.Business) *dto.BusinessResponse {
	if b == nil {
		return nil
	}
	return &dto.BusinessResponse{
		ID:             b.ID,
		Name:           b.Name,
		Slug:           b.Slug,
		Type:           b.Type,
		Email:          b.Email,
		Phone:          b.Phone,
		Address:        b.Address,
		Status:         b.Status,
		ForceLoggedOut: b.ForceLoggedOut,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}
