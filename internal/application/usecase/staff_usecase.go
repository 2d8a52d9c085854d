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

// StaffUseCase gestión del staff de un negocio (owner/manager). Todas las
// operaciones están scoped al businessID de la sesión que las invoca.
type StaffUseCase struct {
	staffRepo repository.StaffRepository
	ownerRepo repository.OwnerRepository
	audit     *AuditRecorder
}

// NewStaffUseCase construye el caso de uso.
func NewStaffUseCase(staffRepo repository.StaffRepository, ownerRepo repository.OwnerRepository, audit *AuditRecorder) *StaffUseCase {
	return &StaffUseCase{staffRepo: staffRepo, ownerRepo: ownerRepo, audit: audit}
}

// Create da de alta un empleado. El rol debe ser manager o staff y cada
// permission otorgada debe existir en la tabla estática; de lo contrario
// domain.ErrInvalidInput. Devuelve domain.ErrEmailAlreadyExists si el email
// ya está registrado (staff u owner).
func (uc *StaffUseCase) Create(ctx context.Context, actorID, businessID string, in dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	role, err := entity.ParseRole(in.Role)
	if err != nil || (role != entity.RoleManager && role != entity.RoleStaff) {
		return nil, domain.ErrInvalidInput
	}
	if err := validatePermissions(in.Permissions); err != nil {
		return nil, err
	}
	if existing, _ := uc.staffRepo.FindByEmail(ctx, in.Email); existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if existing, _ := uc.ownerRepo.FindByEmail(ctx, in.Email); existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	staff := &entity.Staff{
		ID:           uuid.New().String(),
		BusinessID:   businessID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Permissions:  in.Permissions,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.staffRepo.Create(ctx, staff); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, entity.AuditEntry{
		BusinessID: businessID,
		ActorID:    actorID,
		Action:     "create",
		Collection: entity.CollectionStaff,
		DocumentID: staff.ID,
	})
	return staffToResponse(staff), nil
}

// List devuelve el staff del negocio.
func (uc *StaffUseCase) List(ctx context.Context, businessID string) (*dto.StaffListResponse, error) {
	list, err := uc.staffRepo.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StaffResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *staffToResponse(s))
	}
	return &dto.StaffListResponse{Items: items}, nil
}

// Update aplica cambios parciales. domain.ErrNotFound si el empleado no
// existe o pertenece a otro negocio (sin filtrar información).
func (uc *StaffUseCase) Update(ctx context.Context, actorID, businessID, staffID string, in dto.UpdateStaffRequest) (*dto.StaffResponse, error) {
	staff, err := uc.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if staff == nil || staff.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		staff.Name = *in.Name
	}
	if in.Role != nil {
		role, err := entity.ParseRole(*in.Role)
		if err != nil || (role != entity.RoleManager && role != entity.RoleStaff) {
			return nil, domain.ErrInvalidInput
		}
		staff.Role = role
	}
	if in.Permissions != nil {
		if err := validatePermissions(*in.Permissions); err != nil {
			return nil, err
		}
		staff.Permissions = *in.Permissions
	}
	if in.Status != nil {
		staff.Status = *in.Status
	}
	staff.UpdatedAt = time.Now()
	if err := uc.staffRepo.Update(ctx, staff); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, entity.AuditEntry{
		BusinessID: businessID,
		ActorID:    actorID,
		Action:     "update",
		Collection: entity.CollectionStaff,
		DocumentID: staff.ID,
	})
	return staffToResponse(staff), nil
}

// Delete elimina un empleado del negocio.
func (uc *StaffUseCase) Delete(ctx context.Context, actorID, businessID, staffID string) error {
	staff, err := uc.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return err
	}
	if staff == nil || staff.BusinessID != businessID {
		return domain.ErrNotFound
	}
	if err := uc.staffRepo.Delete(ctx, staffID); err != nil {
		return err
	}
	uc.audit.Record(ctx, entity.AuditEntry{
		BusinessID: businessID,
		ActorID:    actorID,
		Action:     "delete",
		Collection: entity.CollectionStaff,
		DocumentID: staffID,
	})
	return nil
}

// validatePermissions rechaza IDs fuera de la tabla estática o del espacio
// de administración: un staff jamás lleva grants de admin.
func validatePermissions(ids []string) error {
	for _, id := range ids {
		p, ok := entity.LookupPermission(id)
		if !ok || p.MinRole.IsAdminSide() {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

func staffToResponse(s *entity.Staff) *dto.StaffResponse {
	if s == nil {
		return nil
	}
	return &dto.StaffResponse{
		ID:          s.ID,
		BusinessID:  s.BusinessID,
		Email:       s.Email,
		Name:        s.Name,
		Role:        string(s.Role),
		Permissions: s.Permissions,
		Status:      s.Status,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
