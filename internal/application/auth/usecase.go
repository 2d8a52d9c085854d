package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tikprofil/tikprofil-api/internal/application/dto"
	"github.com/tikprofil/tikprofil-api/internal/domain"
	"github.com/tikprofil/tikprofil-api/internal/domain/entity"
	"github.com/tikprofil/tikprofil-api/internal/domain/repository"
	"github.com/tikprofil/tikprofil-api/pkg/session"
)

// JWTConfig configuración para la emisión de sesiones.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AdminConfig credenciales del panel de administración (desde entorno).
type AdminConfig struct {
	Email        string
	PasswordHash string
}

// Recorder contrato mínimo de auditoría que necesita auth (lo implementa
// usecase.AuditRecorder; la interfaz evita el import circular).
type Recorder interface {
	Record(ctx context.Context, entry entity.AuditEntry)
}

// AuthUseCase casos de uso de autenticación: login de owner/staff/admin/
// consultant, impersonación y chequeo de revocación por negocio.
//
// Todos los fallos de credenciales devuelven domain.ErrUnauthorized sin
// distinguir "usuario no existe" de "contraseña incorrecta".
type AuthUseCase struct {
	ownerRepo      repository.OwnerRepository
	staffRepo      repository.StaffRepository
	consultantRepo repository.ConsultantRepository
	businessRepo   repository.BusinessRepository
	audit          Recorder
	adminCfg       AdminConfig
	jwtCfg         JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	ownerRepo repository.OwnerRepository,
	staffRepo repository.StaffRepository,
	consultantRepo repository.ConsultantRepository,
	businessRepo repository.BusinessRepository,
	audit Recorder,
	adminCfg AdminConfig,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{
		ownerRepo:      ownerRepo,
		staffRepo:      staffRepo,
		consultantRepo: consultantRepo,
		businessRepo:   businessRepo,
		audit:          audit,
		adminCfg:       adminCfg,
		jwtCfg:         jwtCfg,
	}
}

// LoginOwner verifica credenciales del owner y emite una sesión con rol owner
// (sin lista de permissions: el rol pasa todas las del espacio de negocio).
// Re-autenticarse limpia el flag forceLoggedOut del negocio.
func (uc *AuthUseCase) LoginOwner(ctx context.Context, in dto.LoginRequest) (*dto.SessionResponse, error) {
	owner, err := uc.ownerRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if owner == nil || owner.Status != "active" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(owner.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if err := uc.clearForceLogout(ctx, owner.BusinessID); err != nil {
		return nil, err
	}
	resp, err := uc.issue(owner.ID, owner.BusinessID, entity.RoleOwner, nil)
	if err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, entity.AuditEntry{
		BusinessID: owner.BusinessID,
		ActorID:    owner.ID,
		ActorRole:  entity.RoleOwner,
		Action:     "login",
	})
	return resp, nil
}

// LoginStaff verifica credenciales del staff y emite una sesión con su rol
// (manager o staff) y su lista de permissions otorgadas.
func (uc *AuthUseCase) LoginStaff(ctx context.Context, in dto.LoginRequest) (*dto.SessionResponse, error) {
	staff, err := uc.staffRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if staff == nil || staff.Status != "active" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if err := uc.clearForceLogout(ctx, staff.BusinessID); err != nil {
		return nil, err
	}
	resp, err := uc.issue(staff.ID, staff.BusinessID, staff.Role, staff.Permissions)
	if err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, entity.AuditEntry{
		BusinessID: staff.BusinessID,
		ActorID:    staff.ID,
		ActorRole:  staff.Role,
		Action:     "login",
	})
	return resp, nil
}

// LoginAdmin verifica contra las credenciales provisionadas por entorno.
func (uc *AuthUseCase) LoginAdmin(ctx context.Context, in dto.LoginRequest) (*dto.SessionResponse, error) {
	if uc.adminCfg.Email == "" || uc.adminCfg.PasswordHash == "" {
		// Panel sin provisionar: cualquier intento falla igual que una
		// credencial incorrecta.
		return nil, domain.ErrUnauthorized
	}
	if in.Email != uc.adminCfg.Email {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.adminCfg.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	resp, err := uc.issue("admin", "", entity.RoleAdmin, nil)
	if err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, entity.AuditEntry{
		ActorID:   "admin",
		ActorRole: entity.RoleAdmin,
		Action:    "login",
	})
	return resp, nil
}

// LoginConsultant verifica credenciales de consultant (espacio admin,
// floor de solo lectura).
func (uc *AuthUseCase) LoginConsultant(ctx context.Context, in dto.LoginRequest) (*dto.SessionResponse, error) {
	consultant, err := uc.consultantRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if consultant == nil || consultant.Status != "active" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(consultant.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	resp, err := uc.issue(consultant.ID, "", entity.RoleConsultant, nil)
	if err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, entity.AuditEntry{
		ActorID:   consultant.ID,
		ActorRole: entity.RoleConsultant,
		Action:    "login",
	})
	return resp, nil
}

// Impersonate emite una sesión de owner del negocio indicado para un admin.
// El token resultante viaja en la cookie de impersonación, no en la de owner.
func (uc *AuthUseCase) Impersonate(ctx context.Context, adminID, businessID string) (*dto.SessionResponse, error) {
	business, err := uc.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, domain.ErrNotFound
	}
	owner, err := uc.ownerRepo.FindByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrNotFound
	}
	resp, err := uc.issue(owner.ID, businessID, entity.RoleOwner, nil)
	if err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, entity.AuditEntry{
		BusinessID: businessID,
		ActorID:    adminID,
		ActorRole:  entity.RoleAdmin,
		Action:     "impersonate",
	})
	return resp, nil
}

// IsForceLoggedOut chequeo de revocación por negocio, consultado por el
// middleware en cada request de owner/staff. Un negocio inexistente cuenta
// como revocado (falla cerrado).
func (uc *AuthUseCase) IsForceLoggedOut(ctx context.Context, businessID string) (bool, error) {
	business, err := uc.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return false, err
	}
	if business == nil {
		return true, nil
	}
	return business.ForceLoggedOut, nil
}

// clearForceLogout re-autenticarse satisface la revocación: el flag se limpia.
func (uc *AuthUseCase) clearForceLogout(ctx context.Context, businessID string) error {
	business, err := uc.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return err
	}
	if business == nil || !business.ForceLoggedOut {
		return nil
	}
	business.ForceLoggedOut = false
	business.UpdatedAt = time.Now()
	return uc.businessRepo.Update(ctx, business)
}

func (uc *AuthUseCase) issue(subjectID, businessID string, role entity.Role, permissions []string) (*dto.SessionResponse, error) {
	token, err := session.Generate(uc.jwtCfg.Secret, subjectID, businessID, string(role), permissions, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.SessionResponse{
		Token:       token,
		SubjectID:   subjectID,
		BusinessID:  businessID,
		Role:        string(role),
		Permissions: permissions,
		ExpiresAt:   time.Now().Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute),
	}, nil
}
