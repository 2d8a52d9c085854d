package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tikprofil/tikprofil-api/internal/application/auth"
	"github.com/tikprofil/tikprofil-api/internal/application/dto"
	"github.com/tikprofil/tikprofil-api/internal/application/usecase"
	"github.com/tikprofil/tikprofil-api/internal/domain"
	"github.com/tikprofil/tikprofil-api/internal/domain/entity"
	"github.com/tikprofil/tikprofil-api/internal/infrastructure/collections"
	"github.com/tikprofil/tikprofil-api/internal/infrastructure/memory"
	"github.com/tikprofil/tikprofil-api/pkg/logger"
	"github.com/tikprofil/tikprofil-api/pkg/session"
)

const testSecret = "test-secret-key-for-unit-tests"

type fixture struct {
	uc           *auth.AuthUseCase
	businessRepo *collections.BusinessRepo
	ownerRepo    *collections.OwnerRepo
	staffRepo    *collections.StaffRepo
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

// newFixture arma el caso de uso sobre el store en memoria, con un negocio
// activo, su owner y un empleado staff ya provisionados.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewDocumentStore()
	businessRepo := collections.NewBusinessRepository(store)
	ownerRepo := collections.NewOwnerRepository(store)
	staffRepo := collections.NewStaffRepository(store)
	consultantRepo := collections.NewConsultantRepository(store)
	audit := usecase.NewAuditRecorder(collections.NewAuditRepository(store), logger.Nop())

	ctx := context.Background()
	now := time.Now()
	require.NoError(t, businessRepo.Create(ctx, &entity.Business{
		ID: "biz-1", Name: "Pizzería Napoli", Slug: "napoli", Type: "restaurant",
		Status: "active", CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, ownerRepo.Create(ctx, &entity.Owner{
		ID: "owner-1", BusinessID: "biz-1", Email: "owner@napoli.test",
		PasswordHash: hashOf(t, "secreto1"), Name: "Dueño", Status: "active",
		CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, staffRepo.Create(ctx, &entity.Staff{
		ID: "staff-1", BusinessID: "biz-1", Email: "mozo@napoli.test",
		PasswordHash: hashOf(t, "secreto2"), Name: "Mozo", Role: entity.RoleStaff,
		Permissions: []string{"restaurant.orders"}, Status: "active",
		CreatedAt: now, UpdatedAt: now,
	}))
	// Los consultants se provisionan vía el CRUD crudo de documentos.
	_, err := store.CreateDocument(ctx, entity.CollectionConsultants, map[string]any{
		"email":        "consultor@tikprofil.test",
		"passwordHash": hashOf(t, "secreto3"),
		"name":         "Consultor",
		"status":       "active",
	}, "cons-1")
	require.NoError(t, err)

	uc := auth.NewAuthUseCase(ownerRepo, staffRepo, consultantRepo, businessRepo, audit,
		auth.AdminConfig{Email: "admin@tikprofil.test", PasswordHash: hashOf(t, "admin-secreto")},
		auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "tikprofil-test"},
	)
	return &fixture{uc: uc, businessRepo: businessRepo, ownerRepo: ownerRepo, staffRepo: staffRepo}
}

func TestLoginOwner_EmiteSesionConRolOwner(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.LoginOwner(context.Background(), dto.LoginRequest{Email: "owner@napoli.test", Password: "secreto1"})
	require.NoError(t, err)

	claims, err := session.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", claims.SubjectID)
	assert.Equal(t, "biz-1", claims.BusinessID)
	assert.Equal(t, "owner", claims.Role)
	assert.Empty(t, claims.Permissions)
}

// Credencial incorrecta, usuario inexistente y cuenta inactiva responden
// idéntico: ErrUnauthorized, sin filtrar cuál fue el caso.
func TestLoginOwner_FallosUniformes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.LoginOwner(ctx, dto.LoginRequest{Email: "owner@napoli.test", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.uc.LoginOwner(ctx, dto.LoginRequest{Email: "nadie@napoli.test", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	owner, err := f.ownerRepo.FindByEmail(ctx, "owner@napoli.test")
	require.NoError(t, err)
	owner.Status = "suspended"
	require.NoError(t, f.ownerRepo.Update(ctx, owner))

	_, err = f.uc.LoginOwner(ctx, dto.LoginRequest{Email: "owner@napoli.test", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLoginStaff_LlevaRolYPermissions(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.LoginStaff(context.Background(), dto.LoginRequest{Email: "mozo@napoli.test", Password: "secreto2"})
	require.NoError(t, err)

	claims, err := session.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "staff", claims.Role)
	assert.Equal(t, []string{"restaurant.orders"}, claims.Permissions)
}

func TestLoginAdmin_ContraCredencialesDeEntorno(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.uc.LoginAdmin(ctx, dto.LoginRequest{Email: "admin@tikprofil.test", Password: "admin-secreto"})
	require.NoError(t, err)
	assert.Equal(t, "admin", out.Role)
	assert.Empty(t, out.BusinessID, "una sesión admin no pertenece a ningún negocio")

	_, err = f.uc.LoginAdmin(ctx, dto.LoginRequest{Email: "admin@tikprofil.test", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLoginConsultant(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.LoginConsultant(context.Background(), dto.LoginRequest{Email: "consultor@tikprofil.test", Password: "secreto3"})
	require.NoError(t, err)
	assert.Equal(t, "consultant", out.Role)
}

func TestForceLogout_SeLimpiaConReLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	business, err := f.businessRepo.GetByID(ctx, "biz-1")
	require.NoError(t, err)
	business.ForceLoggedOut = true
	require.NoError(t, f.businessRepo.Update(ctx, business))

	revoked, err := f.uc.IsForceLoggedOut(ctx, "biz-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// Re-autenticarse satisface la revocación.
	_, err = f.uc.LoginOwner(ctx, dto.LoginRequest{Email: "owner@napoli.test", Password: "secreto1"})
	require.NoError(t, err)

	revoked, err = f.uc.IsForceLoggedOut(ctx, "biz-1")
	require.NoError(t, err)
	assert.False(t, revoked, "el login exitoso limpia el flag")
}

// Un negocio inexistente cuenta como revocado: el chequeo falla cerrado.
func TestIsForceLoggedOut_NegocioInexistenteFallaCerrado(t *testing.T) {
	f := newFixture(t)

	revoked, err := f.uc.IsForceLoggedOut(context.Background(), "biz-fantasma")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestImpersonate_EmiteSesionDelOwner(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Impersonate(context.Background(), "admin", "biz-1")
	require.NoError(t, err)

	claims, err := session.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", claims.SubjectID, "la sesión impersonada es la del owner del negocio")
	assert.Equal(t, "owner", claims.Role)
	assert.Equal(t, "biz-1", claims.BusinessID)
}

func TestImpersonate_NegocioInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Impersonate(context.Background(), "admin", "biz-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
