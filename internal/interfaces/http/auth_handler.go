package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tikprofil/tikprofil-api/internal/application/auth"
	"github.com/tikprofil/tikprofil-api/internal/application/dto"
	"github.com/tikprofil/tikprofil-api/internal/domain"
)

// AuthHandler maneja los logins de cada audiencia, logout, identidad de la
// sesión e impersonación. El token va en el cuerpo y además en la cookie
// HttpOnly correspondiente.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func setSessionCookie(c *fiber.Ctx, name, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearSessionCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *AuthHandler) login(c *fiber.Ctx, cookieName string, fn func(dto.LoginRequest) (*dto.SessionResponse, error)) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	out, err := fn(in)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: "credenciales inválidas"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	setSessionCookie(c, cookieName, out.Token, out.ExpiresAt)
	return c.JSON(out)
}

// LoginOwner godoc
// @Summary      Login de owner
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.SessionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/owner/login [post]
func (h *AuthHandler) LoginOwner(c *fiber.Ctx) error {
	return h.login(c, CookieOwnerSession, func(in dto.LoginRequest) (*dto.SessionResponse, error) {
		return h.uc.LoginOwner(c.Context(), in)
	})
}

// LoginStaff godoc
// @Summary      Login de staff
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.SessionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/staff/login [post]
func (h *AuthHandler) LoginStaff(c *fiber.Ctx) error {
	return h.login(c, CookieStaffSession, func(in dto.LoginRequest) (*dto.SessionResponse, error) {
		return h.uc.LoginStaff(c.Context(), in)
	})
}

// LoginAdmin godoc
// @Summary      Login de administrador de plataforma
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.SessionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/admin/login [post]
func (h *AuthHandler) LoginAdmin(c *fiber.Ctx) error {
	return h.login(c, CookieAdminSession, func(in dto.LoginRequest) (*dto.SessionResponse, error) {
		return h.uc.LoginAdmin(c.Context(), in)
	})
}

// LoginConsultant godoc
// @Summary      Login de consultor
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.SessionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/consultant/login [post]
func (h *AuthHandler) LoginConsultant(c *fiber.Ctx) error {
	return h.login(c, CookieConsultantSession, func(in dto.LoginRequest) (*dto.SessionResponse, error) {
		return h.uc.LoginConsultant(c.Context(), in)
	})
}

// Logout godoc
// @Summary      Cerrar sesión (limpia todas las cookies de sesión)
// @Tags         auth
// @Produce      json
// @Success      204  "Sin contenido"
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	for _, name := range []string{CookieAdminSession, CookieOwnerSession, CookieStaffSession, CookieConsultantSession, CookieImpersonate} {
		clearSessionCookie(c, name)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me godoc
// @Summary      Identidad de la sesión actual
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MeResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(dto.MeResponse{
		SubjectID:   GetSubjectID(c),
		BusinessID:  GetBusinessID(c),
		Role:        string(GetRole(c)),
		Permissions: GetPermissions(c),
	})
}

// Impersonate godoc
// @Summary      Emitir sesión de owner de un negocio (solo admin)
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImpersonateRequest  true  "Negocio a impersonar"
// @Success      200   {object}  dto.SessionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/impersonate [post]
func (h *AuthHandler) Impersonate(c *fiber.Ctx) error {
	var in dto.ImpersonateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.BusinessID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "business_id es requerido"})
	}
	out, err := h.uc.Impersonate(c.Context(), GetSubjectID(c), in.BusinessID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "negocio u owner no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	// La sesión impersonada viaja en su propia cookie: la de admin queda
	// intacta y el panel de negocio la encuentra primero.
	setSessionCookie(c, CookieImpersonate, out.Token, out.ExpiresAt)
	return c.JSON(out)
}
