package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tikprofil/tikprofil-api/internal/application/dto"
	"github.com/tikprofil/tikprofil-api/internal/domain/entity"
	"github.com/tikprofil/tikprofil-api/pkg/session"
)

// Cookies de sesión de la plataforma: una por audiencia, todas HttpOnly y
// con scope "/". La de impersonación lleva una sesión de owner emitida a
// un admin.
const (
	CookieAdminSession      = "tikprofil_session"
	CookieOwnerSession      = "tikprofil_owner_session"
	CookieStaffSession      = "tikprofil_staff_session"
	CookieConsultantSession = "tikprofil_consultant_session"
	CookieImpersonate       = "tikprofil_impersonate"
)

// Locals keys para los datos de la sesión en Fiber.
const (
	LocalSubjectID   = "subject_id"
	LocalBusinessID  = "business_id"
	LocalRole        = "role"
	LocalPermissions = "permissions"
)

// SessionMiddleware valida la sesión firmada y carga sus claims a c.Locals.
// Busca el token en las cookies indicadas (en orden) y, como fallback para
// clientes de API, en el header Authorization Bearer. Responde 401 genérico:
// nunca distingue por qué falló más allá de expirado vs inválido.
func SessionMiddleware(jwtSecret string, cookieNames ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := ""
		for _, name := range cookieNames {
			if v := c.Cookies(name); v != "" {
				tokenString = v
				break
			}
		}
		if tokenString == "" {
			if authHeader := c.Get("Authorization"); authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
					tokenString = strings.TrimSpace(parts[1])
				}
			}
		}
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_SESSION", Message: "sesión requerida"})
		}

		claims, err := session.Parse(jwtSecret, tokenString)
		if err != nil {
			if errors.Is(err, session.ErrExpired) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SESSION_EXPIRED", Message: "sesión expirada"})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SESSION", Message: "sesión inválida"})
		}
		role, err := entity.ParseRole(claims.Role)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SESSION", Message: "sesión inválida"})
		}

		c.Locals(LocalSubjectID, claims.SubjectID)
		c.Locals(LocalBusinessID, claims.BusinessID)
		c.Locals(LocalRole, role)
		c.Locals(LocalPermissions, claims.Permissions)
		return c.Next()
	}
}

// forceLogoutChecker contrato mínimo del chequeo de revocación por negocio.
// Lo implementa *auth.AuthUseCase; la interfaz evita el import circular.
type forceLogoutChecker interface {
	IsForceLoggedOut(ctx context.Context, businessID string) (bool, error)
}

// CheckForceLogout consulta el flag forceLoggedOut del negocio de la sesión.
// Debe usarse DESPUÉS de SessionMiddleware en rutas de owner/staff.
//
// Comportamiento:
//   - 401 SESSION_REVOKED → el negocio fue marcado (o ya no existe).
//   - 503 → fallo de infraestructura al consultar; mejor no decidir.
func CheckForceLogout(checker forceLogoutChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		businessID := GetBusinessID(c)
		if businessID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SESSION", Message: "la sesión no pertenece a un negocio"})
		}
		revoked, err := checker.IsForceLoggedOut(c.Context(), businessID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "REVOCATION_CHECK_FAILED", Message: "no se pudo verificar la sesión, intente más tarde"})
		}
		if revoked {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SESSION_REVOKED", Message: "la sesión fue revocada"})
		}
		return c.Next()
	}
}

// GetSubjectID devuelve el sujeto de la sesión (después del middleware).
func GetSubjectID(c *fiber.Ctx) string {
	v := c.Locals(LocalSubjectID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetBusinessID devuelve el negocio de la sesión ("" en sesiones admin).
func GetBusinessID(c *fiber.Ctx) string {
	v := c.Locals(LocalBusinessID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRole devuelve el rol de la sesión ("" si no hay sesión).
func GetRole(c *fiber.Ctx) entity.Role {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	r, _ := v.(entity.Role)
	return r
}

// GetPermissions devuelve la lista de grants del token (nil = sin recorte).
func GetPermissions(c *fiber.Ctx) []string {
	v := c.Locals(LocalPermissions)
	if v == nil {
		return nil
	}
	p, _ := v.([]string)
	return p
}
