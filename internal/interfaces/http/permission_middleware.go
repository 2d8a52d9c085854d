package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tikprofil/tikprofil-api/internal/application/dto"
	"github.com/tikprofil/tikprofil-api/internal/domain/entity"
)

// RequirePermission autoriza la ruta contra la tabla estática de
// permissions. Debe usarse DESPUÉS de SessionMiddleware.
//
// El floor por rol es la autoridad final: la lista permissions[] del token
// solo puede recortar, jamás ampliar. IDs desconocidos fallan cerrado (403).
func RequirePermission(permissionID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_SESSION", Message: "sesión requerida"})
		}
		if !entity.GrantAllows(role, GetPermissions(c), permissionID) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "la sesión no tiene la permission '" + permissionID + "'",
			})
		}
		return c.Next()
	}
}
