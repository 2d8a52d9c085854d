package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tikprofil/tikprofil-api/internal/application/dto"
	"github.com/tikprofil/tikprofil-api/internal/application/usecase"
	"github.com/tikprofil/tikprofil-api/internal/domain"
)

// ProfileHandler perfil público por slug (sin sesión).
type ProfileHandler struct {
	uc *usecase.ProfileUseCase
}

// NewProfileHandler construye el handler.
func NewProfileHandler(uc *usecase.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

// GetBySlug godoc
// @Summary      Perfil público de un negocio
// @Tags         public
// @Produce      json
// @Param        slug  path  string  true  "Slug del negocio"
// @Success      200   {object}  dto.PublicProfileResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/public/profiles/{slug} [get]
func (h *ProfileHandler) GetBySlug(c *fiber.Ctx) error {
	out, err := h.uc.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "perfil no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
