package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tikprofil/tikprofil-api/internal/application/dto"
	"github.com/tikprofil/tikprofil-api/internal/application/usecase"
	"github.com/tikprofil/tikprofil-api/internal/domain"
	"github.com/tikprofil/tikprofil-api/internal/domain/entity"
)

// DocumentHandler CRUD genérico de documentos. Las rutas del panel de
// negocio filtran por el tenant de la sesión; las de admin acceden crudo,
// colecciones reservadas incluidas.
type DocumentHandler struct {
	uc *usecase.DocumentUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *usecase.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

func documentsToItems(docs []entity.Document) []map[string]any {
	items := make([]map[string]any, 0, len(docs))
	for _, d := range docs {
		items = append(items, map[string]any(d))
	}
	return items
}

func documentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrReservedCollection):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "RESERVED_COLLECTION", Message: "colección reservada de la plataforma"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el documento pertenece a otro negocio"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "documento no encontrado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// List godoc
// @Summary      Listar documentos de una colección (del negocio)
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        collection  path  string  true  "Colección"
// @Success      200  {object}  dto.DocumentListResponse
// @Router       /api/panel/documents/{collection} [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	docs, err := h.uc.List(c.Context(), GetBusinessID(c), c.Params("collection"))
	if err != nil {
		return documentError(c, err)
	}
	return c.JSON(dto.DocumentListResponse{Items: documentsToItems(docs)})
}

// Get godoc
// @Summary      Obtener documento (del negocio)
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        collection  path  string  true  "Colección"
// @Param        id          path  string  true  "ID del documento"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/panel/documents/{collection}/{id} [get]
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	doc, err := h.uc.Get(c.Context(), GetBusinessID(c), c.Params("collection"), c.Params("id"))
	if err != nil {
		return documentError(c, err)
	}
	if doc == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "documento no encontrado"})
	}
	return c.JSON(doc)
}

// Create godoc
// @Summary      Crear documento (del negocio)
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        collection  path  string  true  "Colección"
// @Param        body        body  dto.CreateDocumentRequest  true  "Documento"
// @Success      201  {object}  dto.CreateDocumentResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/panel/documents/{collection} [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Data == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "data es requerido"})
	}
	id, err := h.uc.Create(c.Context(), GetSubjectID(c), GetBusinessID(c), c.Params("collection"), in.Data, in.ID)
	if err != nil {
		return documentError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateDocumentResponse{ID: id})
}

// Update godoc
// @Summary      Actualizar documento con merge parcial (del negocio)
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        collection  path  string  true  "Colección"
// @Param        id          path  string  true  "ID del documento"
// @Param        body        body  map[string]any  true  "Campos a mergear"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/panel/documents/{collection}/{id} [patch]
func (h *DocumentHandler) Update(c *fiber.Ctx) error {
	var partial map[string]any
	if err := c.BodyParser(&partial); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Update(c.Context(), GetSubjectID(c), GetBusinessID(c), c.Params("collection"), c.Params("id"), partial); err != nil {
		return documentError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar documento (del negocio)
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        collection  path  string  true  "Colección"
// @Param        id          path  string  true  "ID del documento"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/panel/documents/{collection}/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetSubjectID(c), GetBusinessID(c), c.Params("collection"), c.Params("id")); err != nil {
		return documentError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AdminList godoc
// @Summary      Listar documentos crudos de una colección
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        collection  path  string  true  "Colección"
// @Success      200  {object}  dto.DocumentListResponse
// @Router       /api/admin/documents/{collection} [get]
func (h *DocumentHandler) AdminList(c *fiber.Ctx) error {
	docs, err := h.uc.AdminList(c.Context(), c.Params("collection"))
	if err != nil {
		return documentError(c, err)
	}
	return c.JSON(dto.DocumentListResponse{Items: documentsToItems(docs)})
}

// AdminGet godoc
// @Summary      Obtener documento crudo
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        collection  path  string  true  "Colección"
// @Param        id          path  string  true  "ID del documento"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/documents/{collection}/{id} [get]
func (h *DocumentHandler) AdminGet(c *fiber.Ctx) error {
	doc, err := h.uc.AdminGet(c.Context(), c.Params("collection"), c.Params("id"))
	if err != nil {
		return documentError(c, err)
	}
	if doc == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "documento no encontrado"})
	}
	return c.JSON(doc)
}

// AdminCreate godoc
// @Summary      Crear documento crudo
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        collection  path  string  true  "Colección"
// @Param        body        body  dto.CreateDocumentRequest  true  "Documento"
// @Success      201  {object}  dto.CreateDocumentResponse
// @Router       /api/admin/documents/{collection} [post]
func (h *DocumentHandler) AdminCreate(c *fiber.Ctx) error {
	var in dto.CreateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Data == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "data es requerido"})
	}
	id, err := h.uc.AdminCreate(c.Context(), GetSubjectID(c), c.Params("collection"), in.Data, in.ID)
	if err != nil {
		return documentError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateDocumentResponse{ID: id})
}

// AdminUpdate godoc
// @Summary      Actualizar documento crudo con merge parcial
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        collection  path  string  true  "Colección"
// @Param        id          path  string  true  "ID del documento"
// @Param        body        body  map[string]any  true  "Campos a mergear"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/documents/{collection}/{id} [patch]
func (h *DocumentHandler) AdminUpdate(c *fiber.Ctx) error {
	var partial map[string]any
	if err := c.BodyParser(&partial); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.AdminUpdate(c.Context(), GetSubjectID(c), c.Params("collection"), c.Params("id"), partial); err != nil {
		return documentError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AdminDelete godoc
// @Summary      Eliminar documento crudo
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        collection  path  string  true  "Colección"
// @Param        id          path  string  true  "ID del documento"
// @Success      204  "Sin contenido"
// @Router       /api/admin/documents/{collection}/{id} [delete]
func (h *DocumentHandler) AdminDelete(c *fiber.Ctx) error {
	if err := h.uc.AdminDelete(c.Context(), GetSubjectID(c), c.Params("collection"), c.Params("id")); err != nil {
		return documentError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
