package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/obras-api/internal/application/dto"
	"github.com/jhoicas/obras-api/internal/application/usecase"
	"github.com/jhoicas/obras-api/internal/domain"
)

// PhotoHandler fotos de una obra.
type PhotoHandler struct {
	uc *usecase.PhotoUseCase
}

// NewPhotoHandler construye el handler.
func NewPhotoHandler(uc *usecase.PhotoUseCase) *PhotoHandler {
	return &PhotoHandler{uc: uc}
}

// List godoc
// @Summary      Fotos de la obra (paginado)
// @Tags         photos
// @Security     Bearer
// @Produce      json
// @Param        id         path   int  true   "ID de la obra"
// @Param        page       query  int  false  "Página"         default(1)
// @Param        page_size  query  int  false  "Tamaño"         default(20)
// @Success      200        {object}  dto.PhotoPageResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /sites/{id}/photos [get]
func (h *PhotoHandler) List(c *fiber.Ctx) error {
	siteID, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return fail(c, fmt.Errorf("%w: page y page_size deben ser enteros", domain.ErrInvalidInput))
	}
	out, err := h.uc.List(c.UserContext(), GetIdentity(c), siteID, page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Upload godoc
// @Summary      Subir foto
// @Tags         photos
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id     path      int     true   "ID de la obra"
// @Param        file   formData  file    true   "Imagen"
// @Param        title  formData  string  false  "Título"
// @Success      201    {object}  dto.PhotoEnvelope
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /sites/{id}/photos [post]
func (h *PhotoHandler) Upload(c *fiber.Ctx) error {
	siteID, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return fail(c, fmt.Errorf("%w: file es requerido", domain.ErrInvalidInput))
	}
	f, err := fh.Open()
	if err != nil {
		return fail(c, fmt.Errorf("abrir archivo subido: %w", err))
	}
	defer f.Close()

	out, err := h.uc.Upload(c.UserContext(), GetIdentity(c), siteID, usecase.PhotoUpload{
		Title:       c.FormValue("title"),
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar foto (lógico)
// @Tags         photos
// @Security     Bearer
// @Produce      json
// @Param        id       path  int  true  "ID de la obra"
// @Param        photoId  path  int  true  "ID de la foto"
// @Success      200      {object}  dto.MessageResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /sites/{id}/photos/{photoId} [delete]
func (h *PhotoHandler) Delete(c *fiber.Ctx) error {
	siteID, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	photoID, err := pathID(c, "photoId")
	if err != nil {
		return fail(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), GetIdentity(c), siteID, photoID); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "foto eliminada"})
}
