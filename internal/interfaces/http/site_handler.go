package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/obras-api/internal/application/dto"
	"github.com/jhoicas/obras-api/internal/application/usecase"
)

// SiteHandler alta, consulta y edición de obras (protegido).
type SiteHandler struct {
	uc *usecase.SiteUseCase
}

// NewSiteHandler construye el handler.
func NewSiteHandler(uc *usecase.SiteUseCase) *SiteHandler {
	return &SiteHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar obra
// @Tags         sites
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSiteRequest  true  "Datos de la obra"
// @Success      201   {object}  dto.SiteEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /sites [post]
func (h *SiteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSiteRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetIdentity(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SiteEnvelope{Message: "obra registrada", Site: out})
}

// List godoc
// @Summary      Listar obras visibles
// @Tags         sites
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SiteListResponse
// @Router       /sites [get]
func (h *SiteHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetIdentity(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener obra por ID
// @Tags         sites
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la obra"
// @Success      200  {object}  dto.SiteEnvelope
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /sites/{id} [get]
func (h *SiteHandler) Get(c *fiber.Ctx) error {
	siteID, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), GetIdentity(c), siteID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.SiteEnvelope{Site: out})
}

// Update godoc
// @Summary      Editar obra (parcial)
// @Tags         sites
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID de la obra"
// @Param        body  body  dto.UpdateSiteRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.SiteEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /sites/{id} [patch]
func (h *SiteHandler) Update(c *fiber.Ctx) error {
	siteID, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var in dto.UpdateSiteRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetIdentity(c), siteID, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.SiteEnvelope{Message: "obra actualizada", Site: out})
}

// CheckProjectNo godoc
// @Summary      Verificar número de proyecto
// @Tags         sites
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckProjectNoRequest  true  "project_no"
// @Success      200   {object}  dto.CheckProjectNoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /check-project-no [post]
func (h *SiteHandler) CheckProjectNo(c *fiber.Ctx) error {
	var in dto.CheckProjectNoRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.CheckProjectNo(c.UserContext(), GetIdentity(c), in.ProjectNo)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
