package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/obras-api/internal/application/dto"
	"github.com/jhoicas/obras-api/internal/application/usecase"
	"github.com/jhoicas/obras-api/internal/domain"
	"github.com/jhoicas/obras-api/internal/domain/entity"
)

// WorkItemHandler tareas y alarmas de una obra.
type WorkItemHandler struct {
	uc *usecase.WorkItemUseCase
}

// NewWorkItemHandler construye el handler.
func NewWorkItemHandler(uc *usecase.WorkItemUseCase) *WorkItemHandler {
	return &WorkItemHandler{uc: uc}
}

// List godoc
// @Summary      Tareas de la obra
// @Tags         work-items
// @Security     Bearer
// @Produce      json
// @Param        id      path   int     true   "ID de la obra"
// @Param        status  query  string  false  "todo | done"
// @Success      200     {object}  dto.WorkItemsResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /sites/{id}/work-items [get]
func (h *WorkItemHandler) List(c *fiber.Ctx) error {
	siteID, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	status := c.Query("status")
	if status != "" && !entity.ValidWorkStatus(status) {
		return fail(c, fmt.Errorf("%w: status debe ser todo o done", domain.ErrInvalidInput))
	}
	out, err := h.uc.List(c.UserContext(), GetIdentity(c), siteID, status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Guardar tareas por lote
// @Description  Sin id se crea; con id se actualiza; delete_flag elimina. El lote se valida completo antes de escribir.
// @Tags         work-items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID de la obra"
// @Param        body  body  dto.SaveWorkItemsRequest  true  "Lote"
// @Success      200   {object}  dto.WorkItemsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /sites/{id}/work-items [post]
func (h *WorkItemHandler) Save(c *fiber.Ctx) error {
	siteID, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var in dto.SaveWorkItemsRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Save(c.UserContext(), GetIdentity(c), siteID, in.Items)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Alarms godoc
// @Summary      Alarmas vencidas sin confirmar
// @Tags         work-items
// @Security     Bearer
// @Produce      json
// @Param        id     path   int     true   "ID de la obra"
// @Param        today  query  string  false  "Fecha de referencia AAAA-MM-DD"
// @Success      200    {object}  dto.WorkItemsResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /sites/{id}/alarms [get]
func (h *WorkItemHandler) Alarms(c *fiber.Ctx) error {
	siteID, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	asOf, err := dto.ParseDate(c.Query("today"))
	if err != nil {
		return fail(c, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
	}
	out, err := h.uc.DueAlarms(c.UserContext(), GetIdentity(c), siteID, asOf)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ConfirmAlarms godoc
// @Summary      Confirmar alarmas
// @Tags         work-items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID de la obra"
// @Param        body  body  dto.ConfirmAlarmsRequest  true  "ids"
// @Success      200   {object}  dto.ConfirmAlarmsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /sites/{id}/alarms/confirm [post]
func (h *WorkItemHandler) ConfirmAlarms(c *fiber.Ctx) error {
	siteID, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var in dto.ConfirmAlarmsRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.ConfirmAlarms(c.UserContext(), GetIdentity(c), siteID, in.IDs)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
