package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/obras-api/internal/application/dto"
	"github.com/jhoicas/obras-api/internal/application/usecase"
)

// UserHandler directorio de usuarios y gestión de roles.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Directorio de usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        q   query  string  false  "Filtro por nombre o email"
// @Success      200  {object}  dto.UserListResponse
// @Router       /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("q"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ChangeRole godoc
// @Summary      Cambiar rol de un usuario (admin)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID del usuario"
// @Param        body  body  dto.ChangeRoleRequest  true  "nuevo rol"
// @Success      200   {object}  dto.UserResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /admin/users/{id} [patch]
func (h *UserHandler) ChangeRole(c *fiber.Ctx) error {
	targetID, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var in dto.ChangeRoleRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.ChangeRole(c.UserContext(), GetUserID(c), targetID, in.Role)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
