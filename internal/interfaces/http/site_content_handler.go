package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/obras-api/internal/application/dto"
	"github.com/jhoicas/obras-api/internal/application/usecase"
	"github.com/jhoicas/obras-api/internal/domain/entity"
)

// SiteContentHandler contactos, productos e integraciones de una obra.
type SiteContentHandler struct {
	contacts     *usecase.ContactUseCase
	products     *usecase.ProductUseCase
	integrations *usecase.IntegrationUseCase
}

// NewSiteContentHandler construye el handler.
func NewSiteContentHandler(contacts *usecase.ContactUseCase, products *usecase.ProductUseCase, integrations *usecase.IntegrationUseCase) *SiteContentHandler {
	return &SiteContentHandler{contacts: contacts, products: products, integrations: integrations}
}

// GetContacts godoc
// @Summary      Contactos de la obra
// @Tags         contacts
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la obra"
// @Success      200  {object}  dto.ContactsEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /sites/{id}/contacts [get]
func (h *SiteContentHandler) GetContacts(c *fiber.Ctx) error {
	siteID, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	out, err := h.contacts.Get(c.UserContext(), GetIdentity(c), siteID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.ContactsEnvelope{Contacts: out})
}

// SaveContacts godoc
// @Summary      Guardar contactos de la obra
// @Description  Las listas ausentes no se modifican; una lista vacía borra la categoría.
// @Tags         contacts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "ID de la obra"
// @Param        body  body  dto.ContactsRequest  true  "Responsables y listas"
// @Success      200   {object}  dto.ContactsEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /sites/{id}/contacts [post]
func (h *SiteContentHandler) SaveContacts(c *fiber.Ctx) error {
	siteID, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var in dto.ContactsRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.contacts.Save(c.UserContext(), GetIdentity(c), siteID, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.ContactsEnvelope{Message: "contactos guardados", Contacts: out})
}

// GetProducts godoc
// @Summary      Productos de la obra
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la obra"
// @Success      200  {object}  dto.ProductsEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /sites/{id}/products [get]
func (h *SiteContentHandler) GetProducts(c *fiber.Ctx) error {
	siteID, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	out, err := h.products.Get(c.UserContext(), GetIdentity(c), siteID)
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return c.JSON(dto.ProductsEnvelope{Status: usecase.StatusNoData})
	}
	return c.JSON(dto.ProductsEnvelope{Products: out})
}

// SaveProducts godoc
// @Summary      Guardar productos de la obra
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "ID de la obra"
// @Param        body  body  dto.ProductsRequest  true  "Modelo y cantidad por ranura"
// @Success      200   {object}  dto.ProductsEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /sites/{id}/products [post]
func (h *SiteContentHandler) SaveProducts(c *fiber.Ctx) error {
	siteID, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var in dto.ProductsRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.products.Save(c.UserContext(), GetIdentity(c), siteID, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ListIntegrations godoc
// @Summary      Integraciones de la obra por ámbito
// @Tags         integrations
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la obra"
// @Success      200  {object}  dto.IntegrationsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /sites/{id}/integrations/household [get]
// @Router       /sites/{id}/integrations/common [get]
func (h *SiteContentHandler) ListIntegrations(scope entity.IntegrationScope) fiber.Handler {
	return func(c *fiber.Ctx) error {
		siteID, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		out, err := h.integrations.List(c.UserContext(), GetIdentity(c), scope, siteID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(out)
	}
}

// SaveIntegrations godoc
// @Summary      Guardar integraciones de la obra por ámbito
// @Description  Escritura por (obra, tipo). Los tipos fuera de la lista del ámbito se omiten.
// @Tags         integrations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "ID de la obra"
// @Param        body  body  dto.IntegrationsRequest  true  "Elementos"
// @Success      200   {object}  dto.IntegrationsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /sites/{id}/integrations/household [post]
// @Router       /sites/{id}/integrations/common [post]
func (h *SiteContentHandler) SaveIntegrations(scope entity.IntegrationScope) fiber.Handler {
	return func(c *fiber.Ctx) error {
		siteID, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		var in dto.IntegrationsRequest
		if err := bind(c, &in); err != nil {
			return fail(c, err)
		}
		out, err := h.integrations.Save(c.UserContext(), GetIdentity(c), scope, siteID, in.Items)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(out)
	}
}
