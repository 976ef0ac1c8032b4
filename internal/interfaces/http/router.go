package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/obras-api/internal/application/auth"
	"github.com/jhoicas/obras-api/internal/application/usecase"
	"github.com/jhoicas/obras-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	SiteUC        *usecase.SiteUseCase
	ContactUC     *usecase.ContactUseCase
	ProductUC     *usecase.ProductUseCase
	IntegrationUC *usecase.IntegrationUseCase
	WorkItemUC    *usecase.WorkItemUseCase
	PhotoUC       *usecase.PhotoUseCase
	Exporter      Exporter
	JWTSecret     string
	OfflineAuth   bool
}

// Router registra las rutas de la API.
func Router(app fiber.Router, deps RouterDeps) {
	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := app.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	requireAuth := AuthMiddleware(deps.JWTSecret, deps.OfflineAuth)

	authGroup.Get("/profile", requireAuth, authHandler.Profile)
	authGroup.Post("/emergency-admin", requireAuth, authHandler.EmergencyAdmin)

	// Usuarios
	userHandler := NewUserHandler(deps.UserUC)
	app.Get("/users", requireAuth, userHandler.List)
	app.Patch("/admin/users/:id", requireAuth, RequireRole(entity.RoleAdmin), userHandler.ChangeRole)

	// Obras
	siteHandler := NewSiteHandler(deps.SiteUC)
	app.Post("/check-project-no", requireAuth, siteHandler.CheckProjectNo)
	sites := app.Group("/sites", requireAuth)
	sites.Post("/", siteHandler.Create)
	sites.Get("/", siteHandler.List)
	sites.Get("/:id", siteHandler.Get)
	sites.Patch("/:id", siteHandler.Update)
	sites.Put("/:id", siteHandler.Update)

	content := NewSiteContentHandler(deps.ContactUC, deps.ProductUC, deps.IntegrationUC)
	sites.Get("/:id/contacts", content.GetContacts)
	sites.Post("/:id/contacts", content.SaveContacts)
	sites.Get("/:id/products", content.GetProducts)
	sites.Post("/:id/products", content.SaveProducts)
	for _, scope := range []entity.IntegrationScope{entity.ScopeHousehold, entity.ScopeCommon} {
		sites.Get("/:id/integrations/"+string(scope), content.ListIntegrations(scope))
		sites.Post("/:id/integrations/"+string(scope), content.SaveIntegrations(scope))
		// Alias de la primera versión del cliente.
		sites.Post("/:id/"+string(scope), content.SaveIntegrations(scope))
	}

	// Tareas y alarmas
	workHandler := NewWorkItemHandler(deps.WorkItemUC)
	sites.Get("/:id/work-items", workHandler.List)
	sites.Post("/:id/work-items", workHandler.Save)
	sites.Get("/:id/alarms", workHandler.Alarms)
	sites.Post("/:id/alarms/confirm", workHandler.ConfirmAlarms)

	// Fotos
	photoHandler := NewPhotoHandler(deps.PhotoUC)
	sites.Get("/:id/photos", photoHandler.List)
	sites.Post("/:id/photos", photoHandler.Upload)
	sites.Delete("/:id/photos/:photoId", photoHandler.Delete)

	// Exportación
	exportHandler := NewExportHandler(deps.Exporter)
	app.Get("/export", requireAuth, exportHandler.Export)
}
