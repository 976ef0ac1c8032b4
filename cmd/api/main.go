package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/obras-api/internal/application/access"
	"github.com/jhoicas/obras-api/internal/application/auth"
	"github.com/jhoicas/obras-api/internal/application/export"
	"github.com/jhoicas/obras-api/internal/application/ports"
	"github.com/jhoicas/obras-api/internal/application/usecase"
	"github.com/jhoicas/obras-api/internal/domain/repository"
	"github.com/jhoicas/obras-api/internal/infrastructure/archive"
	"github.com/jhoicas/obras-api/internal/infrastructure/memory"
	"github.com/jhoicas/obras-api/internal/infrastructure/metrics"
	"github.com/jhoicas/obras-api/internal/infrastructure/objectstore"
	"github.com/jhoicas/obras-api/internal/infrastructure/photofetch"
	"github.com/jhoicas/obras-api/internal/infrastructure/postgres"
	"github.com/jhoicas/obras-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/obras-api/internal/interfaces/http"
	"github.com/jhoicas/obras-api/pkg/config"
	"github.com/jhoicas/obras-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var store repository.Store
	switch cfg.Storage.Backend {
	case config.StorageMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		store = memory.NewStore()
	default:
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, cfg.DB.ConnectionString()); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		store = postgres.NewStore(pool)
	}
	defer store.Close()

	// Fotos: S3/MinIO si hay endpoint; si no, disco local servido en /uploads.
	var (
		objects    ports.ObjectStorage
		localFiles bool
	)
	if cfg.Objects.Endpoint != "" {
		ms, err := objectstore.NewMinioStore(ctx, objectstore.MinioConfig{
			Endpoint:      cfg.Objects.Endpoint,
			AccessKey:     cfg.Objects.AccessKey,
			SecretKey:     cfg.Objects.SecretKey,
			UseSSL:        cfg.Objects.UseSSL,
			Bucket:        cfg.Objects.Bucket,
			PublicBaseURL: cfg.Objects.PublicBaseURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("almacenamiento de objetos")
		}
		objects = ms
	} else {
		fs, err := objectstore.NewFileStore(cfg.Objects.FileStorePath, cfg.Objects.FilePublicBaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("almacenamiento local de fotos")
		}
		objects, localFiles = fs, true
	}

	m := metrics.New("obras")

	guard := access.NewGuard(store.Sites())
	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, auth.Policy{
		AllowedEmailDomains: cfg.Auth.AllowedEmailDomains,
		AdminPromotionCode:  cfg.Auth.AdminPromotionCode,
		AdminMaxCount:       cfg.Auth.AdminMaxCount,
	}, log.Component("auth"))
	userUC := usecase.NewUserUseCase(store.Users(), cfg.Auth.AdminMaxCount, log.Component("users"))
	siteUC := usecase.NewSiteUseCase(store.Sites(), guard, log.Component("sites"))
	contactUC := usecase.NewContactUseCase(store.Contacts(), guard)
	productUC := usecase.NewProductUseCase(store.Products(), guard)
	integrationUC := usecase.NewIntegrationUseCase(store.Integrations(), guard, m, log.Component("integrations"))
	workItemUC := usecase.NewWorkItemUseCase(store.WorkItems(), guard)
	photoUC := usecase.NewPhotoUseCase(store.Photos(), objects, guard, log.Component("photos"))

	// Las URL relativas de fotos (FILE_PUBLIC_BASE_URL=/uploads) se descargan del propio servidor.
	fetcher := photofetch.NewClient(cfg.PhotoOrigin(), time.Duration(cfg.Export.PhotoTimeoutSeconds)*time.Second)
	exporter := export.NewEngine(store, xlsx.NewRenderer(), fetcher, archive.Factory,
		cfg.Export.MinSheetBytes, log.Component("export")).WithObserver(m)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    32 * 1024 * 1024,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 120,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders: "Content-Disposition, X-Export-Sites, X-Export-Failed-Sites",
	}))
	app.Use(httpRouter.RequestLogger(log.Component("http"), m))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Obras API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	if localFiles {
		app.Static("/uploads", cfg.Objects.FileStorePath)
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        userUC,
		SiteUC:        siteUC,
		ContactUC:     contactUC,
		ProductUC:     productUC,
		IntegrationUC: integrationUC,
		WorkItemUC:    workItemUC,
		PhotoUC:       photoUC,
		Exporter:      exporter,
		JWTSecret:     cfg.JWT.Secret,
		OfflineAuth:   cfg.Auth.OfflineMode,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
