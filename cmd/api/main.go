package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tikprofil/tikprofil-api/internal/application/auth"
	"github.com/tikprofil/tikprofil-api/internal/application/maintenance"
	"github.com/tikprofil/tikprofil-api/internal/application/realtime"
	"github.com/tikprofil/tikprofil-api/internal/application/usecase"
	"github.com/tikprofil/tikprofil-api/internal/domain/repository"
	"github.com/tikprofil/tikprofil-api/internal/infrastructure/collections"
	"github.com/tikprofil/tikprofil-api/internal/infrastructure/legacyrest"
	"github.com/tikprofil/tikprofil-api/internal/infrastructure/memory"
	"github.com/tikprofil/tikprofil-api/internal/infrastructure/postgres"
	httpRouter "github.com/tikprofil/tikprofil-api/internal/interfaces/http"
	"github.com/tikprofil/tikprofil-api/pkg/cache"
	"github.com/tikprofil/tikprofil-api/pkg/config"
	"github.com/tikprofil/tikprofil-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Backend).
		Msg("iniciando aplicación")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Selección del backend documental. Todo lo demás (repos tipados, casos
	// de uso) opera contra el contrato y no distingue backend.
	var store repository.DocumentStore
	var feed *postgres.ChangeFeed
	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("esquema app_documents")
		}
		store = postgres.NewDocumentStore(pool, log)
		feed = postgres.NewChangeFeed(pool, log)
	case config.StoreBackendREST:
		client, err := legacyrest.NewClient(legacyrest.Config{
			BaseURL:    cfg.Store.RESTBaseURL,
			ServiceKey: cfg.Store.RESTServiceKey,
		}, log)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente del endpoint documental legado")
		}
		store = client
	case config.StoreBackendMemory:
		log.Warn().Msg("store en memoria: solo para desarrollo")
		store = memory.NewDocumentStore()
	default:
		log.Fatal().Str("backend", cfg.Store.Backend).Msg("backend de store desconocido")
	}

	businessRepo := collections.NewBusinessRepository(store)
	ownerRepo := collections.NewOwnerRepository(store)
	staffRepo := collections.NewStaffRepository(store)
	consultantRepo := collections.NewConsultantRepository(store)
	auditRepo := collections.NewAuditRepository(store)

	auditRecorder := usecase.NewAuditRecorder(auditRepo, log)
	authUC := auth.NewAuthUseCase(ownerRepo, staffRepo, consultantRepo, businessRepo, auditRecorder,
		auth.AdminConfig{
			Email:        cfg.Admin.Email,
			PasswordHash: cfg.Admin.PasswordHash,
		},
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		})
	businessUC := usecase.NewBusinessUseCase(businessRepo, ownerRepo, staffRepo, auditRecorder)
	staffUC := usecase.NewStaffUseCase(staffRepo, ownerRepo, auditRecorder)
	documentUC := usecase.NewDocumentUseCase(store, auditRecorder)

	profileCache := cache.New(time.Duration(cfg.Cache.ProfileTTLSeconds) * time.Second)
	profileUC := usecase.NewProfileUseCase(businessRepo, profileCache)

	// Pseudo-realtime: polling cada CACHE_POLL_SECONDS más un debounce sobre
	// el change feed (solo backend postgres). El debounce colapsa ráfagas de
	// notificaciones en un solo refetch.
	watcher := realtime.NewWatcher(time.Duration(cfg.Cache.PollSeconds)*time.Second, profileUC.RefreshAll, log)
	go watcher.Run(ctx)

	if feed != nil {
		debouncer := realtime.NewDebouncer(300*time.Millisecond, watcher.Kick)
		defer debouncer.Stop()
		go func() {
			for {
				err := feed.Listen(ctx, func(string) { debouncer.Trigger() })
				if err == nil || ctx.Err() != nil {
					return
				}
				log.Warn().Err(err).Msg("change feed cortado, reintentando")
				select {
				case <-ctx.Done():
					return
				case <-time.After(5 * time.Second):
				}
			}
		}()
	}

	scheduler := maintenance.NewScheduler(log)
	if err := scheduler.AddCachePurge(profileCache); err != nil {
		log.Fatal().Err(err).Msg("scheduler")
	}
	if err := scheduler.AddAuditRetention(auditRecorder, cfg.Audit.RetentionDays); err != nil {
		log.Fatal().Err(err).Msg("scheduler")
	}
	scheduler.Start()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tikprofil API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		BusinessUC: businessUC,
		StaffUC:    staffUC,
		DocumentUC: documentUC,
		ProfileUC:  profileUC,
		Metrics:    httpRouter.NewMetrics(cfg.App.Name),
		JWTSecret:  cfg.JWT.Secret,
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

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	scheduler.Stop()
	cancel()

	log.Info().Msg("aplicación detenida")
}
