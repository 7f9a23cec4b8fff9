package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/pandastore/facturacion/internal/application/auth"
	"github.com/pandastore/facturacion/internal/application/billing"
	"github.com/pandastore/facturacion/internal/application/dto"
	"github.com/pandastore/facturacion/internal/application/usecase"
	"github.com/pandastore/facturacion/internal/domain/catalog"
	"github.com/pandastore/facturacion/internal/domain/entity"
	"github.com/pandastore/facturacion/internal/domain/repository"
	infraai "github.com/pandastore/facturacion/internal/infrastructure/ai"
	"github.com/pandastore/facturacion/internal/infrastructure/memory"
	infrapdf "github.com/pandastore/facturacion/internal/infrastructure/pdf"
	"github.com/pandastore/facturacion/internal/infrastructure/postgres"
	"github.com/pandastore/facturacion/internal/infrastructure/storage"
	httpRouter "github.com/pandastore/facturacion/internal/interfaces/http"
	"github.com/pandastore/facturacion/pkg/config"
	"github.com/pandastore/facturacion/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Catálogo: PostgreSQL si está configurado, si no la lista en memoria.
	var catalogRepo repository.CatalogRepository = memory.NewCatalogRepository(catalog.Default())
	catalogSource := "memory"
	if cfg.DB.Enabled {
		pool, err := postgres.NewPool(ctx, cfg.DB, log.WithComponent("postgres"))
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		catalogRepo = postgres.NewCatalogRepository(pool)
		catalogSource = "postgres"
	}

	var archive billing.DocumentArchive
	if cfg.Storage.Enabled() {
		s3Archive, err := storage.NewS3Archive(ctx, cfg.Storage, log.WithComponent("storage"))
		if err != nil {
			log.Fatal().Err(err).Msg("archivo S3")
		}
		archive = s3Archive
	}

	logo, err := infrapdf.LoadLogo(cfg.Invoice.LogoPath)
	if err != nil {
		log.Warn().Err(err).Msg("logo por defecto no disponible, se factura sin logo")
		logo = nil
	}

	extractor, err := infraai.NewExtractor(cfg.AI)
	if err != nil {
		log.Fatal().Err(err).Msg("proveedor de IA")
	}
	aiUC := usecase.NewAIUseCase(extractor)

	renderer := infrapdf.NewInvoiceRenderer(entity.PandaStore,
		infrapdf.WithLogger(log.WithComponent("pdf")),
	)
	renderUC := billing.NewRenderUseCase(renderer, archive, logo, cfg.Invoice.ExchangeRate, log.WithComponent("billing"))
	drafts := memory.NewDraftStore()
	draftUC := billing.NewDraftUseCase(billing.DraftDeps{
		Store:     drafts,
		Catalog:   catalogRepo,
		Extractor: aiUC,
		Renderer:  renderUC,
		Labels:    infrapdf.NewMarotoLabelGenerator(entity.PandaStore),
		Sequence:  billing.NewSequence(cfg.Invoice.FirstNumber),
		Rate:      cfg.Invoice.ExchangeRate,
		Log:       log.WithComponent("drafts"),
	})

	authUC := auth.NewAuthUseCase(cfg.Auth.OperatorUser, cfg.Auth.OperatorPasswordHash, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if cfg.Auth.OperatorPasswordHash == "" {
		log.Warn().Msg("OPERATOR_PASSWORD_HASH vacío: el login queda deshabilitado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    20 * 1024 * 1024, // imágenes en base64
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.WithComponent("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if !httpRouter.Docs(app, cfg.HTTP.SwaggerFile, "PandaStore Facturación API") {
		log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("sin documentación OpenAPI, /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		CatalogUC: usecase.NewCatalogUseCase(catalogRepo),
		AIUC:      aiUC,
		RenderUC:  renderUC,
		DraftUC:   draftUC,
		JWTSecret: cfg.JWT.Secret,
		Health: dto.HealthResponse{
			Status:  "ok",
			App:     cfg.App.Name,
			Catalog: catalogSource,
			Archive: archive != nil,
		},
	})

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go drafts.RunJanitor(janitorCtx, cfg.Invoice.DraftTTL, 0, log.WithComponent("drafts"))

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
