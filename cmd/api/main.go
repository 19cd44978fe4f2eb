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

	_ "github.com/jhoicas/lagerverwaltung-api/docs"
	"github.com/jhoicas/lagerverwaltung-api/internal/application/auth"
	"github.com/jhoicas/lagerverwaltung-api/internal/application/inventory"
	"github.com/jhoicas/lagerverwaltung-api/internal/application/report"
	"github.com/jhoicas/lagerverwaltung-api/internal/application/usecase"
	"github.com/jhoicas/lagerverwaltung-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/lagerverwaltung-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/lagerverwaltung-api/internal/interfaces/http"
	"github.com/jhoicas/lagerverwaltung-api/pkg/config"
	"github.com/jhoicas/lagerverwaltung-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	b, err := newBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer b.Close()

	m := metrics.New()

	supplierUC := usecase.NewSupplierUseCase(b.suppliers)
	articleUC := usecase.NewArticleUseCase(b.articles, b.suppliers)
	customerUC := usecase.NewCustomerUseCase(b.customers)
	projectUC := usecase.NewProjectUseCase(b.projects, b.customers)
	ledger := inventory.NewLedgerUseCase(b.txRunner, b.articles, b.projects, b.lots, m, log.Component("ledger"))

	// PDF: detalle de proyecto para el cliente
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	reportUC := report.NewUseCase(b.reports, b.projects, b.customers, pdfGenerator)

	authUC := auth.NewAuthUseCase(b.users, b.blacklist, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		AccessTTL:  time.Duration(cfg.JWT.AccessTokenHours) * time.Hour,
		RefreshTTL: time.Duration(cfg.JWT.RefreshTokenDays) * 24 * time.Hour,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(httpRouter.RequestLogger(log.Component("http"), m))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Lagerverwaltung API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := b.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		SupplierUC: supplierUC,
		ArticleUC:  articleUC,
		CustomerUC: customerUC,
		ProjectUC:  projectUC,
		Ledger:     ledger,
		Reports:    reportUC,
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
