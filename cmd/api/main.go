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

	_ "github.com/dhavocats/cabinet-api/docs"
	"github.com/dhavocats/cabinet-api/internal/application/billing"
	"github.com/dhavocats/cabinet-api/internal/application/matter"
	"github.com/dhavocats/cabinet-api/internal/application/usecase"
	infrapdf "github.com/dhavocats/cabinet-api/internal/infrastructure/pdf"
	"github.com/dhavocats/cabinet-api/internal/infrastructure/postgres"
	httpRouter "github.com/dhavocats/cabinet-api/internal/interfaces/http"
	"github.com/dhavocats/cabinet-api/pkg/config"
	"github.com/dhavocats/cabinet-api/pkg/logger"
)

// @title                       Cabinet API
// @version                     1.0
// @description                 Dossiers, temps passé et facturation du cabinet.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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
		Msg("iniciando aplicación")

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("esquema al día")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	listRepo := postgres.NewListRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	entryRepo := postgres.NewTimeEntryRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	settings, err := billing.SettingsFromConfig(cfg.Billing)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración de facturación")
	}
	invoiceUC := billing.NewInvoiceUseCase(
		txRunner, invoiceRepo, entryRepo, documentRepo, clientRepo, userRepo, auditRepo, settings,
	)

	// PDF: factura del despacho (A4, Maroto)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(infrapdf.FirmFromConfig(cfg.Firm), settings.Currency)
	invoicePDFUC := billing.NewPDFUseCase(invoiceRepo, documentRepo, clientRepo, entryRepo, pdfGenerator)

	matterUC := matter.NewUseCase(documentRepo, listRepo, taskRepo, entryRepo, invoiceRepo, userRepo, clientRepo, auditRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	clientUC := usecase.NewClientUseCase(clientRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.HTTP.RequestTimeout + 5*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(log.RequestLogger(httpRouter.LocalUserID))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Cabinet API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Invoices:       invoiceUC,
		InvoicePDF:     invoicePDFUC,
		Matter:         matterUC,
		Clients:        clientUC,
		Users:          userUC,
		DB:             pool,
		ServiceName:    cfg.App.Name,
		JWTSecret:      cfg.JWT.Secret,
		RequestTimeout: cfg.HTTP.RequestTimeout,
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
