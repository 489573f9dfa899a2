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

	"github.com/andgatetech/pos-inventory-api/internal/application/analytics"
	"github.com/andgatetech/pos-inventory-api/internal/application/inventory"
	"github.com/andgatetech/pos-inventory-api/internal/application/usecase"
	"github.com/andgatetech/pos-inventory-api/internal/domain/adjustment"
	infrapdf "github.com/andgatetech/pos-inventory-api/internal/infrastructure/pdf"
	"github.com/andgatetech/pos-inventory-api/internal/infrastructure/postgres"
	httpRouter "github.com/andgatetech/pos-inventory-api/internal/interfaces/http"
	"github.com/andgatetech/pos-inventory-api/pkg/config"
	"github.com/andgatetech/pos-inventory-api/pkg/logger"
)

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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	storeRepo := postgres.NewStoreRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)
	batchRepo := postgres.NewAdjustmentBatchRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	reasons := adjustment.NewVocabulary(cfg.Adjustment.Reasons)

	applyBatchUC := inventory.NewApplyBatchUseCase(txRunner, storeRepo, productRepo, reasons)
	voucherUC := inventory.NewVoucherUseCase(
		batchRepo, movRepo, storeRepo, productRepo,
		infrapdf.NewMarotoVoucherGenerator(),
	)
	storeUC := usecase.NewStoreUseCase(storeRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	stockUC := usecase.NewStockUseCase(stockRepo, movRepo, batchRepo)
	summaryUC := analytics.NewSummaryUseCase(reportRepo)

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
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StoreUC:    storeUC,
		ProductUC:  productUC,
		StockUC:    stockUC,
		ApplyBatch: applyBatchUC,
		Voucher:    voucherUC,
		Summary:    summaryUC,
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
