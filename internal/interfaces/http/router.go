package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/andgatetech/pos-inventory-api/internal/application/analytics"
	"github.com/andgatetech/pos-inventory-api/internal/application/inventory"
	"github.com/andgatetech/pos-inventory-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StoreUC    *usecase.StoreUseCase
	ProductUC  *usecase.ProductUseCase
	StockUC    *usecase.StockUseCase
	ApplyBatch *inventory.ApplyBatchUseCase
	Voucher    *inventory.VoucherUseCase
	Summary    *analytics.SummaryUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Stores
	stores := api.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoreUC)
	stores.Post("/", storeHandler.Create)
	stores.Get("/", storeHandler.List)
	stores.Get("/:id", storeHandler.GetByID)
	stores.Put("/:id", storeHandler.Update)
	stores.Delete("/:id", storeHandler.Delete)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Get("/:id/variants", productHandler.ListVariants)

	// Submission Gateway + lotes aplicados
	adjustmentHandler := NewAdjustmentHandler(deps.ApplyBatch, deps.Voucher, deps.StockUC)
	stores.Post("/:id/adjustments", adjustmentHandler.Submit)
	stores.Get("/:id/batches", adjustmentHandler.ListBatches)

	batches := api.Group("/batches")
	batches.Get("/:id", adjustmentHandler.GetBatch)
	batches.Get("/:id/movements", adjustmentHandler.BatchMovements)
	batches.Get("/:id/voucher", adjustmentHandler.Voucher)

	// Existencias e historial por tienda
	stockHandler := NewStockHandler(deps.StockUC)
	stores.Get("/:id/stock", stockHandler.ListLevels)
	stores.Get("/:id/movements", stockHandler.ListMovements)

	// Reportería
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.Summary)
	reports.Get("/adjustments", reportHandler.AdjustmentSummary)
}
