package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sandeep7070/mai-santani-backend/internal/application/stock"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	UpdateStock  *stock.UpdateStockUseCase
	StockHistory *stock.StockHistoryUseCase
	StockSummary *stock.StockSummaryUseCase
	JWTSecret    string
}

// Router registra las rutas de la API. Todas pasan por ActorMiddleware: el
// token es opcional y solo aporta la identidad del operador a los movimientos.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", ActorMiddleware(deps.JWTSecret))

	stockHandler := NewStockHandler(deps.UpdateStock, deps.StockHistory, deps.StockSummary)

	// Mutaciones y lecturas por producto
	products := api.Group("/products")
	products.Put("/sku/:sku/stock", stockHandler.UpdateStockBySKU)
	products.Put("/name/:name/stock", stockHandler.UpdateStockByName)
	products.Put("/:id/stock", stockHandler.UpdateStockByID)
	products.Get("/:id/history", stockHandler.ProductHistory)
	products.Get("/:id/summary", stockHandler.ProductSummary)

	// Lecturas globales del ledger
	stockGroup := api.Group("/stock")
	stockGroup.Get("/history", stockHandler.HistoryAll)
	stockGroup.Get("/summary", stockHandler.Summary)
}
