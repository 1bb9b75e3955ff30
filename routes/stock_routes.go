package routes

import (
	"fiber-inventory/config"
	"fiber-inventory/controllers"
	"fiber-inventory/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupStockRoutes(app *fiber.App, stockController *controllers.StockController) {
	api := app.Group(config.MAIN_ROUTES+"/stock", middleware.AuthMiddleware)

	api.Get("/", stockController.GetStockSummary)
	api.Get("/records", stockController.GetStockRecords)
	api.Get("/excel", stockController.ExportExcel)
	api.Post("/receive", stockController.ReceiveStock)
	api.Post("/transfer", stockController.TransferToCustody)
	api.Post("/return", stockController.ReturnToStorage)
	api.Post("/status", stockController.UpdateStatusBatch)
}
