package routes

import (
	"fiber-inventory/config"
	"fiber-inventory/controllers"
	"fiber-inventory/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupMovementRoutes(app *fiber.App, movementController *controllers.MovementController) {
	api := app.Group(config.MAIN_ROUTES+"/movements", middleware.AuthMiddleware)

	api.Get("/history", movementController.GetStockHistory)
	api.Get("/excel", movementController.ExportExcel)
	api.Post("/", movementController.RecordMovement)
}
