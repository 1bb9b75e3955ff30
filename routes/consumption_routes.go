package routes

import (
	"fiber-inventory/config"
	"fiber-inventory/controllers"
	"fiber-inventory/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupConsumptionRoutes(app *fiber.App, consumptionController *controllers.ConsumptionController) {
	api := app.Group(config.MAIN_ROUTES+"/consumption", middleware.AuthMiddleware)

	api.Post("/", consumptionController.ConsumeMaterials)
}
