package routes

import (
	"fiber-inventory/config"
	"fiber-inventory/controllers"
	"fiber-inventory/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupAvailabilityRoutes(app *fiber.App, availabilityController *controllers.AvailabilityController) {
	api := app.Group(config.MAIN_ROUTES+"/availability", middleware.AuthMiddleware)

	api.Get("/check", availabilityController.CheckAvailability)

	demand := app.Group(config.MAIN_ROUTES+"/demand", middleware.AuthMiddleware)
	demand.Post("/validate", availabilityController.ValidateDemand)
}
