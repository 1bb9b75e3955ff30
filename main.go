package main

import (
	"fmt"
	"log"

	"fiber-inventory/config"
	"fiber-inventory/controllers"
	"fiber-inventory/controllers/idgen"
	"fiber-inventory/database"
	"fiber-inventory/pkg/logger"
	"fiber-inventory/repositories"
	"fiber-inventory/routes"
	"fiber-inventory/scheduler"
	"fiber-inventory/services"

	"github.com/gofiber/fiber/v2"
)

func main() {

	config.LoadConfig()

	app := fiber.New()

	// Connect to database
	db, err := database.OpenDatabaseConnection(config.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate models
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	idgen.Init()
	database.RunSeeders(db)

	zlog := logger.Must(logger.New())
	defer zlog.Sync()

	// Repositories (kolaborator persistence)
	stockRepo := repositories.NewStockRepository(db)
	movementRepo := repositories.NewMovementRepository(db)
	demandRepo := repositories.NewDemandRepository(db)
	catalogRepo := repositories.NewCatalogRepository(db)

	if err := catalogRepo.Reload(); err != nil {
		log.Fatalf("Failed to load catalog lookup: %v", err)
	}

	// Engine services: satu write gate untuk semua operasi yang memutasi stok
	gate := services.NewWriteGate()
	scanner := services.NewReservationScanner(demandRepo, logger.Named(zlog, "reservation"))
	availabilityService := services.NewAvailabilityService(stockRepo, scanner, catalogRepo, logger.Named(zlog, "availability"))
	consumptionService := services.NewConsumptionService(stockRepo, catalogRepo, gate, logger.Named(zlog, "consumption"))
	movementService := services.NewMovementService(movementRepo, logger.Named(zlog, "movement"))
	stockService := services.NewStockService(stockRepo, catalogRepo, gate, logger.Named(zlog, "stock"))

	// Setup CORS middleware
	config.SetupCORS(app)

	// Setup routes
	routes.SetupAuthRoutes(app, controllers.NewAuthController(db))
	routes.SetupAvailabilityRoutes(app, controllers.NewAvailabilityController(availabilityService))
	routes.SetupConsumptionRoutes(app, controllers.NewConsumptionController(consumptionService))
	routes.SetupStockRoutes(app, controllers.NewStockController(db, stockService))
	routes.SetupMovementRoutes(app, controllers.NewMovementController(movementService))

	// Sweep stok menipis terjadwal
	sweeper := scheduler.NewLowStockSweeper(db, availabilityService, logger.Named(zlog, "scheduler"))
	sweeper.Start()
	defer sweeper.Stop()

	port := config.APP_PORT
	fmt.Println("🚀 Server berjalan di port " + port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
