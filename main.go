package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/congress-app/congress-backend/controllers"
	"github.com/congress-app/congress-backend/database"
	"github.com/congress-app/congress-backend/routes"
	"github.com/congress-app/congress-backend/services"
	"github.com/congress-app/congress-backend/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Could not load .env file (this is normal in production)")
	}

	// Connect to database and migrate
	db := database.Connect()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}
	if err := database.SeedBadges(db); err != nil {
		log.Fatalf("Failed to seed badges: %v", err)
	}

	// Wire the attendance core against the Postgres-backed store
	docStore := store.NewGormStore(db)
	badgeService := services.NewBadgeService(docStore)
	attendanceService := services.NewAttendanceService(docStore, badgeService)
	qrService := services.NewQRService(docStore)

	authController := controllers.NewAuthController(db)
	eventController := controllers.NewEventController(db, qrService, docStore)
	attendanceController := controllers.NewAttendanceController(docStore, attendanceService)
	qrController := controllers.NewQRController(docStore, qrService)
	userController := controllers.NewUserController(db)

	// Initialize Gin
	router := gin.Default()

	// Register routes
	routes.SetupRoutes(router, authController, eventController, attendanceController, qrController, userController)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("Server running on :" + port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
