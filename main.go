package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/emisero8/backend-reserva-alojamiento-openlodge/config"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/routes"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/services"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/services/logger"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/validator"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: no .env file found, using existing environment: %v", err)
	}

	router, err := config.InitApp()
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	validator.Init()

	amenityService := services.NewAmenityService(services.AmenityServiceOptions{
		DB:     config.DB,
		Logger: logger.NewDefaultLogger(logger.InfoLevel),
	})
	if err := amenityService.SeedDefaults(); err != nil {
		log.Fatalf("Failed to seed amenities: %v", err)
	}

	routes.SetupRoutes(router, config.DB, config.RedisClient)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	port := config.GetEnvDefault("PORT", "8083")

	log.Println("Server starting on port " + port + "...")
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
