package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/emisero8/backend-reserva-alojamiento-openlodge/controllers"
	middlewares "github.com/emisero8/backend-reserva-alojamiento-openlodge/middleware"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/models"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client) {

	authController := controllers.NewAuthController(db)
	propertyController := controllers.NewPropertyController(db, redisCli)
	reservationController := controllers.NewReservationController(db)
	amenityController := controllers.NewAmenityController(db)

	v1 := router.Group("/api/v1")
	v1.Use(middlewares.SessionMiddleware())
	v1.Use(middlewares.ErrorHandler())

	v1.POST("/auth/register", authController.Register)
	v1.POST("/auth/login", authController.Login)
	v1.DELETE("/auth/logout", authController.Logout)
	v1.GET("/profile", middlewares.AuthMiddleware(models.RoleHost, models.RoleGuest), authController.Profile)

	v1.GET("/properties", propertyController.GetAllProperties)
	v1.GET("/properties/:id", propertyController.GetPropertyDetail)
	v1.GET("/properties/host/:hostId", propertyController.GetPropertiesByHost)
	v1.GET("/properties/:id/availability", reservationController.CheckAvailability)
	v1.GET("/amenities", amenityController.GetAllAmenities)

	v1.POST("/properties", middlewares.AuthMiddleware(models.RoleHost), propertyController.CreateProperty)
	v1.PUT("/properties/:id", middlewares.AuthMiddleware(models.RoleHost), propertyController.UpdateProperty)
	v1.DELETE("/properties/:id", middlewares.AuthMiddleware(models.RoleHost), propertyController.DeleteProperty)
	v1.POST("/properties/:id/amenities/:amenityId", middlewares.AuthMiddleware(models.RoleHost), propertyController.AddAmenityToProperty)
	v1.GET("/properties/mine", middlewares.AuthMiddleware(models.RoleHost), propertyController.GetMyProperties)

	v1.POST("/reservations", middlewares.AuthMiddleware(models.RoleGuest), reservationController.CreateReservation)
	v1.GET("/reservations/mine", middlewares.AuthMiddleware(models.RoleGuest), reservationController.GetMyReservations)
	v1.DELETE("/reservations/:id/mine", middlewares.AuthMiddleware(models.RoleGuest), reservationController.CancelMyReservation)
	v1.GET("/reservations/on-my-properties", middlewares.AuthMiddleware(models.RoleHost), reservationController.GetReservationsOnMyProperties)
	v1.DELETE("/reservations/:id", middlewares.AuthMiddleware(models.RoleHost), reservationController.CancelReservation)
}
