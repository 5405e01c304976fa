package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emisero8/backend-reserva-alojamiento-openlodge/dto"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/response"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/services"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/services/logger"
)

type AmenityController struct {
	Amenities *services.AmenityService
}

func NewAmenityController(db *gorm.DB) AmenityController {
	return AmenityController{
		Amenities: services.NewAmenityService(services.AmenityServiceOptions{
			DB:     db,
			Logger: logger.NewDefaultLogger(logger.InfoLevel),
		}),
	}
}

// GetAllAmenities returns the amenity catalog.
func (a AmenityController) GetAllAmenities(c *gin.Context) {
	amenities, err := a.Amenities.List()
	if err != nil {
		response.FromError(c, err)
		return
	}

	out := make([]dto.AmenityResponse, 0, len(amenities))
	for _, amenity := range amenities {
		out = append(out, dto.NewAmenityResponse(amenity))
	}

	response.Success(c, out)
}
