package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/emisero8/backend-reserva-alojamiento-openlodge/config"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/constants"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/dto"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/middleware"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/models"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/response"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/services"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/services/logger"
)

type PropertyController struct {
	Properties *services.PropertyService
	Redis      *redis.Client
}

func NewPropertyController(db *gorm.DB, redisCli *redis.Client) PropertyController {
	return PropertyController{
		Properties: services.NewPropertyService(services.PropertyServiceOptions{
			DB:     db,
			Logger: logger.NewDefaultLogger(logger.InfoLevel),
		}),
		Redis: redisCli,
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(raw), true
}

func (p PropertyController) invalidateListCache() {
	if p.Redis == nil {
		return
	}
	_ = services.DeleteFromRedis(config.Ctx, p.Redis, constants.PropertyListCacheKey)
}

func propertyResponses(properties []models.Property) []dto.PropertyResponse {
	out := make([]dto.PropertyResponse, 0, len(properties))
	for _, property := range properties {
		out = append(out, dto.NewPropertyResponse(property))
	}
	return out
}

// GetAllProperties returns the public catalog. The list is served from
// redis when a cached copy exists and refilled from the database otherwise.
// Passing ?page paginates the cached list in memory.
func (p PropertyController) GetAllProperties(c *gin.Context) {
	var properties []models.Property

	cached := false
	if p.Redis != nil {
		if err := services.GetFromRedis(config.Ctx, p.Redis, constants.PropertyListCacheKey, &properties); err == nil && len(properties) > 0 {
			cached = true
		}
	}

	if !cached {
		var err error
		properties, err = p.Properties.List()
		if err != nil {
			response.FromError(c, err)
			return
		}
		if p.Redis != nil {
			_ = services.SetToRedis(config.Ctx, p.Redis, constants.PropertyListCacheKey, properties, constants.PropertyListCacheTTL)
		}
	}

	if c.Query("page") == "" {
		response.Success(c, propertyResponses(properties))
		return
	}

	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	total := len(properties)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	response.SuccessWithPagination(c, propertyResponses(properties[start:end]), page, limit, total)
}

// GetPropertyDetail returns one property with its host and amenities.
func (p PropertyController) GetPropertyDetail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	property, err := p.Properties.GetByID(id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, dto.NewPropertyResponse(property))
}

// GetMyProperties lists the authenticated host's own properties.
func (p PropertyController) GetMyProperties(c *gin.Context) {
	email, ok := middleware.ActingEmail(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	properties, err := p.Properties.ListByHostEmail(email)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, propertyResponses(properties))
}

// GetPropertiesByHost lists the catalog entries of one host by id.
func (p PropertyController) GetPropertiesByHost(c *gin.Context) {
	hostID, ok := parseIDParam(c, "hostId")
	if !ok {
		return
	}

	properties, err := p.Properties.ListByHostID(hostID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, propertyResponses(properties))
}

// CreateProperty registers a new listing owned by the authenticated host.
func (p PropertyController) CreateProperty(c *gin.Context) {
	email, ok := middleware.ActingEmail(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req dto.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	property, err := p.Properties.Create(models.Property{
		Title:         req.Title,
		Description:   req.Description,
		Address:       req.Address,
		PricePerNight: req.PricePerNight,
		MaxGuests:     req.MaxGuests,
		CoverImageURL: req.CoverImageURL,
	}, req.AmenityIDs, email)
	if err != nil {
		response.FromError(c, err)
		return
	}

	p.invalidateListCache()
	response.Created(c, dto.NewPropertyResponse(property))
}

// UpdateProperty replaces the mutable fields of a listing. Only the owner
// may update; ownership itself never changes.
func (p PropertyController) UpdateProperty(c *gin.Context) {
	email, ok := middleware.ActingEmail(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	property, err := p.Properties.Update(id, models.Property{
		Title:         req.Title,
		Description:   req.Description,
		Address:       req.Address,
		PricePerNight: req.PricePerNight,
		MaxGuests:     req.MaxGuests,
		CoverImageURL: req.CoverImageURL,
	}, req.AmenityIDs, email)
	if err != nil {
		response.FromError(c, err)
		return
	}

	p.invalidateListCache()
	response.Success(c, dto.NewPropertyResponse(property))
}

// AddAmenityToProperty attaches one amenity to an owned listing.
func (p PropertyController) AddAmenityToProperty(c *gin.Context) {
	email, ok := middleware.ActingEmail(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	propertyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	amenityID, ok := parseIDParam(c, "amenityId")
	if !ok {
		return
	}

	property, err := p.Properties.AddAmenity(propertyID, amenityID, email)
	if err != nil {
		response.FromError(c, err)
		return
	}

	p.invalidateListCache()
	response.Success(c, dto.NewPropertyResponse(property))
}

// DeleteProperty removes an owned listing. Listings with reservations on
// record cannot be removed.
func (p PropertyController) DeleteProperty(c *gin.Context) {
	email, ok := middleware.ActingEmail(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := p.Properties.Delete(id, email); err != nil {
		response.FromError(c, err)
		return
	}

	p.invalidateListCache()
	response.Success(c, nil)
}
