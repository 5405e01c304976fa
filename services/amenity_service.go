package services

import (
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/emisero8/backend-reserva-alojamiento-openlodge/errors"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/models"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/services/logger"
)

type AmenityService struct {
	db     *gorm.DB
	logger logger.Logger
}

type AmenityServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
}

func NewAmenityService(opts AmenityServiceOptions) *AmenityService {
	return &AmenityService{
		db:     opts.DB,
		logger: opts.Logger,
	}
}

// List returns the full amenity catalog.
func (s *AmenityService) List() ([]models.Amenity, error) {
	var amenities []models.Amenity
	if err := s.db.Find(&amenities).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "failed to load amenities", err)
	}
	return amenities, nil
}

// GetByID loads one catalog entry.
func (s *AmenityService) GetByID(id uint) (models.Amenity, error) {
	var amenity models.Amenity
	err := s.db.First(&amenity, id).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return amenity, errors.NewAppError(errors.ErrCodeNotFound, "amenity not found", err)
	}
	if err != nil {
		return amenity, errors.NewAppError(errors.ErrCodeDBError, "failed to load amenity", err)
	}
	return amenity, nil
}

// SeedDefaults loads the initial catalog once, on an empty table.
func (s *AmenityService) SeedDefaults() error {
	var count int64
	if err := s.db.Model(&models.Amenity{}).Count(&count).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "failed to count amenities", err)
	}
	if count > 0 {
		return nil
	}

	defaults := []models.Amenity{
		{Name: "WIFI", Cost: 1000},
		{Name: "Pool", Cost: 10000},
		{Name: "Grill", Cost: 5000},
		{Name: "Parking", Cost: 3000},
		{Name: "Air Conditioning", Cost: 7000},
	}
	if err := s.db.Create(&defaults).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "failed to seed amenities", err)
	}

	s.logger.Info("seeded %d default amenities", len(defaults))
	return nil
}
