package services

import (
	stderrors "errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/emisero8/backend-reserva-alojamiento-openlodge/errors"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/models"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/services/logger"
)

type PropertyService struct {
	db     *gorm.DB
	logger logger.Logger
}

type PropertyServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
}

func NewPropertyService(opts PropertyServiceOptions) *PropertyService {
	return &PropertyService{
		db:     opts.DB,
		logger: opts.Logger,
	}
}

// List returns all properties with host and amenities loaded.
func (s *PropertyService) List() ([]models.Property, error) {
	var properties []models.Property
	if err := s.db.Preload("Host").Preload("Amenities").Find(&properties).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "failed to load properties", err)
	}
	return properties, nil
}

// GetByID loads one property with host and amenities.
func (s *PropertyService) GetByID(id uint) (models.Property, error) {
	var property models.Property
	err := s.db.Preload("Host").Preload("Amenities").First(&property, id).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return property, errors.NewAppError(errors.ErrCodeNotFound, "property not found", err)
	}
	if err != nil {
		return property, errors.NewAppError(errors.ErrCodeDBError, "failed to load property", err)
	}
	return property, nil
}

// ListByHostEmail returns the properties owned by the host.
func (s *PropertyService) ListByHostEmail(hostEmail string) ([]models.Property, error) {
	var properties []models.Property
	err := s.db.Preload("Amenities").
		Joins("JOIN users ON users.id = properties.host_id").
		Where("users.email = ?", NormalizeEmail(hostEmail)).
		Find(&properties).Error
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "failed to load properties", err)
	}
	return properties, nil
}

// ListByHostID returns the properties owned by the given host id.
func (s *PropertyService) ListByHostID(hostID uint) ([]models.Property, error) {
	var properties []models.Property
	if err := s.db.Preload("Amenities").Where("host_id = ?", hostID).Find(&properties).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "failed to load properties", err)
	}
	return properties, nil
}

func (s *PropertyService) resolveAmenities(ids []int64) ([]models.Amenity, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var amenities []models.Amenity
	if err := s.db.Where("id IN ?", ids).Find(&amenities).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "failed to load amenities", err)
	}
	if len(amenities) != len(ids) {
		return nil, errors.NewAppError(errors.ErrCodeNotFound, "one or more amenities not found", nil)
	}
	return amenities, nil
}

func amenityIDList(amenities []models.Amenity) pq.Int64Array {
	ids := make(pq.Int64Array, 0, len(amenities))
	for _, amenity := range amenities {
		ids = append(ids, int64(amenity.ID))
	}
	return ids
}

// Create stores a new property owned by the acting host. The owner relation
// is set here once and never touched by Update.
func (s *PropertyService) Create(property models.Property, amenityIDs []int64, hostEmail string) (models.Property, error) {
	if err := property.ValidateFields(); err != nil {
		return models.Property{}, errors.NewAppError(errors.ErrCodeValidation, err.Error(), nil)
	}

	var host models.User
	if err := s.db.Where("email = ?", NormalizeEmail(hostEmail)).First(&host).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return models.Property{}, errors.NewAppError(errors.ErrCodeNotFound, "host not found", err)
		}
		return models.Property{}, errors.NewAppError(errors.ErrCodeDBError, "failed to load host", err)
	}

	amenities, err := s.resolveAmenities(amenityIDs)
	if err != nil {
		return models.Property{}, err
	}

	property.HostID = host.ID
	property.Host = host
	property.Amenities = amenities
	property.AmenityIDs = amenityIDList(amenities)

	if err := s.db.Create(&property).Error; err != nil {
		return models.Property{}, errors.NewAppError(errors.ErrCodeDBError, "failed to create property", err)
	}

	s.logger.Info("created property %d for host %d", property.ID, host.ID)
	return property, nil
}

// Update replaces the scalar fields of a property and, when amenity ids are
// given, re-resolves the amenity set. Only the owner may update; the owner
// itself is immutable.
func (s *PropertyService) Update(propertyID uint, updated models.Property, amenityIDs []int64, actingEmail string) (models.Property, error) {
	property, err := s.GetByID(propertyID)
	if err != nil {
		return models.Property{}, err
	}

	if err := Authorize(property.Host.Email, actingEmail); err != nil {
		return models.Property{}, err
	}

	if err := updated.ValidateFields(); err != nil {
		return models.Property{}, errors.NewAppError(errors.ErrCodeValidation, err.Error(), nil)
	}

	property.Title = updated.Title
	property.Description = updated.Description
	property.Address = updated.Address
	property.PricePerNight = updated.PricePerNight
	property.MaxGuests = updated.MaxGuests
	property.CoverImageURL = updated.CoverImageURL

	var amenities []models.Amenity
	if amenityIDs != nil {
		var err error
		amenities, err = s.resolveAmenities(amenityIDs)
		if err != nil {
			return models.Property{}, err
		}
		property.AmenityIDs = amenityIDList(amenities)
	}

	if err := s.db.Save(&property).Error; err != nil {
		return models.Property{}, errors.NewAppError(errors.ErrCodeDBError, "failed to update property", err)
	}

	if amenityIDs != nil {
		if err := s.db.Model(&property).Association("Amenities").Replace(amenities); err != nil {
			return models.Property{}, errors.NewAppError(errors.ErrCodeDBError, "failed to update amenities", err)
		}
		property.Amenities = amenities
	}

	return property, nil
}

// AddAmenity attaches a catalog amenity to an owned property.
func (s *PropertyService) AddAmenity(propertyID, amenityID uint, actingEmail string) (models.Property, error) {
	property, err := s.GetByID(propertyID)
	if err != nil {
		return models.Property{}, err
	}

	if err := Authorize(property.Host.Email, actingEmail); err != nil {
		return models.Property{}, err
	}

	var amenity models.Amenity
	if err := s.db.First(&amenity, amenityID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return models.Property{}, errors.NewAppError(errors.ErrCodeNotFound, "amenity not found", err)
		}
		return models.Property{}, errors.NewAppError(errors.ErrCodeDBError, "failed to load amenity", err)
	}

	if err := s.db.Model(&property).Association("Amenities").Append(&amenity); err != nil {
		return models.Property{}, errors.NewAppError(errors.ErrCodeDBError, "failed to attach amenity", err)
	}

	// rebuild the array column from the join table so a re-attach of the
	// same amenity cannot introduce a duplicate id
	property, err = s.GetByID(propertyID)
	if err != nil {
		return models.Property{}, err
	}
	property.AmenityIDs = amenityIDList(property.Amenities)
	if err := s.db.Model(&property).Update("amenity_ids", property.AmenityIDs).Error; err != nil {
		return models.Property{}, errors.NewAppError(errors.ErrCodeDBError, "failed to update amenity ids", err)
	}

	return property, nil
}

// Delete removes an owned property. A property that still has reservations
// referencing it cannot be deleted; the check runs at the application layer
// so the failure is categorical, not a bare FK error.
func (s *PropertyService) Delete(propertyID uint, actingEmail string) error {
	property, err := s.GetByID(propertyID)
	if err != nil {
		return err
	}

	if err := Authorize(property.Host.Email, actingEmail); err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&models.Reservation{}).Where("property_id = ?", propertyID).Count(&count).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "failed to count reservations", err)
	}
	if count > 0 {
		return errors.NewAppError(errors.ErrCodeReferentialConflict, "property has active reservations and cannot be deleted", nil)
	}

	if err := s.db.Select("Amenities").Delete(&property).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "failed to delete property", err)
	}

	s.logger.Info("deleted property %d", propertyID)
	return nil
}
