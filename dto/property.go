package dto

import (
	"github.com/lib/pq"

	"github.com/emisero8/backend-reserva-alojamiento-openlodge/models"
)

type CreatePropertyRequest struct {
	Title         string        `json:"title" binding:"required"`
	Description   string        `json:"description"`
	Address       string        `json:"address" binding:"required"`
	PricePerNight float64       `json:"pricePerNight" binding:"required,gt=0"`
	MaxGuests     int           `json:"maxGuests" binding:"required,gt=0"`
	CoverImageURL string        `json:"coverImageUrl"`
	AmenityIDs    pq.Int64Array `json:"amenityIds"`
}

type UpdatePropertyRequest struct {
	Title         string        `json:"title" binding:"required"`
	Description   string        `json:"description"`
	Address       string        `json:"address" binding:"required"`
	PricePerNight float64       `json:"pricePerNight" binding:"required,gt=0"`
	MaxGuests     int           `json:"maxGuests" binding:"required,gt=0"`
	CoverImageURL string        `json:"coverImageUrl"`
	AmenityIDs    pq.Int64Array `json:"amenityIds"`
}

type AmenityResponse struct {
	ID   uint    `json:"id"`
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

type HostResponse struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type PropertyResponse struct {
	ID            uint              `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Address       string            `json:"address"`
	PricePerNight float64           `json:"pricePerNight"`
	MaxGuests     int               `json:"maxGuests"`
	CoverImageURL string            `json:"coverImageUrl"`
	Host          HostResponse      `json:"host"`
	Amenities     []AmenityResponse `json:"amenities"`
}

func NewAmenityResponse(amenity models.Amenity) AmenityResponse {
	return AmenityResponse{
		ID:   amenity.ID,
		Name: amenity.Name,
		Cost: amenity.Cost,
	}
}

func NewPropertyResponse(property models.Property) PropertyResponse {
	amenities := make([]AmenityResponse, 0, len(property.Amenities))
	for _, amenity := range property.Amenities {
		amenities = append(amenities, NewAmenityResponse(amenity))
	}

	return PropertyResponse{
		ID:            property.ID,
		Title:         property.Title,
		Description:   property.Description,
		Address:       property.Address,
		PricePerNight: property.PricePerNight,
		MaxGuests:     property.MaxGuests,
		CoverImageURL: property.CoverImageURL,
		Host: HostResponse{
			ID:        property.Host.ID,
			FirstName: property.Host.FirstName,
			LastName:  property.Host.LastName,
			Email:     property.Host.Email,
		},
		Amenities: amenities,
	}
}
