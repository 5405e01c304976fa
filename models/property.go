package models

import (
	"fmt"
	"time"

	"github.com/lib/pq"
)

type Property struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Title         string    `json:"title" gorm:"not null"`
	Description   string    `json:"description" gorm:"type:text"`
	Address       string    `json:"address" gorm:"not null"`
	PricePerNight float64   `json:"pricePerNight" gorm:"not null"`
	MaxGuests     int       `json:"maxGuests" gorm:"not null"`
	CoverImageURL string    `json:"coverImageUrl"`
	HostID        uint      `json:"hostId" gorm:"not null"` // immutable after creation
	Host          User      `json:"host" gorm:"foreignKey:HostID"`
	// AmenityIDs mirrors the join table so listings can filter on the
	// array column without joining; rewritten whenever the set changes.
	AmenityIDs pq.Int64Array `json:"amenityIds" gorm:"type:integer[]"`
	Amenities  []Amenity     `json:"amenities" gorm:"many2many:property_amenities;"`
}

func (p *Property) ValidateFields() error {
	if p.Title == "" {
		return fmt.Errorf("title must not be empty")
	}
	if p.Address == "" {
		return fmt.Errorf("address must not be empty")
	}
	if p.PricePerNight <= 0 {
		return fmt.Errorf("invalid pricePerNight: %v, must be positive", p.PricePerNight)
	}
	if p.MaxGuests <= 0 {
		return fmt.Errorf("invalid maxGuests: %d, must be positive", p.MaxGuests)
	}
	return nil
}
