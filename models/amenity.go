package models

import (
	"time"
)

// Amenity is a catalog entry (WIFI, Pool, ...). Cost is informational only,
// prices on reservations are set by the caller, not derived from amenities.
type Amenity struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"unique;not null"`
	Cost      float64   `json:"cost" gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
