package models

import (
	"time"
)

// Reservation is the transactional entity. Date ranges are half-open
// [StartDate, EndDate): the checkout day is free for the next guest.
// Rows are only created through the availability check and only removed by
// authorized cancellation, never updated in place.
type Reservation struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	StartDate  time.Time `json:"startDate" gorm:"type:date;not null"`
	EndDate    time.Time `json:"endDate" gorm:"type:date;not null"`
	TotalPrice float64   `json:"totalPrice" gorm:"not null"`
	Notes      string    `json:"notes,omitempty" gorm:"type:text"`
	PropertyID uint      `json:"propertyId" gorm:"not null"`
	Property   Property  `json:"property" gorm:"foreignKey:PropertyID"`
	GuestID    uint      `json:"guestId" gorm:"not null"`
	Guest      User      `json:"guest" gorm:"foreignKey:GuestID"`
}
