package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `gorm:"unique;not null" json:"email"` // stored normalized: trimmed, lower-cased
	Password  string    `json:"-"`
	Role      Role      `gorm:"type:varchar(16);not null" json:"role"`
}
