package models

import (
	"time"
)

// User mirrors the profile supplied by the external identity provider.
// The primary key is the provider-issued subject, never generated locally.
type User struct {
	ID              string    `gorm:"column:id;type:text;primaryKey"`
	Email           *string   `gorm:"column:email;type:text;uniqueIndex"`
	FirstName       *string   `gorm:"column:first_name"`
	LastName        *string   `gorm:"column:last_name"`
	ProfileImageURL *string   `gorm:"column:profile_image_url"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
