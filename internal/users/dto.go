package users

import (
	"time"

	"github.com/angelmondragon/marketloop-backend/pkg/db/models"
)

// UserDTO is the transport shape for the authenticated user's own profile.
type UserDTO struct {
	ID              string    `json:"id"`
	Email           *string   `json:"email,omitempty"`
	FirstName       *string   `json:"first_name,omitempty"`
	LastName        *string   `json:"last_name,omitempty"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UpsertUserDTO carries the identity-provider profile to persist on login.
type UpsertUserDTO struct {
	ID              string
	Email           *string
	FirstName       *string
	LastName        *string
	ProfileImageURL *string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func (d UpsertUserDTO) ToModel() *models.User {
	return &models.User{
		ID:              d.ID,
		Email:           d.Email,
		FirstName:       d.FirstName,
		LastName:        d.LastName,
		ProfileImageURL: d.ProfileImageURL,
	}
}
