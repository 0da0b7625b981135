package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// IdentityClaims represents the typed JWT issued by the external identity
// provider. The subject carries the stable user id; profile fields are
// optional and mirrored into the users table on first contact.
type IdentityClaims struct {
	Email           *string `json:"email,omitempty"`
	FirstName       *string `json:"first_name,omitempty"`
	LastName        *string `json:"last_name,omitempty"`
	ProfileImageURL *string `json:"profile_image_url,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the provider-issued subject.
func (c *IdentityClaims) UserID() string {
	if c == nil {
		return ""
	}
	return c.Subject
}
