package listings

import (
	"time"

	"github.com/angelmondragon/marketloop-backend/pkg/db/models"
	"github.com/angelmondragon/marketloop-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// SellerSummary is the public projection of a seller attached to listing
// reads. It never carries the email address.
type SellerSummary struct {
	ID              string  `json:"id"`
	FirstName       *string `json:"first_name,omitempty"`
	LastName        *string `json:"last_name,omitempty"`
	ProfileImageURL *string `json:"profile_image_url,omitempty"`
}

// SellerDetail extends the summary with the contact email. Only the single
// listing detail read exposes it.
type SellerDetail struct {
	SellerSummary
	Email *string `json:"email,omitempty"`
}

// ListingDTO is the transport shape for a listing row.
type ListingDTO struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Price       decimal.Decimal        `json:"price"`
	Category    enums.ListingCategory  `json:"category"`
	Condition   enums.ListingCondition `json:"condition"`
	Tags        []string               `json:"tags"`
	Images      []string               `json:"images"`
	SellerID    string                 `json:"seller_id"`
	IsFeatured  bool                   `json:"is_featured"`
	IsActive    bool                   `json:"is_active"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// ListingSummaryDTO is a listing plus its seller's public projection.
type ListingSummaryDTO struct {
	ListingDTO
	Seller SellerSummary `json:"seller"`
}

// ListingDetailDTO is the single-listing read with the seller contact email.
type ListingDetailDTO struct {
	ListingDTO
	Seller SellerDetail `json:"seller"`
}

// ListingFilters is the closed set of search filters. All fields are
// optional and combine conjunctively over active listings.
type ListingFilters struct {
	Category  *enums.ListingCategory
	Condition *enums.ListingCondition
	PriceMin  *decimal.Decimal
	PriceMax  *decimal.Decimal
	Search    string
	SellerID  *string
}

func NewListingDTO(m *models.Listing) *ListingDTO {
	if m == nil {
		return nil
	}
	return &ListingDTO{
		ID:          m.ID.String(),
		Title:       m.Title,
		Description: m.Description,
		Price:       m.Price,
		Category:    m.Category,
		Condition:   m.Condition,
		Tags:        append([]string(nil), m.Tags...),
		Images:      append([]string(nil), m.Images...),
		SellerID:    m.SellerID,
		IsFeatured:  m.IsFeatured,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func sellerSummaryFromUser(u *models.User) SellerSummary {
	if u == nil {
		return SellerSummary{}
	}
	return SellerSummary{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
	}
}

func sellerDetailFromUser(u *models.User) SellerDetail {
	detail := SellerDetail{SellerSummary: sellerSummaryFromUser(u)}
	if u != nil {
		detail.Email = u.Email
	}
	return detail
}
