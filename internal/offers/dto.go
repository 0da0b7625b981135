package offers

import (
	"time"

	"github.com/angelmondragon/marketloop-backend/pkg/db/models"
	"github.com/angelmondragon/marketloop-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// BuyerSummary is the public projection of the offering buyer.
type BuyerSummary struct {
	ID              string  `json:"id"`
	FirstName       *string `json:"first_name,omitempty"`
	LastName        *string `json:"last_name,omitempty"`
	ProfileImageURL *string `json:"profile_image_url,omitempty"`
}

// OfferDTO is the transport shape for an offer row.
type OfferDTO struct {
	ID        string            `json:"id"`
	ListingID string            `json:"listing_id"`
	BuyerID   string            `json:"buyer_id"`
	Amount    decimal.Decimal   `json:"amount"`
	Message   *string           `json:"message,omitempty"`
	Status    enums.OfferStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

// OfferWithBuyerDTO is an offer plus the buyer projection, for seller review.
type OfferWithBuyerDTO struct {
	OfferDTO
	Buyer BuyerSummary `json:"buyer"`
}

func NewOfferDTO(m *models.Offer) *OfferDTO {
	if m == nil {
		return nil
	}
	return &OfferDTO{
		ID:        m.ID.String(),
		ListingID: m.ListingID.String(),
		BuyerID:   m.BuyerID,
		Amount:    m.Amount,
		Message:   m.Message,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
	}
}
