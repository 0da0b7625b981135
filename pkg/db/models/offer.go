package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/marketloop-backend/pkg/enums"
)

// Offer is a buyer-proposed price on a listing, pending until the seller
// accepts or rejects it.
type Offer struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ListingID uuid.UUID         `gorm:"column:listing_id;type:uuid;not null;index"`
	BuyerID   string            `gorm:"column:buyer_id;type:text;not null"`
	Amount    decimal.Decimal   `gorm:"column:amount;type:numeric(10,2);not null"`
	Message   *string           `gorm:"column:message"`
	Status    enums.OfferStatus `gorm:"column:status;not null;default:pending"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
}
