package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is a per-listing thread between exactly one buyer and one
// seller. The (listing_id, buyer_id, seller_id) triple is unique so that
// concurrent find-or-create requests converge on a single row.
type Conversation struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ListingID     uuid.UUID `gorm:"column:listing_id;type:uuid;not null;uniqueIndex:conversations_listing_buyer_seller_key"`
	BuyerID       string    `gorm:"column:buyer_id;type:text;not null;uniqueIndex:conversations_listing_buyer_seller_key"`
	SellerID      string    `gorm:"column:seller_id;type:text;not null;uniqueIndex:conversations_listing_buyer_seller_key"`
	LastMessageAt time.Time `gorm:"column:last_message_at;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

// HasParticipant reports whether the given user is the buyer or the seller.
func (c Conversation) HasParticipant(userID string) bool {
	return c.BuyerID == userID || c.SellerID == userID
}

// OtherParticipant returns the participant that is not the given user.
func (c Conversation) OtherParticipant(userID string) string {
	if c.BuyerID == userID {
		return c.SellerID
	}
	return c.BuyerID
}
