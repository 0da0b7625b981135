package conversations

import (
	"time"

	"github.com/angelmondragon/marketloop-backend/pkg/db/models"
)

// ParticipantSummary is the public projection of a conversation participant.
type ParticipantSummary struct {
	ID              string  `json:"id"`
	FirstName       *string `json:"first_name,omitempty"`
	LastName        *string `json:"last_name,omitempty"`
	ProfileImageURL *string `json:"profile_image_url,omitempty"`
}

// ListingGlance is the minimal listing context shown in the inbox.
type ListingGlance struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Images []string `json:"images"`
}

// ConversationDTO is the transport shape for a conversation row.
type ConversationDTO struct {
	ID            string    `json:"id"`
	ListingID     string    `json:"listing_id"`
	BuyerID       string    `json:"buyer_id"`
	SellerID      string    `json:"seller_id"`
	LastMessageAt time.Time `json:"last_message_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// ConversationListItemDTO is an inbox row: the conversation, its listing
// glance, and the participant that is not the caller.
type ConversationListItemDTO struct {
	ConversationDTO
	Listing          ListingGlance      `json:"listing"`
	OtherParticipant ParticipantSummary `json:"other_participant"`
}

// MessageDTO is the transport shape for a message with its sender projection.
type MessageDTO struct {
	ID             string             `json:"id"`
	ConversationID string             `json:"conversation_id"`
	SenderID       string             `json:"sender_id"`
	Content        string             `json:"content"`
	Sender         ParticipantSummary `json:"sender"`
	CreatedAt      time.Time          `json:"created_at"`
}

func NewConversationDTO(m *models.Conversation) *ConversationDTO {
	if m == nil {
		return nil
	}
	return &ConversationDTO{
		ID:            m.ID.String(),
		ListingID:     m.ListingID.String(),
		BuyerID:       m.BuyerID,
		SellerID:      m.SellerID,
		LastMessageAt: m.LastMessageAt,
		CreatedAt:     m.CreatedAt,
	}
}

func participantFromUser(u *models.User) ParticipantSummary {
	if u == nil {
		return ParticipantSummary{}
	}
	return ParticipantSummary{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
	}
}
