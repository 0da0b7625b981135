package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is immutable once created. Creating one also advances the parent
// conversation's last_message_at to the message timestamp.
type Message struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ConversationID uuid.UUID `gorm:"column:conversation_id;type:uuid;not null;index"`
	SenderID       string    `gorm:"column:sender_id;type:text;not null"`
	Content        string    `gorm:"column:content;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
