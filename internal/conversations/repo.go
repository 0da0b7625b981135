package conversations

import (
	"context"
	"database/sql"
	"time"

	"github.com/angelmondragon/marketloop-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository exposes conversation and message persistence operations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Insert(ctx context.Context, conversation *models.Conversation) (bool, error)
	FindByTriple(ctx context.Context, listingID uuid.UUID, buyerID, sellerID string) (*models.Conversation, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error)
	ListForUser(ctx context.Context, userID string) ([]ConversationListItemDTO, error)
	ListMessages(ctx context.Context, conversationID uuid.UUID) ([]MessageDTO, error)
	CreateMessage(ctx context.Context, message *models.Message) error
	TouchLastMessage(ctx context.Context, conversationID uuid.UUID, at time.Time) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository constructs a conversations repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	return &repositoryImpl{db: tx}
}

// Insert creates the conversation unless the (listing, buyer, seller) triple
// already exists. It reports whether a new row was written.
func (r *repositoryImpl) Insert(ctx context.Context, conversation *models.Conversation) (bool, error) {
	if conversation.ID == uuid.Nil {
		conversation.ID = uuid.New()
	}
	if conversation.LastMessageAt.IsZero() {
		conversation.LastMessageAt = time.Now().UTC()
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "listing_id"},
				{Name: "buyer_id"},
				{Name: "seller_id"},
			},
			DoNothing: true,
		}).
		Create(conversation)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindByTriple loads the conversation for the unique participant triple.
func (r *repositoryImpl) FindByTriple(ctx context.Context, listingID uuid.UUID, buyerID, sellerID string) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.db.WithContext(ctx).
		Where("listing_id = ? AND buyer_id = ? AND seller_id = ?", listingID, buyerID, sellerID).
		First(&conversation).
		Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

// FindByID loads a conversation row.
func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := r.db.WithContext(ctx).First(&conversation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

const conversationListQuery = `
c.id, c.listing_id, c.buyer_id, c.seller_id, c.last_message_at, c.created_at,
l.title AS listing_title,
l.images AS listing_images,
b.first_name AS buyer_first_name,
b.last_name AS buyer_last_name,
b.profile_image_url AS buyer_profile_image_url,
s.first_name AS seller_first_name,
s.last_name AS seller_last_name,
s.profile_image_url AS seller_profile_image_url`

// ListForUser returns the caller's inbox ordered by recent activity.
func (r *repositoryImpl) ListForUser(ctx context.Context, userID string) ([]ConversationListItemDTO, error) {
	var records []conversationListRecord
	err := r.db.WithContext(ctx).
		Table("conversations c").
		Select(conversationListQuery).
		Joins("JOIN listings l ON l.id = c.listing_id").
		Joins("JOIN users b ON b.id = c.buyer_id").
		Joins("JOIN users s ON s.id = c.seller_id").
		Where("c.buyer_id = ? OR c.seller_id = ?", userID, userID).
		Order("c.last_message_at DESC").
		Scan(&records).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]ConversationListItemDTO, 0, len(records))
	for _, record := range records {
		items = append(items, record.toListItem(userID))
	}
	return items, nil
}

// ListMessages returns the thread in chronological order with sender
// projections.
func (r *repositoryImpl) ListMessages(ctx context.Context, conversationID uuid.UUID) ([]MessageDTO, error) {
	var records []messageRecord
	err := r.db.WithContext(ctx).
		Table("messages m").
		Select(`m.id, m.conversation_id, m.sender_id, m.content, m.created_at,
u.first_name AS sender_first_name,
u.last_name AS sender_last_name,
u.profile_image_url AS sender_profile_image_url`).
		Joins("JOIN users u ON u.id = m.sender_id").
		Where("m.conversation_id = ?", conversationID).
		Order("m.created_at ASC").
		Scan(&records).
		Error
	if err != nil {
		return nil, err
	}

	messages := make([]MessageDTO, 0, len(records))
	for _, record := range records {
		messages = append(messages, record.toDTO())
	}
	return messages, nil
}

// CreateMessage inserts a message row.
func (r *repositoryImpl) CreateMessage(ctx context.Context, message *models.Message) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(message).Error
}

// TouchLastMessage advances the conversation activity marker.
func (r *repositoryImpl) TouchLastMessage(ctx context.Context, conversationID uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Conversation{}).
		Where("id = ?", conversationID).
		Update("last_message_at", at).
		Error
}

type conversationListRecord struct {
	ID            uuid.UUID
	ListingID     uuid.UUID
	BuyerID       string
	SellerID      string
	LastMessageAt time.Time
	CreatedAt     time.Time

	ListingTitle  string
	ListingImages pq.StringArray `gorm:"type:text[]"`

	BuyerFirstName       sql.NullString
	BuyerLastName        sql.NullString
	BuyerProfileImageURL sql.NullString

	SellerFirstName       sql.NullString
	SellerLastName        sql.NullString
	SellerProfileImageURL sql.NullString
}

func (r conversationListRecord) toListItem(viewerID string) ConversationListItemDTO {
	other := ParticipantSummary{
		ID:              r.SellerID,
		FirstName:       nullStringPtr(r.SellerFirstName),
		LastName:        nullStringPtr(r.SellerLastName),
		ProfileImageURL: nullStringPtr(r.SellerProfileImageURL),
	}
	if r.SellerID == viewerID {
		other = ParticipantSummary{
			ID:              r.BuyerID,
			FirstName:       nullStringPtr(r.BuyerFirstName),
			LastName:        nullStringPtr(r.BuyerLastName),
			ProfileImageURL: nullStringPtr(r.BuyerProfileImageURL),
		}
	}

	return ConversationListItemDTO{
		ConversationDTO: ConversationDTO{
			ID:            r.ID.String(),
			ListingID:     r.ListingID.String(),
			BuyerID:       r.BuyerID,
			SellerID:      r.SellerID,
			LastMessageAt: r.LastMessageAt,
			CreatedAt:     r.CreatedAt,
		},
		Listing: ListingGlance{
			ID:     r.ListingID.String(),
			Title:  r.ListingTitle,
			Images: append([]string(nil), r.ListingImages...),
		},
		OtherParticipant: other,
	}
}

type messageRecord struct {
	ID             uuid.UUID
	ConversationID uuid.UUID
	SenderID       string
	Content        string
	CreatedAt      time.Time

	SenderFirstName       sql.NullString
	SenderLastName        sql.NullString
	SenderProfileImageURL sql.NullString
}

func (r messageRecord) toDTO() MessageDTO {
	return MessageDTO{
		ID:             r.ID.String(),
		ConversationID: r.ConversationID.String(),
		SenderID:       r.SenderID,
		Content:        r.Content,
		Sender: ParticipantSummary{
			ID:              r.SenderID,
			FirstName:       nullStringPtr(r.SenderFirstName),
			LastName:        nullStringPtr(r.SenderLastName),
			ProfileImageURL: nullStringPtr(r.SenderProfileImageURL),
		},
		CreatedAt: r.CreatedAt,
	}
}

func nullStringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}
