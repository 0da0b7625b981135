package conversations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/marketloop-backend/pkg/db"
	"github.com/angelmondragon/marketloop-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/marketloop-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes buyer/seller messaging operations.
type Service interface {
	FindOrCreate(ctx context.Context, buyerID string, listingID uuid.UUID) (*ConversationDTO, bool, error)
	Get(ctx context.Context, userID string, conversationID uuid.UUID) (*ConversationDTO, error)
	ListForUser(ctx context.Context, userID string) ([]ConversationListItemDTO, error)
	ListMessages(ctx context.Context, userID string, conversationID uuid.UUID) ([]MessageDTO, error)
	SendMessage(ctx context.Context, userID string, conversationID uuid.UUID, content string) (*MessageDTO, error)
}

type listingLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
}

type senderLoader interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type service struct {
	repo     Repository
	dbClient *db.Client
	listings listingLoader
	users    senderLoader
}

// NewService constructs a conversations service instance.
func NewService(repo Repository, dbClient *db.Client, listings listingLoader, users senderLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("conversations repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if listings == nil {
		return nil, fmt.Errorf("listings loader required")
	}
	if users == nil {
		return nil, fmt.Errorf("users loader required")
	}
	return &service{repo: repo, dbClient: dbClient, listings: listings, users: users}, nil
}

// FindOrCreate returns the buyer's thread on a listing, creating it when
// absent. The second return reports whether a new thread was created.
// Concurrent calls for the same triple land on the same row via the unique
// index, never a duplicate.
func (s *service) FindOrCreate(ctx context.Context, buyerID string, listingID uuid.UUID) (*ConversationDTO, bool, error) {
	listing, err := s.listings.FindByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, pkgerrors.New(pkgerrors.CodeNotFound, "listing not found")
		}
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load listing")
	}
	if listing.SellerID == buyerID {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "cannot start a conversation on your own listing")
	}

	conversation := &models.Conversation{
		ListingID: listingID,
		BuyerID:   buyerID,
		SellerID:  listing.SellerID,
	}
	created, err := s.repo.Insert(ctx, conversation)
	if err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert conversation")
	}
	if created {
		return NewConversationDTO(conversation), true, nil
	}

	existing, err := s.repo.FindByTriple(ctx, listingID, buyerID, listing.SellerID)
	if err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load conversation")
	}
	return NewConversationDTO(existing), false, nil
}

// Get returns a conversation the caller belongs to.
func (s *service) Get(ctx context.Context, userID string, conversationID uuid.UUID) (*ConversationDTO, error) {
	conversation, err := s.loadParticipating(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}
	return NewConversationDTO(conversation), nil
}

// ListForUser returns the caller's inbox, most recently active first.
func (s *service) ListForUser(ctx context.Context, userID string) ([]ConversationListItemDTO, error) {
	items, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list conversations")
	}
	return items, nil
}

// ListMessages returns the thread for a conversation the caller belongs to.
func (s *service) ListMessages(ctx context.Context, userID string, conversationID uuid.UUID) ([]MessageDTO, error) {
	if _, err := s.loadParticipating(ctx, userID, conversationID); err != nil {
		return nil, err
	}

	messages, err := s.repo.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list messages")
	}
	return messages, nil
}

// SendMessage appends to a conversation the caller belongs to. The message
// insert and the activity marker update commit together, and the marker is
// set to the message's own timestamp.
func (s *service) SendMessage(ctx context.Context, userID string, conversationID uuid.UUID, content string) (*MessageDTO, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message content is required")
	}

	if _, err := s.loadParticipating(ctx, userID, conversationID); err != nil {
		return nil, err
	}

	message := &models.Message{
		ConversationID: conversationID,
		SenderID:       userID,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.CreateMessage(ctx, message); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert message")
		}
		if err := txRepo.TouchLastMessage(ctx, conversationID, message.CreatedAt); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: touch conversation")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send message")
	}

	dto := MessageDTO{
		ID:             message.ID.String(),
		ConversationID: message.ConversationID.String(),
		SenderID:       message.SenderID,
		Content:        message.Content,
		CreatedAt:      message.CreatedAt,
	}
	if sender, err := s.users.FindByID(ctx, userID); err == nil {
		dto.Sender = participantFromUser(sender)
	} else {
		dto.Sender = ParticipantSummary{ID: userID}
	}
	return &dto, nil
}

func (s *service) loadParticipating(ctx context.Context, userID string, conversationID uuid.UUID) (*models.Conversation, error) {
	conversation, err := s.repo.FindByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "conversation not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load conversation")
	}
	if !conversation.HasParticipant(userID) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "conversation does not include user")
	}
	return conversation, nil
}
