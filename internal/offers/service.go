package offers

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/marketloop-backend/pkg/db/models"
	"github.com/angelmondragon/marketloop-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/marketloop-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes buyer offer operations and seller review.
type Service interface {
	Create(ctx context.Context, buyerID string, listingID uuid.UUID, input CreateOfferInput) (*OfferDTO, error)
	ListForListing(ctx context.Context, userID string, listingID uuid.UUID) ([]OfferWithBuyerDTO, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OfferStatus) (*OfferDTO, error)
}

// CreateOfferInput holds the validated payload to create an offer.
type CreateOfferInput struct {
	Amount  decimal.Decimal
	Message *string
}

type listingLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
}

type service struct {
	repo     Repository
	listings listingLoader
}

// NewService constructs an offers service instance.
func NewService(repo Repository, listings listingLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("offers repository required")
	}
	if listings == nil {
		return nil, fmt.Errorf("listings loader required")
	}
	return &service{repo: repo, listings: listings}, nil
}

// Create records a pending offer on an existing listing.
func (s *service) Create(ctx context.Context, buyerID string, listingID uuid.UUID, input CreateOfferInput) (*OfferDTO, error) {
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be greater than zero")
	}

	if _, err := s.loadListing(ctx, listingID); err != nil {
		return nil, err
	}

	offer := &models.Offer{
		ListingID: listingID,
		BuyerID:   buyerID,
		Amount:    input.Amount,
		Message:   input.Message,
		Status:    enums.OfferStatusPending,
	}
	created, err := s.repo.Create(ctx, offer)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert offer")
	}
	return NewOfferDTO(created), nil
}

// ListForListing returns the offers on a listing the caller owns.
func (s *service) ListForListing(ctx context.Context, userID string, listingID uuid.UUID) ([]OfferWithBuyerDTO, error) {
	listing, err := s.loadListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.SellerID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "listing does not belong to user")
	}

	offers, err := s.repo.ListForListing(ctx, listingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list offers")
	}
	return offers, nil
}

// UpdateStatus resolves a pending offer to accepted or rejected. An offer
// that was already decided stays untouched and the caller gets a state
// conflict.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OfferStatus) (*OfferDTO, error) {
	if !status.IsDecision() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status must be accepted or rejected")
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "offer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load offer")
	}

	affected, err := s.repo.UpdateStatusIfPending(ctx, id, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update offer status")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "offer is already decided")
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reload offer")
	}
	return NewOfferDTO(updated), nil
}

func (s *service) loadListing(ctx context.Context, listingID uuid.UUID) (*models.Listing, error) {
	listing, err := s.listings.FindByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "listing not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load listing")
	}
	return listing, nil
}
