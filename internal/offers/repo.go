package offers

import (
	"context"
	"database/sql"
	"time"

	"github.com/angelmondragon/marketloop-backend/pkg/db/models"
	"github.com/angelmondragon/marketloop-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository exposes offer persistence operations.
type Repository interface {
	Create(ctx context.Context, offer *models.Offer) (*models.Offer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Offer, error)
	ListForListing(ctx context.Context, listingID uuid.UUID) ([]OfferWithBuyerDTO, error)
	UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status enums.OfferStatus) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository constructs an offers repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

// Create inserts a new offer row.
func (r *repositoryImpl) Create(ctx context.Context, offer *models.Offer) (*models.Offer, error) {
	if offer.ID == uuid.Nil {
		offer.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(offer).Error; err != nil {
		return nil, err
	}
	return offer, nil
}

// FindByID loads an offer row.
func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Offer, error) {
	var offer models.Offer
	if err := r.db.WithContext(ctx).First(&offer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

// ListForListing returns the listing's offers newest first with buyer
// projections.
func (r *repositoryImpl) ListForListing(ctx context.Context, listingID uuid.UUID) ([]OfferWithBuyerDTO, error) {
	var records []offerBuyerRecord
	err := r.db.WithContext(ctx).
		Table("offers o").
		Select(`o.id, o.listing_id, o.buyer_id, o.amount, o.message, o.status, o.created_at,
u.first_name AS buyer_first_name,
u.last_name AS buyer_last_name,
u.profile_image_url AS buyer_profile_image_url`).
		Joins("JOIN users u ON u.id = o.buyer_id").
		Where("o.listing_id = ?", listingID).
		Order("o.created_at DESC").
		Scan(&records).
		Error
	if err != nil {
		return nil, err
	}

	offers := make([]OfferWithBuyerDTO, 0, len(records))
	for _, record := range records {
		offers = append(offers, record.toDTO())
	}
	return offers, nil
}

// UpdateStatusIfPending flips the status only while the row is still pending
// and reports how many rows changed. Zero means the offer was already
// decided (or missing).
func (r *repositoryImpl) UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status enums.OfferStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Offer{}).
		Where("id = ? AND status = ?", id, enums.OfferStatusPending).
		Update("status", status)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

type offerBuyerRecord struct {
	ID        uuid.UUID
	ListingID uuid.UUID
	BuyerID   string
	Amount    decimal.Decimal
	Message   sql.NullString
	Status    string
	CreatedAt time.Time

	BuyerFirstName       sql.NullString
	BuyerLastName        sql.NullString
	BuyerProfileImageURL sql.NullString
}

func (r offerBuyerRecord) toDTO() OfferWithBuyerDTO {
	return OfferWithBuyerDTO{
		OfferDTO: OfferDTO{
			ID:        r.ID.String(),
			ListingID: r.ListingID.String(),
			BuyerID:   r.BuyerID,
			Amount:    r.Amount,
			Message:   nullStringPtr(r.Message),
			Status:    enums.OfferStatus(r.Status),
			CreatedAt: r.CreatedAt,
		},
		Buyer: BuyerSummary{
			ID:              r.BuyerID,
			FirstName:       nullStringPtr(r.BuyerFirstName),
			LastName:        nullStringPtr(r.BuyerLastName),
			ProfileImageURL: nullStringPtr(r.BuyerProfileImageURL),
		},
	}
}

func nullStringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}
