package listings

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/angelmondragon/marketloop-backend/pkg/db/models"
	"github.com/angelmondragon/marketloop-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository exposes listing persistence operations.
type Repository interface {
	List(ctx context.Context, filters ListingFilters) ([]ListingSummaryDTO, error)
	ListFeatured(ctx context.Context, limit int) ([]ListingSummaryDTO, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*ListingDetailDTO, error)
	Create(ctx context.Context, listing *models.Listing) (*models.Listing, error)
	Update(ctx context.Context, listing *models.Listing) (*models.Listing, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository constructs a listings repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

const listingSelectColumns = `
l.id, l.title, l.description, l.price, l.category, l.condition,
l.tags, l.images, l.seller_id, l.is_featured, l.is_active,
l.created_at, l.updated_at,
u.first_name AS seller_first_name,
u.last_name AS seller_last_name,
u.profile_image_url AS seller_profile_image_url,
u.email AS seller_email`

// List returns active listings newest first, with all provided filters
// applied conjunctively.
func (r *repositoryImpl) List(ctx context.Context, filters ListingFilters) ([]ListingSummaryDTO, error) {
	qb := r.db.WithContext(ctx).
		Table("listings l").
		Select(listingSelectColumns).
		Joins("JOIN users u ON u.id = l.seller_id").
		Where("l.is_active = ?", true)

	if filters.Category != nil {
		qb = qb.Where("l.category = ?", filters.Category.String())
	}
	if filters.Condition != nil {
		qb = qb.Where("l.condition = ?", filters.Condition.String())
	}
	if filters.PriceMin != nil {
		qb = qb.Where("l.price >= ?", *filters.PriceMin)
	}
	if filters.PriceMax != nil {
		qb = qb.Where("l.price <= ?", *filters.PriceMax)
	}
	if filters.SellerID != nil {
		qb = qb.Where("l.seller_id = ?", *filters.SellerID)
	}
	if search := strings.TrimSpace(filters.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("(LOWER(l.title) LIKE ? OR LOWER(l.description) LIKE ?)", pattern, pattern)
	}

	var records []listingSellerRecord
	if err := qb.Order("l.created_at DESC").Scan(&records).Error; err != nil {
		return nil, err
	}
	return toSummaries(records), nil
}

// ListFeatured returns the newest featured active listings up to limit.
func (r *repositoryImpl) ListFeatured(ctx context.Context, limit int) ([]ListingSummaryDTO, error) {
	var records []listingSellerRecord
	err := r.db.WithContext(ctx).
		Table("listings l").
		Select(listingSelectColumns).
		Joins("JOIN users u ON u.id = l.seller_id").
		Where("l.is_active = ? AND l.is_featured = ?", true, true).
		Order("l.created_at DESC").
		Limit(limit).
		Scan(&records).
		Error
	if err != nil {
		return nil, err
	}
	return toSummaries(records), nil
}

// FindByID loads the listing without the seller projection, active or not.
func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	var listing models.Listing
	if err := r.db.WithContext(ctx).First(&listing, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

// GetDetail loads the listing together with the seller contact projection.
func (r *repositoryImpl) GetDetail(ctx context.Context, id uuid.UUID) (*ListingDetailDTO, error) {
	var record listingSellerRecord
	err := r.db.WithContext(ctx).
		Table("listings l").
		Select(listingSelectColumns).
		Joins("JOIN users u ON u.id = l.seller_id").
		Where("l.id = ?", id).
		Scan(&record).
		Error
	if err != nil {
		return nil, err
	}
	if record.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	detail := &ListingDetailDTO{
		ListingDTO: record.toListingDTO(),
		Seller: SellerDetail{
			SellerSummary: record.toSellerSummary(),
			Email:         nullStringPtr(record.SellerEmail),
		},
	}
	return detail, nil
}

// Create inserts a new listing row.
func (r *repositoryImpl) Create(ctx context.Context, listing *models.Listing) (*models.Listing, error) {
	if listing.ID == uuid.Nil {
		listing.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(listing).Error; err != nil {
		return nil, err
	}
	return listing, nil
}

// Update persists the full listing row.
func (r *repositoryImpl) Update(ctx context.Context, listing *models.Listing) (*models.Listing, error) {
	if err := r.db.WithContext(ctx).Save(listing).Error; err != nil {
		return nil, err
	}
	return listing, nil
}

// SoftDelete deactivates the listing. Deactivating twice is a no-op.
func (r *repositoryImpl) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Where("id = ?", id).
		Update("is_active", false).
		Error
}

type listingSellerRecord struct {
	ID          uuid.UUID
	Title       string
	Description string
	Price       decimal.Decimal
	Category    string
	Condition   string
	Tags        pq.StringArray `gorm:"type:text[]"`
	Images      pq.StringArray `gorm:"type:text[]"`
	SellerID    string
	IsFeatured  bool
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	SellerFirstName       sql.NullString
	SellerLastName        sql.NullString
	SellerProfileImageURL sql.NullString
	SellerEmail           sql.NullString
}

func (r listingSellerRecord) toListingDTO() ListingDTO {
	return ListingDTO{
		ID:          r.ID.String(),
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Category:    enums.ListingCategory(r.Category),
		Condition:   enums.ListingCondition(r.Condition),
		Tags:        append([]string(nil), r.Tags...),
		Images:      append([]string(nil), r.Images...),
		SellerID:    r.SellerID,
		IsFeatured:  r.IsFeatured,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r listingSellerRecord) toSellerSummary() SellerSummary {
	return SellerSummary{
		ID:              r.SellerID,
		FirstName:       nullStringPtr(r.SellerFirstName),
		LastName:        nullStringPtr(r.SellerLastName),
		ProfileImageURL: nullStringPtr(r.SellerProfileImageURL),
	}
}

func toSummaries(records []listingSellerRecord) []ListingSummaryDTO {
	summaries := make([]ListingSummaryDTO, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, ListingSummaryDTO{
			ListingDTO: record.toListingDTO(),
			Seller:     record.toSellerSummary(),
		})
	}
	return summaries
}

func nullStringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}
