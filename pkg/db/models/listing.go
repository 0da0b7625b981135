package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/marketloop-backend/pkg/enums"
)

// Listing represents a sellable item owned by a seller.
type Listing struct {
	ID          uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string                 `gorm:"column:title;not null"`
	Description string                 `gorm:"column:description;not null"`
	Price       decimal.Decimal        `gorm:"column:price;type:numeric(10,2);not null"`
	Category    enums.ListingCategory  `gorm:"column:category;not null"`
	Condition   enums.ListingCondition `gorm:"column:condition;not null"`
	Tags        pq.StringArray         `gorm:"column:tags;type:text[]"`
	Images      pq.StringArray         `gorm:"column:images;type:text[]"`
	SellerID    string                 `gorm:"column:seller_id;type:text;not null"`
	IsFeatured  bool                   `gorm:"column:is_featured;not null;default:false"`
	IsActive    bool                   `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
