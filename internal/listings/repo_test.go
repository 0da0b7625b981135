package listings

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/angelmondragon/marketloop-backend/pkg/db/models"
	"github.com/angelmondragon/marketloop-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupListingsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	usersDDL := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT UNIQUE,
  first_name TEXT,
  last_name TEXT,
  profile_image_url TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	listingsDDL := `
CREATE TABLE IF NOT EXISTS listings (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  price NUMERIC NOT NULL,
  category TEXT NOT NULL,
  condition TEXT NOT NULL,
  tags TEXT,
  images TEXT,
  seller_id TEXT NOT NULL,
  is_featured INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(usersDDL).Error)
	require.NoError(t, db.Exec(listingsDDL).Error)
	// the shared in-memory database survives across tests in this package
	require.NoError(t, db.Exec("DELETE FROM listings").Error)
	require.NoError(t, db.Exec("DELETE FROM users").Error)
	return db
}

func mustCreateSeller(t *testing.T, db *gorm.DB, id string) *models.User {
	t.Helper()
	email := fmt.Sprintf("%s@example.com", id)
	first := "Sam"
	last := "Seller"
	user := &models.User{ID: id, Email: &email, FirstName: &first, LastName: &last}
	require.NoError(t, db.Create(user).Error)
	return user
}

func mustCreateListing(t *testing.T, db *gorm.DB, sellerID string, mutate func(*models.Listing)) *models.Listing {
	t.Helper()
	listing := &models.Listing{
		ID:          uuid.New(),
		Title:       "Road bike",
		Description: "A well maintained road bike",
		Price:       decimal.NewFromInt(250),
		Category:    enums.ListingCategorySports,
		Condition:   enums.ListingConditionGood,
		SellerID:    sellerID,
		IsActive:    true,
		CreatedAt:   time.Now().Add(-time.Hour),
	}
	if mutate != nil {
		mutate(listing)
	}
	require.NoError(t, db.Create(listing).Error)
	return listing
}

func TestListFiltersCombineConjunctively(t *testing.T) {
	db := setupListingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seller := mustCreateSeller(t, db, "auth0|seller")
	other := mustCreateSeller(t, db, "auth0|other")

	match := mustCreateListing(t, db, seller.ID, func(l *models.Listing) {
		l.Title = "Gaming laptop"
		l.Description = "A fast gaming laptop with RGB"
		l.Category = enums.ListingCategoryElectronics
		l.Price = decimal.NewFromInt(800)
	})
	mustCreateListing(t, db, seller.ID, func(l *models.Listing) {
		l.Title = "Gaming laptop deluxe"
		l.Category = enums.ListingCategoryElectronics
		l.Price = decimal.NewFromInt(2500) // over the max filter
	})
	mustCreateListing(t, db, other.ID, func(l *models.Listing) {
		l.Title = "Office laptop"
		l.Category = enums.ListingCategoryElectronics
		l.Price = decimal.NewFromInt(700) // wrong seller
	})

	category := enums.ListingCategoryElectronics
	priceMax := decimal.NewFromInt(1000)
	rows, err := repo.List(ctx, ListingFilters{
		Category: &category,
		PriceMax: &priceMax,
		SellerID: &seller.ID,
		Search:   "gaming",
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, match.ID.String(), rows[0].ID)
	assert.Equal(t, seller.ID, rows[0].Seller.ID)
	require.NotNil(t, rows[0].Seller.FirstName)
	assert.Equal(t, "Sam", *rows[0].Seller.FirstName)
}

func TestListSearchMatchesDescription(t *testing.T) {
	db := setupListingsTestDB(t)
	repo := NewRepository(db)

	seller := mustCreateSeller(t, db, "auth0|seller")
	match := mustCreateListing(t, db, seller.ID, func(l *models.Listing) {
		l.Title = "Bookshelf"
		l.Description = "Solid OAK shelf in great shape"
	})
	mustCreateListing(t, db, seller.ID, func(l *models.Listing) {
		l.Title = "Coffee table"
		l.Description = "Glass top table"
	})

	rows, err := repo.List(context.Background(), ListingFilters{Search: "oak"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, match.ID.String(), rows[0].ID)
}

func TestListExcludesInactiveAndOrdersNewestFirst(t *testing.T) {
	db := setupListingsTestDB(t)
	repo := NewRepository(db)

	seller := mustCreateSeller(t, db, "auth0|seller")
	older := mustCreateListing(t, db, seller.ID, func(l *models.Listing) {
		l.CreatedAt = time.Now().Add(-2 * time.Hour)
	})
	newer := mustCreateListing(t, db, seller.ID, func(l *models.Listing) {
		l.CreatedAt = time.Now().Add(-1 * time.Hour)
	})
	mustCreateListing(t, db, seller.ID, func(l *models.Listing) {
		l.IsActive = false
	})

	rows, err := repo.List(context.Background(), ListingFilters{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, newer.ID.String(), rows[0].ID)
	assert.Equal(t, older.ID.String(), rows[1].ID)
}

func TestListFeaturedCapsResults(t *testing.T) {
	db := setupListingsTestDB(t)
	repo := NewRepository(db)

	seller := mustCreateSeller(t, db, "auth0|seller")
	for i := 0; i < 5; i++ {
		offset := time.Duration(i) * time.Minute
		mustCreateListing(t, db, seller.ID, func(l *models.Listing) {
			l.IsFeatured = true
			l.CreatedAt = time.Now().Add(-offset)
		})
	}
	mustCreateListing(t, db, seller.ID, func(l *models.Listing) {
		l.IsFeatured = true
		l.IsActive = false
	})

	rows, err := repo.ListFeatured(context.Background(), 4)
	require.NoError(t, err)
	assert.Len(t, rows, 4)
	for i := 1; i < len(rows); i++ {
		assert.False(t, rows[i].CreatedAt.After(rows[i-1].CreatedAt))
	}
}

func TestGetDetailIncludesSellerEmail(t *testing.T) {
	db := setupListingsTestDB(t)
	repo := NewRepository(db)

	seller := mustCreateSeller(t, db, "auth0|seller")
	listing := mustCreateListing(t, db, seller.ID, nil)

	detail, err := repo.GetDetail(context.Background(), listing.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Seller.Email)
	assert.Equal(t, *seller.Email, *detail.Seller.Email)
	assert.Equal(t, listing.ID.String(), detail.ID)
}

func TestGetDetailNotFound(t *testing.T) {
	db := setupListingsTestDB(t)
	repo := NewRepository(db)

	_, err := repo.GetDetail(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestSoftDeleteIsIdempotent(t *testing.T) {
	db := setupListingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seller := mustCreateSeller(t, db, "auth0|seller")
	listing := mustCreateListing(t, db, seller.ID, nil)

	require.NoError(t, repo.SoftDelete(ctx, listing.ID))
	require.NoError(t, repo.SoftDelete(ctx, listing.ID))

	stored, err := repo.FindByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}
