package listings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/marketloop-backend/pkg/db/models"
	"github.com/angelmondragon/marketloop-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/marketloop-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// featuredLimit caps the featured strip on the storefront.
const featuredLimit = 4

const (
	titleMaxLen       = 255
	descriptionMinLen = 10
)

// Service exposes listing management and discovery operations.
type Service interface {
	List(ctx context.Context, filters ListingFilters) ([]ListingSummaryDTO, error)
	ListFeatured(ctx context.Context) ([]ListingSummaryDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ListingDetailDTO, error)
	Create(ctx context.Context, sellerID string, input CreateListingInput) (*ListingDTO, error)
	Update(ctx context.Context, userID string, id uuid.UUID, input UpdateListingInput) (*ListingDTO, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error
}

// CreateListingInput holds the validated payload to create a listing.
type CreateListingInput struct {
	Title       string
	Description string
	Price       decimal.Decimal
	Category    enums.ListingCategory
	Condition   enums.ListingCondition
	Tags        []string
	Images      []string
	IsFeatured  bool
}

// UpdateListingInput holds optional mutation values for a listing.
type UpdateListingInput struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	Category    *enums.ListingCategory
	Condition   *enums.ListingCondition
	Tags        *[]string
	Images      *[]string
	IsFeatured  *bool
}

type service struct {
	repo Repository
}

// NewService constructs a listings service instance.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("listings repository required")
	}
	return &service{repo: repo}, nil
}

// List returns active listings matching the filters, newest first.
func (s *service) List(ctx context.Context, filters ListingFilters) ([]ListingSummaryDTO, error) {
	rows, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list listings")
	}
	return rows, nil
}

// ListFeatured returns the featured storefront strip.
func (s *service) ListFeatured(ctx context.Context) ([]ListingSummaryDTO, error) {
	rows, err := s.repo.ListFeatured(ctx, featuredLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list featured listings")
	}
	return rows, nil
}

// Get loads the listing detail with the seller contact projection.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*ListingDetailDTO, error) {
	detail, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "listing not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load listing detail")
	}
	return detail, nil
}

// Create validates and persists a new active listing owned by sellerID.
func (s *service) Create(ctx context.Context, sellerID string, input CreateListingInput) (*ListingDTO, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)

	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	if err := validatePrice(input.Price); err != nil {
		return nil, err
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown listing category")
	}
	if !input.Condition.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown listing condition")
	}

	listing := &models.Listing{
		Title:       title,
		Description: description,
		Price:       input.Price,
		Category:    input.Category,
		Condition:   input.Condition,
		Tags:        append([]string(nil), input.Tags...),
		Images:      append([]string(nil), input.Images...),
		SellerID:    sellerID,
		IsFeatured:  input.IsFeatured,
		IsActive:    true,
	}

	created, err := s.repo.Create(ctx, listing)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert listing")
	}
	return NewListingDTO(created), nil
}

// Update applies the patch to a listing the caller owns.
func (s *service) Update(ctx context.Context, userID string, id uuid.UUID, input UpdateListingInput) (*ListingDTO, error) {
	listing, err := s.loadOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if err := validateTitle(title); err != nil {
			return nil, err
		}
		listing.Title = title
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if err := validateDescription(description); err != nil {
			return nil, err
		}
		listing.Description = description
	}
	if input.Price != nil {
		if err := validatePrice(*input.Price); err != nil {
			return nil, err
		}
		listing.Price = *input.Price
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown listing category")
		}
		listing.Category = *input.Category
	}
	if input.Condition != nil {
		if !input.Condition.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown listing condition")
		}
		listing.Condition = *input.Condition
	}
	if input.Tags != nil {
		listing.Tags = append([]string(nil), *input.Tags...)
	}
	if input.Images != nil {
		listing.Images = append([]string(nil), *input.Images...)
	}
	if input.IsFeatured != nil {
		listing.IsFeatured = *input.IsFeatured
	}

	updated, err := s.repo.Update(ctx, listing)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update listing")
	}
	return NewListingDTO(updated), nil
}

// Delete deactivates a listing the caller owns. Already-inactive listings
// deactivate again without error.
func (s *service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	if _, err := s.loadOwned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: deactivate listing")
	}
	return nil
}

func (s *service) loadOwned(ctx context.Context, userID string, id uuid.UUID) (*models.Listing, error) {
	listing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "listing not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load listing")
	}
	if listing.SellerID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "listing does not belong to user")
	}
	return listing, nil
}

func validateTitle(title string) error {
	if title == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if len(title) > titleMaxLen {
		return pkgerrors.New(pkgerrors.CodeValidation, "title must be at most 255 characters")
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) < descriptionMinLen {
		return pkgerrors.New(pkgerrors.CodeValidation, "description must be at least 10 characters")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be greater than zero")
	}
	return nil
}
