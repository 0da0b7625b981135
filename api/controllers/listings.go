package controllers

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/marketloop-backend/api/middleware"
	"github.com/angelmondragon/marketloop-backend/api/responses"
	"github.com/angelmondragon/marketloop-backend/api/validators"
	listingsvc "github.com/angelmondragon/marketloop-backend/internal/listings"
	"github.com/angelmondragon/marketloop-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/marketloop-backend/pkg/errors"
	"github.com/angelmondragon/marketloop-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// ListListings handles the public marketplace search.
func ListListings(svc listingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "listing service unavailable"))
			return
		}

		filters, err := parseListingFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listings, err := svc.List(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, listings)
	}
}

// ListFeaturedListings handles the featured storefront strip.
func ListFeaturedListings(svc listingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "listing service unavailable"))
			return
		}

		listings, err := svc.ListFeatured(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, listings)
	}
}

// GetListing handles the public listing detail view.
func GetListing(svc listingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "listing service unavailable"))
			return
		}

		listingID, err := validators.ParseUUIDParam(r, "listingId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listing, err := svc.Get(r.Context(), listingID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, listing)
	}
}

// CreateListing handles listing creation for the authenticated seller.
func CreateListing(svc listingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "listing service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		var payload createListingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listing, err := svc.Create(r.Context(), userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, listing)
	}
}

// UpdateListing handles partial updates by the listing owner.
func UpdateListing(svc listingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "listing service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		listingID, err := validators.ParseUUIDParam(r, "listingId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateListingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toUpdateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listing, err := svc.Update(r.Context(), userID, listingID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, listing)
	}
}

// DeleteListing handles soft deactivation by the listing owner.
func DeleteListing(svc listingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "listing service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		listingID, err := validators.ParseUUIDParam(r, "listingId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), userID, listingID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type createListingRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       string   `json:"price" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Condition   string   `json:"condition" validate:"required"`
	Tags        []string `json:"tags,omitempty"`
	Images      []string `json:"images,omitempty"`
	IsFeatured  *bool    `json:"is_featured,omitempty"`
}

type updateListingRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Price       *string   `json:"price,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Condition   *string   `json:"condition,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Images      *[]string `json:"images,omitempty"`
	IsFeatured  *bool     `json:"is_featured,omitempty"`
}

func (r createListingRequest) toCreateInput() (listingsvc.CreateListingInput, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(r.Price))
	if err != nil {
		return listingsvc.CreateListingInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
	}

	category, err := enums.ParseListingCategory(strings.TrimSpace(r.Category))
	if err != nil {
		return listingsvc.CreateListingInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
	}

	condition, err := enums.ParseListingCondition(strings.TrimSpace(r.Condition))
	if err != nil {
		return listingsvc.CreateListingInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid condition")
	}

	input := listingsvc.CreateListingInput{
		Title:       r.Title,
		Description: r.Description,
		Price:       price,
		Category:    category,
		Condition:   condition,
		Tags:        r.Tags,
		Images:      r.Images,
	}
	if r.IsFeatured != nil {
		input.IsFeatured = *r.IsFeatured
	}
	return input, nil
}

func (r updateListingRequest) toUpdateInput() (listingsvc.UpdateListingInput, error) {
	input := listingsvc.UpdateListingInput{
		Title:       r.Title,
		Description: r.Description,
		Tags:        r.Tags,
		Images:      r.Images,
		IsFeatured:  r.IsFeatured,
	}

	if r.Price != nil {
		price, err := decimal.NewFromString(strings.TrimSpace(*r.Price))
		if err != nil {
			return listingsvc.UpdateListingInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
		}
		input.Price = &price
	}

	if r.Category != nil {
		category, err := enums.ParseListingCategory(strings.TrimSpace(*r.Category))
		if err != nil {
			return listingsvc.UpdateListingInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		input.Category = &category
	}

	if r.Condition != nil {
		condition, err := enums.ParseListingCondition(strings.TrimSpace(*r.Condition))
		if err != nil {
			return listingsvc.UpdateListingInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid condition")
		}
		input.Condition = &condition
	}

	return input, nil
}

func parseListingFilters(r *http.Request) (listingsvc.ListingFilters, error) {
	var filters listingsvc.ListingFilters

	if raw := validators.QueryString(r, "category"); raw != "" {
		category, err := enums.ParseListingCategory(raw)
		if err != nil {
			return listingsvc.ListingFilters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		filters.Category = &category
	}

	if raw := validators.QueryString(r, "condition"); raw != "" {
		condition, err := enums.ParseListingCondition(raw)
		if err != nil {
			return listingsvc.ListingFilters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid condition")
		}
		filters.Condition = &condition
	}

	priceMin, err := validators.ParseQueryDecimal(r, "price_min")
	if err != nil {
		return listingsvc.ListingFilters{}, err
	}
	filters.PriceMin = priceMin

	priceMax, err := validators.ParseQueryDecimal(r, "price_max")
	if err != nil {
		return listingsvc.ListingFilters{}, err
	}
	filters.PriceMax = priceMax

	filters.Search = validators.QueryString(r, "search")

	if raw := validators.QueryString(r, "seller_id"); raw != "" {
		filters.SellerID = &raw
	}

	return filters, nil
}
