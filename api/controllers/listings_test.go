package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/marketloop-backend/api/middleware"
	listingsvc "github.com/angelmondragon/marketloop-backend/internal/listings"
	"github.com/angelmondragon/marketloop-backend/pkg/enums"
	"github.com/angelmondragon/marketloop-backend/pkg/logger"
)

type testListingsService struct {
	listFn         func(ctx context.Context, filters listingsvc.ListingFilters) ([]listingsvc.ListingSummaryDTO, error)
	listFeaturedFn func(ctx context.Context) ([]listingsvc.ListingSummaryDTO, error)
	getFn          func(ctx context.Context, id uuid.UUID) (*listingsvc.ListingDetailDTO, error)
	createFn       func(ctx context.Context, sellerID string, input listingsvc.CreateListingInput) (*listingsvc.ListingDTO, error)
	updateFn       func(ctx context.Context, userID string, id uuid.UUID, input listingsvc.UpdateListingInput) (*listingsvc.ListingDTO, error)
	deleteFn       func(ctx context.Context, userID string, id uuid.UUID) error
}

func (s *testListingsService) List(ctx context.Context, filters listingsvc.ListingFilters) ([]listingsvc.ListingSummaryDTO, error) {
	if s.listFn != nil {
		return s.listFn(ctx, filters)
	}
	return nil, nil
}

func (s *testListingsService) ListFeatured(ctx context.Context) ([]listingsvc.ListingSummaryDTO, error) {
	if s.listFeaturedFn != nil {
		return s.listFeaturedFn(ctx)
	}
	return nil, nil
}

func (s *testListingsService) Get(ctx context.Context, id uuid.UUID) (*listingsvc.ListingDetailDTO, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return nil, nil
}

func (s *testListingsService) Create(ctx context.Context, sellerID string, input listingsvc.CreateListingInput) (*listingsvc.ListingDTO, error) {
	if s.createFn != nil {
		return s.createFn(ctx, sellerID, input)
	}
	return nil, nil
}

func (s *testListingsService) Update(ctx context.Context, userID string, id uuid.UUID, input listingsvc.UpdateListingInput) (*listingsvc.ListingDTO, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, userID, id, input)
	}
	return nil, nil
}

func (s *testListingsService) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, userID, id)
	}
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestListListingsParsesFilters(t *testing.T) {
	var got listingsvc.ListingFilters
	svc := &testListingsService{
		listFn: func(ctx context.Context, filters listingsvc.ListingFilters) ([]listingsvc.ListingSummaryDTO, error) {
			got = filters
			return []listingsvc.ListingSummaryDTO{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/listings?category=electronics&condition=good&price_min=10&price_max=250.50&search=walnut+desk&seller_id=user_1", nil)
	resp := httptest.NewRecorder()
	ListListings(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if got.Category == nil || *got.Category != enums.ListingCategoryElectronics {
		t.Fatalf("unexpected category %v", got.Category)
	}
	if got.Condition == nil || *got.Condition != enums.ListingConditionGood {
		t.Fatalf("unexpected condition %v", got.Condition)
	}
	if got.PriceMin == nil || !got.PriceMin.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("unexpected price_min %v", got.PriceMin)
	}
	if got.PriceMax == nil || !got.PriceMax.Equal(decimal.RequireFromString("250.50")) {
		t.Fatalf("unexpected price_max %v", got.PriceMax)
	}
	if got.Search != "walnut desk" {
		t.Fatalf("unexpected search %q", got.Search)
	}
	if got.SellerID == nil || *got.SellerID != "user_1" {
		t.Fatalf("unexpected seller_id %v", got.SellerID)
	}
}

func TestListListingsRejectsUnknownCategory(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/listings?category=gadgets", nil)
	resp := httptest.NewRecorder()
	ListListings(&testListingsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestGetListingInvalidID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/listings/not-a-uuid", nil)
	req = addRouteParam(req, "listingId", "not-a-uuid")
	resp := httptest.NewRecorder()
	GetListing(&testListingsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCreateListingSuccess(t *testing.T) {
	var gotSeller string
	var gotInput listingsvc.CreateListingInput
	svc := &testListingsService{
		createFn: func(ctx context.Context, sellerID string, input listingsvc.CreateListingInput) (*listingsvc.ListingDTO, error) {
			gotSeller = sellerID
			gotInput = input
			return &listingsvc.ListingDTO{ID: uuid.NewString(), Title: input.Title}, nil
		},
	}

	body := `{"title":"Walnut desk","description":"Solid walnut desk in great shape","price":"120.00","category":"furniture","condition":"good","tags":["desk"],"images":["https://cdn.example.com/desk.jpg"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/listings", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), "user_1"))
	resp := httptest.NewRecorder()
	CreateListing(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if gotSeller != "user_1" {
		t.Fatalf("unexpected seller %q", gotSeller)
	}
	if gotInput.Category != enums.ListingCategoryFurniture {
		t.Fatalf("unexpected category %s", gotInput.Category)
	}
	if !gotInput.Price.Equal(decimal.RequireFromString("120.00")) {
		t.Fatalf("unexpected price %s", gotInput.Price)
	}
}

func TestCreateListingMissingUser(t *testing.T) {
	body := `{"title":"Desk","description":"A fine desk indeed","price":"10","category":"furniture","condition":"good"}`
	req := httptest.NewRequest(http.MethodPost, "/api/listings", strings.NewReader(body))
	resp := httptest.NewRecorder()
	CreateListing(&testListingsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestCreateListingRejectsUnknownField(t *testing.T) {
	body := `{"title":"Desk","description":"A fine desk indeed","price":"10","category":"furniture","condition":"good","bogus":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/listings", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), "user_1"))
	resp := httptest.NewRecorder()
	CreateListing(&testListingsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestUpdateListingPassesPatch(t *testing.T) {
	listingID := uuid.New()
	var gotInput listingsvc.UpdateListingInput
	svc := &testListingsService{
		updateFn: func(ctx context.Context, userID string, id uuid.UUID, input listingsvc.UpdateListingInput) (*listingsvc.ListingDTO, error) {
			if id != listingID {
				t.Fatalf("unexpected listing %s", id)
			}
			gotInput = input
			return &listingsvc.ListingDTO{ID: id.String()}, nil
		},
	}

	body := `{"price":"99.99","is_featured":true}`
	req := httptest.NewRequest(http.MethodPut, "/api/listings/"+listingID.String(), strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), "user_1"))
	req = addRouteParam(req, "listingId", listingID.String())
	resp := httptest.NewRecorder()
	UpdateListing(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if gotInput.Title != nil {
		t.Fatal("expected title untouched")
	}
	if gotInput.Price == nil || !gotInput.Price.Equal(decimal.RequireFromString("99.99")) {
		t.Fatalf("unexpected price %v", gotInput.Price)
	}
	if gotInput.IsFeatured == nil || !*gotInput.IsFeatured {
		t.Fatal("expected is_featured true")
	}
}

func TestDeleteListingSuccess(t *testing.T) {
	listingID := uuid.New()
	called := false
	svc := &testListingsService{
		deleteFn: func(ctx context.Context, userID string, id uuid.UUID) error {
			called = true
			if userID != "user_1" || id != listingID {
				t.Fatalf("unexpected args %s %s", userID, id)
			}
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/listings/"+listingID.String(), nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), "user_1"))
	req = addRouteParam(req, "listingId", listingID.String())
	resp := httptest.NewRecorder()
	DeleteListing(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if !called {
		t.Fatal("expected service called")
	}
	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data["status"] != "deleted" {
		t.Fatalf("unexpected payload %v", envelope.Data)
	}
}

func addRouteParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}
