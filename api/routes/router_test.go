package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	conversationsvc "github.com/angelmondragon/marketloop-backend/internal/conversations"
	listingsvc "github.com/angelmondragon/marketloop-backend/internal/listings"
	offersvc "github.com/angelmondragon/marketloop-backend/internal/offers"
	usersvc "github.com/angelmondragon/marketloop-backend/internal/users"
	pkgauth "github.com/angelmondragon/marketloop-backend/pkg/auth"
	"github.com/angelmondragon/marketloop-backend/pkg/config"
	"github.com/angelmondragon/marketloop-backend/pkg/enums"
	"github.com/angelmondragon/marketloop-backend/pkg/logger"
	"github.com/angelmondragon/marketloop-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubUsersService struct{}

func (stubUsersService) UpsertFromIdentity(ctx context.Context, input usersvc.UpsertUserDTO) (*usersvc.UserDTO, error) {
	return &usersvc.UserDTO{ID: input.ID}, nil
}

func (stubUsersService) GetByID(ctx context.Context, id string) (*usersvc.UserDTO, error) {
	return &usersvc.UserDTO{ID: id}, nil
}

type stubListingsService struct{}

func (stubListingsService) List(ctx context.Context, filters listingsvc.ListingFilters) ([]listingsvc.ListingSummaryDTO, error) {
	return []listingsvc.ListingSummaryDTO{}, nil
}

func (stubListingsService) ListFeatured(ctx context.Context) ([]listingsvc.ListingSummaryDTO, error) {
	return []listingsvc.ListingSummaryDTO{}, nil
}

func (stubListingsService) Get(ctx context.Context, id uuid.UUID) (*listingsvc.ListingDetailDTO, error) {
	return &listingsvc.ListingDetailDTO{}, nil
}

func (stubListingsService) Create(ctx context.Context, sellerID string, input listingsvc.CreateListingInput) (*listingsvc.ListingDTO, error) {
	return &listingsvc.ListingDTO{}, nil
}

func (stubListingsService) Update(ctx context.Context, userID string, id uuid.UUID, input listingsvc.UpdateListingInput) (*listingsvc.ListingDTO, error) {
	return &listingsvc.ListingDTO{}, nil
}

func (stubListingsService) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	return nil
}

type stubConversationsService struct{}

func (stubConversationsService) FindOrCreate(ctx context.Context, buyerID string, listingID uuid.UUID) (*conversationsvc.ConversationDTO, bool, error) {
	return &conversationsvc.ConversationDTO{}, false, nil
}

func (stubConversationsService) Get(ctx context.Context, userID string, conversationID uuid.UUID) (*conversationsvc.ConversationDTO, error) {
	return &conversationsvc.ConversationDTO{}, nil
}

func (stubConversationsService) ListForUser(ctx context.Context, userID string) ([]conversationsvc.ConversationListItemDTO, error) {
	return []conversationsvc.ConversationListItemDTO{}, nil
}

func (stubConversationsService) ListMessages(ctx context.Context, userID string, conversationID uuid.UUID) ([]conversationsvc.MessageDTO, error) {
	return []conversationsvc.MessageDTO{}, nil
}

func (stubConversationsService) SendMessage(ctx context.Context, userID string, conversationID uuid.UUID, content string) (*conversationsvc.MessageDTO, error) {
	return &conversationsvc.MessageDTO{}, nil
}

type stubOffersService struct{}

func (stubOffersService) Create(ctx context.Context, buyerID string, listingID uuid.UUID, input offersvc.CreateOfferInput) (*offersvc.OfferDTO, error) {
	return &offersvc.OfferDTO{}, nil
}

func (stubOffersService) ListForListing(ctx context.Context, userID string, listingID uuid.UUID) ([]offersvc.OfferWithBuyerDTO, error) {
	return []offersvc.OfferWithBuyerDTO{}, nil
}

func (stubOffersService) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OfferStatus) (*offersvc.OfferDTO, error) {
	return &offersvc.OfferDTO{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret: "secret",
			Issuer: "issuer",
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		(*redis.Client)(nil),
		stubUsersService{},
		stubListingsService{},
		stubConversationsService{},
		stubOffersService{},
	)
}

func buildToken(t *testing.T, cfg *config.Config, subject string) string {
	t.Helper()
	token, err := pkgauth.MintIdentityToken(cfg.JWT, time.Now(), time.Hour, pkgauth.IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: subject},
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Header().Get("X-Marketloop-Env") != "test" {
		t.Fatal("expected env header")
	}
}

func TestPublicListingsNeedNoToken(t *testing.T) {
	router := newTestRouter(testConfig())
	for _, path := range []string{
		"/api/listings",
		"/api/listings/featured",
		"/api/listings/" + uuid.NewString(),
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, resp.Code)
		}
	}
}

func TestPrivateGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	for _, path := range []string{
		"/api/ping",
		"/api/auth/user",
		"/api/conversations",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 without token got %d", path, resp.Code)
		}
	}
}

func TestPrivateGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, "user_1"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCurrentUserRouteWired(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, "user_1"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRejectsExpiredJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	token, err := pkgauth.MintIdentityToken(cfg.JWT, time.Now().Add(-2*time.Hour), time.Hour, pkgauth.IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user_1"},
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
