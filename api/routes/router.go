package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/marketloop-backend/api/controllers"
	"github.com/angelmondragon/marketloop-backend/api/middleware"
	conversationsvc "github.com/angelmondragon/marketloop-backend/internal/conversations"
	listingsvc "github.com/angelmondragon/marketloop-backend/internal/listings"
	offersvc "github.com/angelmondragon/marketloop-backend/internal/offers"
	usersvc "github.com/angelmondragon/marketloop-backend/internal/users"
	"github.com/angelmondragon/marketloop-backend/pkg/config"
	"github.com/angelmondragon/marketloop-backend/pkg/db"
	"github.com/angelmondragon/marketloop-backend/pkg/logger"
	"github.com/angelmondragon/marketloop-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	userService usersvc.Service,
	listingService listingsvc.Service,
	conversationService conversationsvc.Service,
	offerService offersvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api", func(r chi.Router) {
		// Browsing the marketplace needs no credentials.
		r.Get("/listings", controllers.ListListings(listingService, logg))
		r.Get("/listings/featured", controllers.ListFeaturedListings(listingService, logg))
		r.Get("/listings/{listingId}", controllers.GetListing(listingService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Use(middleware.Idempotency(redisClient, logg))

			r.Get("/ping", controllers.PrivatePing())
			r.Get("/auth/user", controllers.CurrentUser(userService, logg))

			r.Post("/listings", controllers.CreateListing(listingService, logg))
			r.Put("/listings/{listingId}", controllers.UpdateListing(listingService, logg))
			r.Delete("/listings/{listingId}", controllers.DeleteListing(listingService, logg))

			r.Get("/listings/{listingId}/offers", controllers.ListOffers(offerService, logg))
			r.Post("/listings/{listingId}/offers", controllers.CreateOffer(offerService, logg))
			r.Put("/offers/{offerId}/status", controllers.UpdateOfferStatus(offerService, logg))

			r.Get("/conversations", controllers.ListConversations(conversationService, logg))
			r.Post("/conversations", controllers.StartConversation(conversationService, logg))
			r.Get("/conversations/{conversationId}", controllers.GetConversation(conversationService, logg))
			r.Get("/conversations/{conversationId}/messages", controllers.ListMessages(conversationService, logg))
			r.Post("/conversations/{conversationId}/messages", controllers.SendMessage(conversationService, logg))
		})
	})

	return r
}
